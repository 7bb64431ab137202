package draft

import "context"

type mockStore struct {
	SaveFunc  func(ctx context.Context, d Draft) error
	LoadFunc  func(ctx context.Context) (Draft, bool, error)
	ClearFunc func(ctx context.Context) error
}

var _ Store = &mockStore{}

func (m *mockStore) Save(ctx context.Context, d Draft) error {
	return m.SaveFunc(ctx, d)
}

func (m *mockStore) Load(ctx context.Context) (Draft, bool, error) {
	return m.LoadFunc(ctx)
}

func (m *mockStore) Clear(ctx context.Context) error {
	return m.ClearFunc(ctx)
}
