package submission

import (
	"context"

	"github.com/google/uuid"
	"github.com/infotech-symposium/event-registration/api"
	"github.com/infotech-symposium/event-registration/draft"
	"github.com/infotech-symposium/event-registration/registration"
)

type mockRegistrar struct {
	RegisterFunc func(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error)
}

func (m *mockRegistrar) Register(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error) {
	return m.RegisterFunc(ctx, reg, termsAccepted, requestId)
}

type mockDraftStore struct {
	SaveFunc  func(ctx context.Context, d draft.Draft) error
	LoadFunc  func(ctx context.Context) (draft.Draft, bool, error)
	ClearFunc func(ctx context.Context) error
}

func (m *mockDraftStore) Save(ctx context.Context, d draft.Draft) error {
	return m.SaveFunc(ctx, d)
}

func (m *mockDraftStore) Load(ctx context.Context) (draft.Draft, bool, error) {
	return m.LoadFunc(ctx)
}

func (m *mockDraftStore) Clear(ctx context.Context) error {
	return m.ClearFunc(ctx)
}
