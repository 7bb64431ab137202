package draft

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestAutosaver(t *testing.T) {
	t.Run("saves a fresh snapshot on every tick", func(t *testing.T) {
		var saves atomic.Int32
		var version atomic.Int32
		var lastSaved atomic.Value

		store := &mockStore{
			SaveFunc: func(ctx context.Context, d Draft) error {
				saves.Add(1)
				lastSaved.Store(d)
				return nil
			},
		}
		source := func() Draft {
			return Draft{Notes: fmt.Sprint(version.Add(1))}
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- NewAutosaver(store, source, testLogger, WithInterval(5*time.Millisecond)).Run(ctx)
		}()

		assert.Eventually(t, func() bool { return saves.Load() >= 3 }, time.Second, time.Millisecond)
		cancel()
		assert.NoError(t, <-done)

		last := lastSaved.Load().(Draft)
		assert.NotEqual(t, "1", last.Notes)
	})

	t.Run("keeps going after a failed save", func(t *testing.T) {
		var attempts atomic.Int32

		store := &mockStore{
			SaveFunc: func(ctx context.Context, d Draft) error {
				attempts.Add(1)
				return NewFailedToWriteError("disk full", errors.New("ENOSPC"))
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- NewAutosaver(store, func() Draft { return Draft{} }, testLogger, WithInterval(5*time.Millisecond)).Run(ctx)
		}()

		assert.Eventually(t, func() bool { return attempts.Load() >= 2 }, time.Second, time.Millisecond)
		cancel()
		assert.NoError(t, <-done)
	})

	t.Run("stops without saving when cancelled before the first tick", func(t *testing.T) {
		store := &mockStore{
			SaveFunc: func(ctx context.Context, d Draft) error {
				t.Error("unexpected save")
				return nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewAutosaver(store, func() Draft { return Draft{} }, testLogger).Run(ctx)
		assert.NoError(t, err)
	})
}

func TestDefaultInterval(t *testing.T) {
	a := NewAutosaver(&mockStore{}, func() Draft { return Draft{} }, testLogger)
	assert.Equal(t, 30*time.Second, a.interval)
}
