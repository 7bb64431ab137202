package draft

import (
	"context"
	"log/slog"
	"time"
)

// Autosaver writes a fresh draft to its store on a fixed interval until its
// context is cancelled.
type Autosaver struct {
	store    Store
	source   func() Draft
	interval time.Duration
	logger   *slog.Logger
}

type AutosaverOption func(*Autosaver)

func WithInterval(interval time.Duration) AutosaverOption {
	return func(a *Autosaver) {
		a.interval = interval
	}
}

func NewAutosaver(store Store, source func() Draft, logger *slog.Logger, opts ...AutosaverOption) *Autosaver {
	a := &Autosaver{
		store:    store,
		source:   source,
		interval: SaveInterval,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run blocks until ctx is done. Save failures are logged and the loop keeps
// going.
func (a *Autosaver) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.save(ctx)
		}
	}
}

func (a *Autosaver) save(ctx context.Context) {
	if err := a.store.Save(ctx, a.source()); err != nil {
		a.logger.Error("Failed to autosave draft", "error", err)
		return
	}
	a.logger.Debug("Saved draft")
}
