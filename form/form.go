package form

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/infotech-symposium/event-registration/events"
	"github.com/infotech-symposium/event-registration/registration"
)

const receiptPlaceholder = "Choose file or drag here"

// State is the in-memory form: the answers so far, the terms checkbox and
// the inline errors currently shown. It is safe for concurrent use, since
// the autosaver reads it while the user is still typing.
type State struct {
	mu sync.Mutex

	reg    registration.Registration
	terms  bool
	errors registration.FieldErrors

	logger *slog.Logger
}

func New(logger *slog.Logger) *State {
	return &State{
		errors: registration.FieldErrors{},
		logger: logger,
	}
}

// Snapshot returns an independent copy of the current answers.
func (s *State) Snapshot() registration.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reg.Clone()
}

func (s *State) TermsAccepted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.terms
}

// Errors returns the inline errors currently shown, keyed by field.
func (s *State) Errors() registration.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.errors.Clone()
}

// Validate runs every check over the current answers and replaces the shown
// errors with the result.
func (s *State) Validate() registration.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors = registration.ValidateForm(s.reg, s.terms)
	return s.errors.Clone()
}

// ValidatedSnapshot validates the current answers and copies them under one
// lock, so the record returned is exactly the one the errors describe.
func (s *State) ValidatedSnapshot() (registration.Registration, bool, registration.FieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors = registration.ValidateForm(s.reg, s.terms)
	return s.reg.Clone(), s.terms, s.errors.Clone()
}

// TopicPanelVisible reports whether the paper topic input should be shown.
func (s *State) TopicPanelVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reg.HasEvent(events.PaperPresentation)
}

func (s *State) ReceiptLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reg.Receipt == nil {
		return receiptPlaceholder
	}
	return "📎 " + s.reg.Receipt.Name
}

func (s *State) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return registration.Progress(s.reg, s.terms)
}

func (s *State) setError(f registration.Field, err error) {
	if err == nil {
		delete(s.errors, f)
		return
	}
	if regErr, ok := err.(*registration.Error); ok {
		s.errors[f] = regErr
	}
}

func (s *State) selectedEvents() []string {
	return slices.Clone(s.reg.Events)
}
