package form

import (
	"fmt"
	"slices"

	"github.com/infotech-symposium/event-registration/events"
	"github.com/infotech-symposium/event-registration/registration"
)

// Command is a single user edit applied to the form.
type Command interface {
	apply(s *State) error
}

// SetText replaces the value of a text field. Email and phone are checked
// live and the phone number is reduced to its digits.
type SetText struct {
	Field registration.Field
	Value string
}

// ToggleEvent checks or unchecks a single event.
type ToggleEvent struct {
	Name    string
	Checked bool
}

// SelectEvents replaces the whole event selection.
type SelectEvents struct {
	Names []string
}

type AttachReceipt struct {
	Receipt registration.Receipt
}

type DetachReceipt struct{}

type SetTerms struct {
	Accepted bool
}

// Reset returns the form to its initial empty state.
type Reset struct{}

// Dispatch applies a command to the form. Validation problems are recorded
// as inline errors and are not returned; an error here means the command
// itself could not be applied.
func (s *State) Dispatch(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := cmd.apply(s); err != nil {
		s.logger.Warn("Failed to apply form command", "command", fmt.Sprintf("%T", cmd), "error", err)
		return err
	}
	return nil
}

func (c SetText) apply(s *State) error {
	value, validationErr := registration.ValidateField(c.Field, c.Value)
	if err := s.reg.SetText(c.Field, value); err != nil {
		return err
	}

	switch c.Field {
	case registration.FieldEmail, registration.FieldPhone:
		s.setError(c.Field, validationErr)
	default:
		delete(s.errors, c.Field)
	}
	if c.Field == registration.FieldPaperTopic {
		s.setError(registration.FieldPaperTopic, registration.ValidatePaperTopic(s.reg.Events, value))
	}
	return nil
}

func (c ToggleEvent) apply(s *State) error {
	if _, err := events.Lookup(c.Name); err != nil {
		return err
	}

	selected := s.selectedEvents()
	idx := slices.Index(selected, c.Name)
	switch {
	case c.Checked && idx < 0:
		selected = append(selected, c.Name)
	case !c.Checked && idx >= 0:
		selected = slices.Delete(selected, idx, idx+1)
	}

	s.setEvents(selected)
	return nil
}

func (c SelectEvents) apply(s *State) error {
	selected := make([]string, 0, len(c.Names))
	for _, name := range c.Names {
		if _, err := events.Lookup(name); err != nil {
			return err
		}
		if !slices.Contains(selected, name) {
			selected = append(selected, name)
		}
	}

	s.setEvents(selected)
	return nil
}

// setEvents keeps the selection in catalogue order, so the submitted list
// matches the order the checkboxes appear in.
func (s *State) setEvents(selected []string) {
	ordered := make([]string, 0, len(selected))
	for _, name := range events.Names(events.All()) {
		if slices.Contains(selected, name) {
			ordered = append(ordered, name)
		}
	}
	s.reg.Events = ordered

	if !s.reg.HasEvent(events.PaperPresentation) {
		s.reg.PaperTopic = ""
		delete(s.errors, registration.FieldPaperTopic)
	}
	s.setError(registration.FieldEvents, registration.ValidateEvents(ordered))
}

func (c AttachReceipt) apply(s *State) error {
	receipt := c.Receipt
	s.reg.Receipt = &receipt
	delete(s.errors, registration.FieldReceipt)
	return nil
}

func (c DetachReceipt) apply(s *State) error {
	s.reg.Receipt = nil
	return nil
}

func (c SetTerms) apply(s *State) error {
	s.terms = c.Accepted
	if c.Accepted {
		delete(s.errors, registration.FieldTerms)
	}
	return nil
}

func (c Reset) apply(s *State) error {
	s.reg = registration.Registration{}
	s.terms = false
	s.errors = registration.FieldErrors{}
	return nil
}
