package form

import (
	"github.com/infotech-symposium/event-registration/draft"
	"github.com/infotech-symposium/event-registration/registration"
)

// Draft extracts the fields that are kept between sessions.
func (s *State) Draft() draft.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	return draft.Draft{
		FullName:   s.reg.FullName,
		College:    s.reg.College,
		Department: s.reg.Department,
		Email:      s.reg.Email,
		Phone:      s.reg.Phone,
		Member2:    s.reg.TeamMembers[0],
		Member3:    s.reg.TeamMembers[1],
		Member4:    s.reg.TeamMembers[2],
		Notes:      s.reg.Notes,
	}
}

// Restore fills the form from a saved draft. Empty draft values leave the
// matching field untouched. The phone number is reduced to its digits as if
// it had been typed.
func (s *State) Restore(d draft.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restore := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	restore(&s.reg.FullName, d.FullName)
	restore(&s.reg.College, d.College)
	restore(&s.reg.Department, d.Department)
	restore(&s.reg.Email, d.Email)
	restore(&s.reg.Phone, registration.SanitizePhone(d.Phone))
	restore(&s.reg.TeamMembers[0], d.Member2)
	restore(&s.reg.TeamMembers[1], d.Member3)
	restore(&s.reg.TeamMembers[2], d.Member4)
	restore(&s.reg.Notes, d.Notes)
}
