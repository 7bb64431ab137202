package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/infotech-symposium/event-registration/registration"
	"github.com/infotech-symposium/event-registration/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testOutcome() submission.Outcome {
	return submission.Outcome{
		Message:         "Registration received",
		Summary:         "=== InfoTech 2026 Registration Summary ===\n\nName: Asha Raman\n",
		SummaryFileName: "InfoTech2026_Registration_Asha_Raman.txt",
	}
}

func TestSummaryModel(t *testing.T) {
	now := time.Date(2026, time.February, 3, 23, 59, 59, 0, time.FixedZone("IST", 5*60*60+30*60))

	t.Run("copy to clipboard", func(t *testing.T) {
		var copied string
		orig := clipboardWriteAll
		clipboardWriteAll = func(text string) error {
			copied = text
			return nil
		}
		t.Cleanup(func() { clipboardWriteAll = orig })

		m := newSummaryModel(testOutcome(), t.TempDir(), now)
		updated, _ := m.Update(keyPress("c"))

		assert.Equal(t, testOutcome().Summary, copied)
		assert.Contains(t, updated.(summaryModel).status, "Summary copied to clipboard!")
	})

	t.Run("copy failure", func(t *testing.T) {
		orig := clipboardWriteAll
		clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
		t.Cleanup(func() { clipboardWriteAll = orig })

		m := newSummaryModel(testOutcome(), t.TempDir(), now)
		updated, _ := m.Update(keyPress("c"))

		assert.Contains(t, updated.(summaryModel).status, "Failed to copy to clipboard")
	})

	t.Run("download writes the summary file", func(t *testing.T) {
		dir := t.TempDir()
		m := newSummaryModel(testOutcome(), dir, now)

		updated, _ := m.Update(keyPress("d"))

		data, err := os.ReadFile(filepath.Join(dir, testOutcome().SummaryFileName))
		require.NoError(t, err)
		assert.Equal(t, testOutcome().Summary, string(data))
		assert.Contains(t, updated.(summaryModel).status, "Saved to")
	})

	t.Run("download failure", func(t *testing.T) {
		m := newSummaryModel(testOutcome(), filepath.Join(t.TempDir(), "missing"), now)

		updated, _ := m.Update(keyPress("d"))

		assert.Contains(t, updated.(summaryModel).status, "failed to save summary")
	})

	t.Run("countdown refreshes on tick", func(t *testing.T) {
		m := newSummaryModel(testOutcome(), t.TempDir(), now)
		assert.Equal(t, "Registration closes in 2 days!", m.countdown)

		updated, cmd := m.Update(countdownMsg(registration.CountdownClose.Add(-90 * time.Minute)))

		assert.Equal(t, "Registration closes in 1 hour and 30 minutes!", updated.(summaryModel).countdown)
		assert.NotNil(t, cmd)
	})

	t.Run("quit", func(t *testing.T) {
		m := newSummaryModel(testOutcome(), t.TempDir(), now)

		for _, msg := range []tea.KeyMsg{keyPress("q"), {Type: tea.KeyEsc}} {
			_, cmd := m.Update(msg)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		}
	})

	t.Run("resize", func(t *testing.T) {
		m := newSummaryModel(testOutcome(), t.TempDir(), now)

		updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

		assert.Equal(t, 98, updated.(summaryModel).viewport.Width)
		assert.Equal(t, 34, updated.(summaryModel).viewport.Height)
	})

	t.Run("view", func(t *testing.T) {
		view := newSummaryModel(testOutcome(), t.TempDir(), now).View()

		assert.Contains(t, view, "Registration Summary")
		assert.Contains(t, view, "Asha Raman")
		assert.Contains(t, view, "Registration closes in 2 days!")
	})
}

func TestRenderSubmitError(t *testing.T) {
	t.Run("validation lists the fields", func(t *testing.T) {
		err := submission.NewValidationFailedError(registration.FieldErrors{
			registration.FieldPhone: registration.NewInvalidPhoneError(),
			registration.FieldEmail: registration.NewInvalidEmailError(),
		})

		out := renderSubmitError(err)

		assert.Contains(t, out, "Please fill in all required fields correctly.")
		assert.Less(t, strings.Index(out, "email: "), strings.Index(out, "phone: "))
	})

	t.Run("paper topic is shown first", func(t *testing.T) {
		err := submission.NewValidationFailedError(registration.FieldErrors{
			registration.FieldPaperTopic: registration.NewPaperTopicRequiredError(),
		})

		out := renderSubmitError(err)

		assert.Less(t,
			strings.Index(out, "Please enter the topic for your Paper Presentation"),
			strings.Index(out, "Please fill in all required fields correctly."))
	})

	t.Run("rejected", func(t *testing.T) {
		message := "Duplicate transaction"
		out := renderSubmitError(submission.NewRejectedError(&message))

		assert.Contains(t, out, "Submission failed: Duplicate transaction")
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Contains(t, renderSubmitError(errors.New("boom")), "boom")
	})
}

func TestRenderSuccess(t *testing.T) {
	assert.Contains(t, renderSuccess(testOutcome()), "Registration received")
	assert.Contains(t, renderSuccess(submission.Outcome{}), "Registration successful!")
}
