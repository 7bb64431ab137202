package submission

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/infotech-symposium/event-registration/api"
	"github.com/infotech-symposium/event-registration/events"
	"github.com/infotech-symposium/event-registration/form"
	"github.com/infotech-symposium/event-registration/ptr"
	"github.com/infotech-symposium/event-registration/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noopLogger = slog.New(slog.DiscardHandler)

var beforeDeadline = time.Date(2026, time.January, 20, 9, 5, 7, 0, time.FixedZone("IST", 5*60*60+30*60))

func filledForm(t *testing.T) *form.State {
	t.Helper()

	s := form.New(noopLogger)
	cmds := []form.Command{
		form.SetText{Field: registration.FieldFullName, Value: "Asha Raman"},
		form.SetText{Field: registration.FieldCollege, Value: "Anna University"},
		form.SetText{Field: registration.FieldDepartment, Value: "CSE - III Year"},
		form.SetText{Field: registration.FieldEmail, Value: "asha@example.com"},
		form.SetText{Field: registration.FieldPhone, Value: "9876543210"},
		form.SetText{Field: registration.FieldTransactionID, Value: "UPI123456"},
		form.SetText{Field: registration.FieldMember2, Value: "Alice"},
		form.ToggleEvent{Name: "Treasure Hunt", Checked: true},
		form.AttachReceipt{Receipt: registration.NewReceipt("upi.png", []byte("png"))},
		form.SetTerms{Accepted: true},
	}
	for _, cmd := range cmds {
		require.NoError(t, s.Dispatch(cmd))
	}
	return s
}

func noCallRegistrar(t *testing.T) *mockRegistrar {
	return &mockRegistrar{
		RegisterFunc: func(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error) {
			t.Error("no network call expected")
			return api.RegisterResponse{}, nil
		},
	}
}

func acceptingRegistrar() *mockRegistrar {
	return &mockRegistrar{
		RegisterFunc: func(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error) {
			return api.RegisterResponse{Success: true, Message: ptr.String("Registration received")}, nil
		},
	}
}

func countingDrafts(cleared *int) *mockDraftStore {
	return &mockDraftStore{
		ClearFunc: func(ctx context.Context) error {
			*cleared++
			return nil
		},
	}
}

func requireReason(t *testing.T, err error, reason ErrorReason) *Error {
	t.Helper()

	var subErr *Error
	require.True(t, errors.As(err, &subErr), "expected a submission error, got %v", err)
	assert.Equal(t, reason, subErr.Reason)
	return subErr
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("successful submission clears the draft and resets the form", func(t *testing.T) {
		formState := filledForm(t)
		snapshot := formState.Snapshot()
		cleared := 0
		var states []State

		var sentTerms bool
		var sentRequestId uuid.UUID
		registrar := &mockRegistrar{
			RegisterFunc: func(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error) {
				sentTerms = termsAccepted
				sentRequestId = requestId
				assert.Equal(t, snapshot.FullName, reg.FullName)
				assert.Equal(t, snapshot.Events, reg.Events)
				assert.Equal(t, "upi.png", reg.Receipt.Name)
				return api.RegisterResponse{Success: true, Message: ptr.String("Registration received")}, nil
			},
		}

		h := NewHandler(formState, registrar, countingDrafts(&cleared), noopLogger,
			WithClock(func() time.Time { return beforeDeadline }),
			WithStateListener(func(s State) { states = append(states, s) }),
		)

		outcome, err := h.Submit(ctx)
		require.NoError(t, err)

		expectedSummary, err := registration.GenerateSummary(snapshot, beforeDeadline)
		require.NoError(t, err)
		assert.Equal(t, expectedSummary, outcome.Summary)
		assert.Contains(t, outcome.Summary, "2. **Member 2 Name:** Alice\n3. **Member 3 Name:** None\n4. **Member 4 Name:** None")
		assert.Equal(t, "InfoTech_2026_Registration_Asha_Raman.txt", outcome.SummaryFileName)
		assert.Equal(t, "Registration received", outcome.Message)
		assert.Equal(t, sentRequestId, outcome.RequestID)
		assert.True(t, sentTerms)

		assert.Equal(t, 1, cleared)
		assert.Equal(t, registration.Registration{}, formState.Snapshot())
		assert.False(t, formState.TermsAccepted())
		assert.False(t, formState.TopicPanelVisible())
		assert.Equal(t, "Choose file or drag here", formState.ReceiptLabel())

		assert.Equal(t, []State{Validating, Submitting, Succeeded, Idle}, states)
		assert.Equal(t, Idle, h.State())
	})

	t.Run("no network call after the deadline", func(t *testing.T) {
		formState := filledForm(t)
		cleared := 0

		h := NewHandler(formState, noCallRegistrar(t), countingDrafts(&cleared), noopLogger,
			WithClock(func() time.Time { return registration.SubmissionDeadline.Add(time.Minute) }))

		_, err := h.Submit(ctx)
		subErr := requireReason(t, err, REASON_REGISTRATION_CLOSED)
		assert.Contains(t, subErr.Message, "Registration Closed")

		assert.Equal(t, 0, cleared)
		assert.Equal(t, "Asha Raman", formState.Snapshot().FullName)
	})

	t.Run("invalid form is not sent", func(t *testing.T) {
		formState := filledForm(t)
		require.NoError(t, formState.Dispatch(form.ToggleEvent{Name: "Treasure Hunt", Checked: false}))

		h := NewHandler(formState, noCallRegistrar(t), countingDrafts(new(int)), noopLogger,
			WithClock(func() time.Time { return beforeDeadline }))

		_, err := h.Submit(ctx)
		subErr := requireReason(t, err, REASON_VALIDATION_FAILED)
		assert.Equal(t, "Please fill in all required fields correctly.", subErr.Message)

		var fieldErrs registration.FieldErrors
		require.True(t, errors.As(err, &fieldErrs))
		assert.Contains(t, fieldErrs, registration.FieldEvents)
		assert.Contains(t, formState.Errors(), registration.FieldEvents)
	})

	t.Run("paper presentation without a topic blocks the submission", func(t *testing.T) {
		formState := filledForm(t)
		require.NoError(t, formState.Dispatch(form.ToggleEvent{Name: events.PaperPresentation, Checked: true}))

		h := NewHandler(formState, noCallRegistrar(t), countingDrafts(new(int)), noopLogger,
			WithClock(func() time.Time { return beforeDeadline }))

		_, err := h.Submit(ctx)
		requireReason(t, err, REASON_VALIDATION_FAILED)

		var fieldErrs registration.FieldErrors
		require.True(t, errors.As(err, &fieldErrs))
		blocking := fieldErrs.Blocking()
		require.NotNil(t, blocking)
		assert.Equal(t, "Please enter the topic for your Paper Presentation", blocking.Message)
	})

	t.Run("transport failure keeps the form", func(t *testing.T) {
		formState := filledForm(t)
		cleared := 0
		var states []State

		registrar := &mockRegistrar{
			RegisterFunc: func(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error) {
				return api.RegisterResponse{}, errors.New("connection refused")
			},
		}

		h := NewHandler(formState, registrar, countingDrafts(&cleared), noopLogger,
			WithClock(func() time.Time { return beforeDeadline }),
			WithStateListener(func(s State) { states = append(states, s) }),
		)

		_, err := h.Submit(ctx)
		subErr := requireReason(t, err, REASON_TRANSPORT_FAILURE)
		assert.Equal(t, "An error occurred. Please try again.", subErr.Message)

		assert.Equal(t, 0, cleared)
		assert.Equal(t, "Asha Raman", formState.Snapshot().FullName)
		assert.True(t, formState.TermsAccepted())
		assert.Equal(t, []State{Validating, Submitting, Failed, Idle}, states)
	})

	t.Run("rejection shows the server message", func(t *testing.T) {
		tests := []struct {
			name     string
			message  *string
			expected string
		}{
			{name: "with message", message: ptr.String("Duplicate transaction ID"), expected: "Submission failed: Duplicate transaction ID"},
			{name: "without message", message: nil, expected: "Submission failed"},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				formState := filledForm(t)
				registrar := &mockRegistrar{
					RegisterFunc: func(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error) {
						return api.RegisterResponse{Success: false, Message: tc.message}, nil
					},
				}

				h := NewHandler(formState, registrar, countingDrafts(new(int)), noopLogger,
					WithClock(func() time.Time { return beforeDeadline }))

				_, err := h.Submit(ctx)
				subErr := requireReason(t, err, REASON_REJECTED)
				assert.Equal(t, tc.expected, subErr.Message)
				assert.Equal(t, "Asha Raman", formState.Snapshot().FullName)
			})
		}
	})

	t.Run("failing to clear the draft does not fail the submission", func(t *testing.T) {
		formState := filledForm(t)
		drafts := &mockDraftStore{
			ClearFunc: func(ctx context.Context) error {
				return errors.New("disk full")
			},
		}

		h := NewHandler(formState, acceptingRegistrar(), drafts, noopLogger,
			WithClock(func() time.Time { return beforeDeadline }))

		_, err := h.Submit(ctx)
		assert.NoError(t, err)
		assert.Equal(t, registration.Registration{}, formState.Snapshot())
	})

	t.Run("a second submit while one is in flight is refused", func(t *testing.T) {
		formState := filledForm(t)
		started := make(chan struct{})
		release := make(chan struct{})

		registrar := &mockRegistrar{
			RegisterFunc: func(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error) {
				close(started)
				<-release
				return api.RegisterResponse{Success: true}, nil
			},
		}

		h := NewHandler(formState, registrar, countingDrafts(new(int)), noopLogger,
			WithClock(func() time.Time { return beforeDeadline }))

		var wg sync.WaitGroup
		wg.Add(1)
		var firstErr error
		go func() {
			defer wg.Done()
			_, firstErr = h.Submit(ctx)
		}()

		<-started
		assert.Equal(t, Submitting, h.State())
		_, err := h.Submit(ctx)
		requireReason(t, err, REASON_SUBMISSION_IN_PROGRESS)

		close(release)
		wg.Wait()
		require.NoError(t, firstErr)

		// Released after the first attempt: the now-empty form fails validation instead.
		_, err = h.Submit(ctx)
		requireReason(t, err, REASON_VALIDATION_FAILED)
	})
}
