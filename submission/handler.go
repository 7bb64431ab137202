package submission

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/infotech-symposium/event-registration/api"
	"github.com/infotech-symposium/event-registration/draft"
	"github.com/infotech-symposium/event-registration/form"
	"github.com/infotech-symposium/event-registration/registration"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/infotech-symposium/event-registration/submission"

type State int32

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Validating:
		return "Validating"
	case Submitting:
		return "Submitting"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Registrar sends a registration to the backend.
type Registrar interface {
	Register(ctx context.Context, reg registration.Registration, termsAccepted bool, requestId uuid.UUID) (api.RegisterResponse, error)
}

var _ Registrar = &Client{}

// Outcome is a confirmed registration.
type Outcome struct {
	RequestID       uuid.UUID
	Message         string
	Summary         string
	SummaryFileName string
}

// Handler drives one submit attempt at a time from the form to the
// backend.
type Handler struct {
	form      *form.State
	registrar Registrar
	drafts    draft.Store
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
	onState   func(State)

	busy  atomic.Bool
	state atomic.Int32
}

type Option func(*Handler)

func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// WithStateListener is called on every state change.
func WithStateListener(listener func(State)) Option {
	return func(h *Handler) {
		h.onState = listener
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Handler) {
		h.tracer = tp.Tracer(tracerName)
	}
}

func NewHandler(formState *form.State, registrar Registrar, drafts draft.Store, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		form:      formState,
		registrar: registrar,
		drafts:    drafts,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		onState:   func(State) {},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) State() State {
	return State(h.state.Load())
}

func (h *Handler) setState(s State) {
	h.state.Store(int32(s))
	h.onState(s)
}

// Submit runs the deadline check, validation and the network call. Any
// failure leaves the form as it was. On success the stored draft is
// cleared and the form is reset.
func (h *Handler) Submit(ctx context.Context) (Outcome, error) {
	if !h.busy.CompareAndSwap(false, true) {
		return Outcome{}, NewSubmissionInProgressError()
	}
	defer h.busy.Store(false)
	defer h.setState(Idle)

	requestId := uuid.New()
	logger := h.logger.With(slog.String("request-id", requestId.String()))

	ctx, span := h.tracer.Start(ctx, "Submit", trace.WithAttributes(
		attribute.String("request.id", requestId.String()),
	))
	defer span.End()

	outcome, err := h.submit(ctx, logger, requestId)
	if err != nil {
		h.setState(Failed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("Registration submission failed", slog.String("error", err.Error()))
		return Outcome{}, err
	}

	h.setState(Succeeded)
	logger.Info("Registration submitted")
	return outcome, nil
}

func (h *Handler) submit(ctx context.Context, logger *slog.Logger, requestId uuid.UUID) (Outcome, error) {
	now := h.now()
	if err := registration.CheckDeadline(now); err != nil {
		var regErr *registration.Error
		if errors.As(err, &regErr) {
			return Outcome{}, NewRegistrationClosedError(regErr.Message, err)
		}
		return Outcome{}, NewRegistrationClosedError(err.Error(), err)
	}

	h.setState(Validating)
	snapshot, termsAccepted, errs := h.form.ValidatedSnapshot()
	if !errs.Valid() {
		return Outcome{}, NewValidationFailedError(errs)
	}

	h.setState(Submitting)

	resp, err := h.registrar.Register(ctx, snapshot, termsAccepted, requestId)
	if err != nil {
		return Outcome{}, NewTransportFailureError(err)
	}
	if !resp.Success {
		return Outcome{}, NewRejectedError(resp.Message)
	}

	outcome := Outcome{
		RequestID:       requestId,
		SummaryFileName: registration.SummaryFileName(snapshot.FullName),
	}
	if resp.Message != nil {
		outcome.Message = *resp.Message
	}

	summary, err := registration.GenerateSummary(snapshot, now)
	if err != nil {
		logger.Error("Failed to generate registration summary", slog.String("error", err.Error()))
	}
	outcome.Summary = summary

	if err := h.drafts.Clear(ctx); err != nil {
		logger.Error("Failed to clear draft after registration", slog.String("error", err.Error()))
	}
	if err := h.form.Dispatch(form.Reset{}); err != nil {
		logger.Error("Failed to reset form after registration", slog.String("error", err.Error()))
	}

	return outcome, nil
}
