package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/International-Combat-Archery-Alliance/middleware"
	"github.com/google/uuid"
	"github.com/infotech-symposium/event-registration/ptr"
)

const maxRegisterBodyBytes = 10 << 20

// RegisterRequest is what the stub reads back out of a registration
// submission.
type RegisterRequest struct {
	RequestID     uuid.UUID
	FullName      string
	College       string
	Department    string
	Email         string
	Phone         string
	Events        []string
	PaperTopic    string
	Members       [3]string
	TransactionID string
	ReceiptName   string
	ReceiptSize   int64
	Notes         string
	TermsAccepted bool
}

// Responder decides the answer to a registration that passed contract
// validation.
type Responder func(ctx context.Context, req RegisterRequest) RegisterResponse

// AcceptAll acknowledges every registration.
func AcceptAll(ctx context.Context, req RegisterRequest) RegisterResponse {
	return RegisterResponse{
		Success: true,
		Message: ptr.String("Registration received"),
	}
}

// Stub is a stand-in for the registration backend. It checks requests
// against the contract and answers through its Responder. It stores
// nothing.
type Stub struct {
	logger         *slog.Logger
	env            Environment
	responder      Responder
	allowedOrigins []string
}

type StubOption func(*Stub)

func WithAllowedOrigins(origins ...string) StubOption {
	return func(s *Stub) {
		s.allowedOrigins = origins
	}
}

func NewStub(logger *slog.Logger, env Environment, responder Responder, opts ...StubOption) *Stub {
	if responder == nil {
		responder = AcceptAll
	}

	s := &Stub{
		logger:    logger,
		env:       env,
		responder: responder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stub) Handler() (http.Handler, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	swagger.Servers = nil

	r := http.NewServeMux()
	r.HandleFunc("POST "+RegisterPath, s.register)

	docs, err := middleware.HostSwaggerUI(DocsPath, swagger)
	if err != nil {
		return nil, err
	}

	return middleware.UseMiddlewares(r,
		s.openapiValidateMiddleware(swagger),
		docs,
		s.loggingMiddleware(),
		s.requestContextMiddleware(),
		s.corsMiddleware(),
		middleware.OTELHandler,
	), nil
}

func (s *Stub) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := s.getLoggerOrBaseLogger(ctx)

	req, err := readRegisterRequest(w, r)
	if err != nil {
		logger.Error("Failed to read registration request", slog.String("error", err.Error()))
		writeJSON(w, logger, http.StatusBadRequest, Error{
			Message: err.Error(),
			Code:    InputValidationError,
		})
		return
	}

	req.RequestID = getRequestIdFromCtx(ctx)

	resp := s.responder(ctx, req)
	logger.Info("Registration handled",
		slog.String("email", req.Email),
		slog.Any("events", req.Events),
		slog.String("receipt", req.ReceiptName),
		slog.Bool("success", resp.Success),
	)

	writeJSON(w, logger, http.StatusOK, resp)
}

func readRegisterRequest(w http.ResponseWriter, r *http.Request) (RegisterRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRegisterBodyBytes)
	if err := r.ParseMultipartForm(maxRegisterBodyBytes); err != nil {
		return RegisterRequest{}, err
	}

	req := RegisterRequest{
		FullName:      r.PostFormValue(PartFullName),
		College:       r.PostFormValue(PartCollege),
		Department:    r.PostFormValue(PartDepartment),
		Email:         r.PostFormValue(PartEmail),
		Phone:         r.PostFormValue(PartPhone),
		Events:        r.PostForm[PartEvents],
		PaperTopic:    r.PostFormValue(PartPaperTopic),
		Members:       [3]string{r.PostFormValue(PartMember2), r.PostFormValue(PartMember3), r.PostFormValue(PartMember4)},
		TransactionID: r.PostFormValue(PartTransactionID),
		Notes:         r.PostFormValue(PartNotes),
		TermsAccepted: r.PostFormValue(PartTerms) == TermsAccepted,
	}

	file, header, err := r.FormFile(PartReceipt)
	if err != nil {
		return RegisterRequest{}, err
	}
	defer file.Close()

	size, err := io.Copy(io.Discard, file)
	if err != nil {
		return RegisterRequest{}, err
	}
	req.ReceiptName = header.Filename
	req.ReceiptSize = size

	return req, nil
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		logger.Error("failed to marshal response", "error", err)
		status = http.StatusInternalServerError
		jsonBody = []byte("{\"message\": \"internal error\", \"code\": \"InternalError\"}")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonBody)
}
