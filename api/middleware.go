package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/International-Combat-Archery-Alliance/middleware"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/google/uuid"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/trace"
)

func (s *Stub) loggingMiddleware() middleware.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			aw := newAccessLogWriter(w)
			next.ServeHTTP(aw, r)

			s.getLoggerOrBaseLogger(r.Context()).InfoContext(r.Context(),
				"Access log",
				slog.String("latency", formatDuration(time.Since(start))),
				slog.Int64("request-content-length", r.ContentLength),
				slog.Int("resp-body-size", aw.bodyBytes),
				slog.String("host", r.Host),
				slog.String("method", r.Method),
				slog.Int("status-code", aw.statusCode),
				slog.String("path", r.URL.Path),
				slog.String("content-type", r.Header.Get("Content-Type")),
			)
		})
	}
}

// requestContextMiddleware attaches the request id and a logger tagged with
// it. A valid id sent by the client is kept so both sides log the same one.
// Requests that arrive inside a trace also get the trace and span ids.
func (s *Stub) requestContextMiddleware() middleware.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId, err := uuid.Parse(r.Header.Get(RequestIDHeader))
			if err != nil {
				requestId = uuid.New()
			}
			w.Header().Set(RequestIDHeader, requestId.String())

			ctx := ctxWithRequestId(r.Context(), requestId)
			logger := s.logger.With(slog.String("request-id", requestId.String()))

			if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
				logger = logger.With(
					slog.String("trace_id", spanCtx.TraceID().String()),
					slog.String("span_id", spanCtx.SpanID().String()),
				)
				ctx = middleware.CtxWithTraceID(ctx, spanCtx.TraceID().String())
				ctx = middleware.CtxWithSpanID(ctx, spanCtx.SpanID().String())
			}
			ctx = ctxWithLogger(ctx, logger)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Stub) openapiValidateMiddleware(swagger *openapi3.T) middleware.MiddlewareFunc {
	return nethttpmiddleware.OapiRequestValidatorWithOptions(swagger, &nethttpmiddleware.Options{
		ErrorHandlerWithOpts: func(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, opts nethttpmiddleware.ErrorHandlerOpts) {
			var e Error

			var requestErr *openapi3filter.RequestError
			if errors.As(err, &requestErr) {
				e = Error{
					Message: err.Error(),
					Code:    InputValidationError,
				}
			} else {
				e = Error{
					Message: err.Error(),
					Code:    InternalError,
				}
			}
			s.getLoggerOrBaseLogger(ctx).Warn("Request failed contract validation", slog.String("error", err.Error()))

			jsonBody, err := json.Marshal(&e)
			if err != nil {
				s.logger.Error("failed to marshal input validation error resp", "error", err)
				jsonBody = []byte("{\"message\": \"input is invalid\", \"code\": \"InputValidationError\"}")
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(opts.StatusCode)
			w.Write(jsonBody)
		},
	})
}

func (s *Stub) corsMiddleware() middleware.MiddlewareFunc {
	var serverCors *cors.Cors

	switch s.env {
	case LOCAL:
		serverCors = cors.AllowAll()
	case PROD:
		serverCors = cors.New(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodPost},
			AllowedHeaders: []string{"Content-Type", RequestIDHeader},
			MaxAge:         300,
		})
	}

	return serverCors.Handler
}

func (s *Stub) getLoggerOrBaseLogger(ctx context.Context) *slog.Logger {
	if logger, ok := getLoggerFromCtx(ctx); ok {
		return logger
	}
	return s.logger
}

// formatDuration formats a duration to one decimal point.
func formatDuration(d time.Duration) string {
	div := time.Duration(10)
	switch {
	case d > time.Second:
		d = d.Round(time.Second / div)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond / div)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond / div)
	case d > time.Nanosecond:
		d = d.Round(time.Nanosecond / div)
	}
	return d.String()
}
