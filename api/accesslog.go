package api

import "net/http"

// accessLogWriter records what the stub sent back so the access log can
// report it. Only the first status written counts, matching net/http.
type accessLogWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	bodyBytes   int
}

func newAccessLogWriter(w http.ResponseWriter) *accessLogWriter {
	return &accessLogWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (w *accessLogWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *accessLogWriter) Write(data []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(data)
	w.bodyBytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *accessLogWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
