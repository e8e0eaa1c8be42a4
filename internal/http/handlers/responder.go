package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gmontenegrodev/web-app/internal/http/middleware"
	"github.com/gmontenegrodev/web-app/internal/http/requestutil"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeUpstreamError maps a failed service call onto a status code.
// Rate limits become 503 with Retry-After, 404s stay 404, everything else upstream is 502.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := upstreamStatus(err)
	if rl, ok := providers.AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds())))
	}
	attrs := []any{slog.Int(logging.FieldStatusCode, status)}
	if upErr, ok := providers.AsUpstreamError(err); ok {
		attrs = append(attrs, slog.String(logging.FieldOp, upErr.Op))
	}
	logging.Error(logger, "request failed", err, attrs...)
	writeError(w, r, status, message, logger)
}

func upstreamStatus(err error) (int, string) {
	if _, ok := providers.AsRateLimitError(err); ok {
		return http.StatusServiceUnavailable, "upstream rate limited"
	}
	switch {
	case providers.IsNotFound(err):
		return http.StatusNotFound, "not found"
	case errors.Is(err, providers.ErrProviderUnavailable):
		return http.StatusServiceUnavailable, "provider unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timed out"
	default:
		return http.StatusBadGateway, "upstream request failed"
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
