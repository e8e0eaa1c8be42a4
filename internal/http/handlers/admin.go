package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gmontenegrodev/web-app/internal/http/requestutil"
	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/store"
)

// Refresher reloads one schedule date on demand; empty means today.
type Refresher interface {
	RefreshNow(ctx context.Context, date string) (store.ScheduleDay, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin route.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Enabled reports whether admin routes should be mounted.
func (h *AdminHandler) Enabled() bool {
	return h != nil && h.token != ""
}

// RefreshSchedule reloads the schedule for ?date= (defaults to today) and pushes it to subscribers.
// There is no automatic retry upstream; this is how an operator re-triggers a failed load.
func (h *AdminHandler) RefreshSchedule(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	date, err := queryDate(r)
	if err != nil {
		logging.Warn(logger, "admin refresh invalid date", slog.String(logging.FieldDate, r.URL.Query().Get("date")))
		writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
		return
	}

	day, err := h.refresher.RefreshNow(r.Context(), date)
	if err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":   day.Date,
		"games":  len(day.Games),
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin schedule refreshed",
		slog.String(logging.FieldDate, day.Date),
		slog.Int(logging.FieldCount, len(day.Games)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
