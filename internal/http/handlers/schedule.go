package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gmontenegrodev/web-app/internal/logging"
	"github.com/gmontenegrodev/web-app/internal/store"
	"github.com/gmontenegrodev/web-app/internal/viewmodel"
)

// ScheduleResponse is the composed schedule for one date.
type ScheduleResponse struct {
	Date      string                    `json:"date"`
	FetchedAt time.Time                 `json:"fetchedAt"`
	Entries   []viewmodel.ScheduleEntry `json:"entries"`
}

// Schedule returns one entry per org team for ?date=, today when absent.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	date, err := queryDate(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	date = h.schedule.ResolveDate(date)

	// Team names come from metadata; a failure here still leaves a usable schedule.
	if err := h.teams.EnsureMetadata(r.Context()); err != nil {
		logging.Warn(logger, "team metadata unavailable", slog.String(logging.FieldDate, date), "error", err)
	}

	day, err := h.schedule.Day(r.Context(), date)
	if err != nil {
		writeUpstreamError(w, r, err, logger)
		return
	}

	resp := h.ScheduleView(day)
	logging.Info(logger, "served schedule",
		slog.String(logging.FieldDate, resp.Date),
		slog.Int(logging.FieldCount, len(resp.Entries)),
	)
	writeJSON(w, http.StatusOK, resp, logger)
}

// ScheduleView composes a stored day with the current team metadata.
func (h *Handler) ScheduleView(day store.ScheduleDay) ScheduleResponse {
	entries := viewmodel.ComposeSchedule(viewmodel.ScheduleInput{
		Date:     day.Date,
		TeamIDs:  h.schedule.TeamIDs(),
		Teams:    h.teams.Metadata(),
		Games:    day.Games,
		Live:     day.Live,
		Location: h.loc,
	})
	return ScheduleResponse{Date: day.Date, FetchedAt: day.FetchedAt, Entries: entries}
}
