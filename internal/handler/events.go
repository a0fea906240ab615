package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/acameron/flightduty/backend/internal/domain"
)

// ListEvents handles GET /events?from=&to=.
// from/to accept RFC 3339 instants or plain dates; a date covers its whole
// day. Defaults: from = 14 months back, to = 3 months ahead (the calendar's
// navigable range).
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	from, to, err := rangeParams(r, time.Now().AddDate(0, -14, 0), time.Now().AddDate(0, 3, 0))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	events := s.duties.Events(from, to)
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// DeleteEvent handles DELETE /events/{id}: removes a single event without
// cascading (the rest-details delete action).
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid event id")
		return
	}
	if err := s.duties.RemoveEvent(id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteEventRange handles DELETE /events?from=&to=: removes every event
// starting in the range (the "delete all events in the current month"
// action). Both bounds are required here; a silent full wipe would be too
// easy to trigger otherwise.
func (s *Server) DeleteEventRange(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "from and to are required")
		return
	}
	from, to, err := rangeParams(r, time.Time{}, time.Time{})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	removed := s.duties.DeleteRange(from, to)
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// rangeParams parses the from/to query pair, applying defaults when absent.
func rangeParams(r *http.Request, defFrom, defTo time.Time) (time.Time, time.Time, error) {
	from, err := timeParam(r.URL.Query().Get("from"), defFrom, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := timeParam(r.URL.Query().Get("to"), defTo, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// timeParam parses an RFC 3339 instant or a plain date. Dates resolve to
// midnight UTC; when the value is a range end, the following midnight, so
// the named day is included.
func timeParam(v string, def time.Time, rangeEnd bool) (time.Time, error) {
	if v == "" {
		return def, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	if rangeEnd {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}
