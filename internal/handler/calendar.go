package handler

import (
	"net/http"
	"time"

	"github.com/acameron/flightduty/backend/internal/tzutil"
)

// Calendar handles GET /calendar?from=&to=: per-day marker lists and
// violation indicators for the presentation layer to render. from/to are
// dates in the preferences' reference zone; both days are included.
func (s *Server) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("from") == "" || q.Get("to") == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "from and to are required")
		return
	}

	prefs := s.preferences()
	loc := time.UTC
	if prefs.ReferenceZone != "" {
		l, err := tzutil.LoadZone(prefs.ReferenceZone)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		loc = l
	}

	from, err := time.ParseInLocation("2006-01-02", q.Get("from"), loc)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "from must be a date (2006-01-02)")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", q.Get("to"), loc)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "to must be a date (2006-01-02)")
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "to must not be before from")
		return
	}

	days, err := s.annotator.Range(from, to, prefs)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

// ExportICS handles GET /export.ics.
func (s *Server) ExportICS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="flightduty.ics"`)
	_, _ = w.Write([]byte(s.exporter.ICS()))
}
