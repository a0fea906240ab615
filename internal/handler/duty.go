package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/service"
)

// dutyRequest is the candidate duty DTO. Date and time components stay as
// the form strings the user typed; the validator owns parsing.
type dutyRequest struct {
	StartDate     string `json:"start_date"`
	StartTime     string `json:"start_time"`
	EndDate       string `json:"end_date"`
	EndTime       string `json:"end_time"`
	Sectors       int    `json:"sectors"`
	AvgSectorTime string `json:"avg_sector_time"`
	AcclZone      string `json:"accl_zone"`
	RestType      string `json:"rest_type"`

	// ProceedOnOverlap carries the user's choice after a needs_choice
	// response: record the duty and flag it violated.
	ProceedOnOverlap bool `json:"proceed_on_overlap"`
}

// commitResponse mirrors service.CommitResult for the wire.
type commitResponse struct {
	Duty     domain.Event          `json:"duty"`
	Rest     *domain.Event         `json:"rest,omitempty"`
	LNRs     []domain.Event        `json:"lnrs,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
	Reminder *service.ReminderPlan `json:"reminder,omitempty"`
	Advisory string                `json:"advisory,omitempty"`
}

// CreateDuty handles POST /duties.
func (s *Server) CreateDuty(w http.ResponseWriter, r *http.Request) {
	var req dutyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required")
		return
	}

	prefs := s.preferences()
	input, err := requestToInput(req, prefs)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	result, err := s.duties.Create(input, prefs, req.ProceedOnOverlap)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.reminders != nil {
		s.reminders.Schedule(result.Reminder)
	}
	s.rememberFormDefaults(input)
	writeJSON(w, http.StatusCreated, commitToResponse(result))
}

// UpdateDuty handles PUT /duties/{id}.
func (s *Server) UpdateDuty(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid duty id")
		return
	}
	var req dutyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required")
		return
	}

	prefs := s.preferences()
	input, err := requestToInput(req, prefs)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	result, err := s.duties.Update(id, input, prefs)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.reminders != nil {
		s.reminders.Schedule(result.Reminder)
	}
	s.rememberFormDefaults(input)
	writeJSON(w, http.StatusOK, commitToResponse(result))
}

// DeleteDuty handles DELETE /duties/{id} with full cascade.
func (s *Server) DeleteDuty(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid duty id")
		return
	}
	if err := s.duties.Delete(id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MaxFDP handles GET /duties/maxfdp, the "Check Max Duty" preview.
// Query: start_date, start_time, sectors, avg_sector_time, accl_zone.
func (s *Server) MaxFDP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	prefs := s.preferences()
	req := dutyRequest{
		StartDate:     q.Get("start_date"),
		StartTime:     q.Get("start_time"),
		AvgSectorTime: q.Get("avg_sector_time"),
		AcclZone:      q.Get("accl_zone"),
	}
	if v := q.Get("sectors"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &req.Sectors); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", "sectors must be an integer")
			return
		}
	}
	input, err := requestToInput(req, prefs)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	hours, err := s.duties.MaxFDPPreview(input, prefs)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"max_fdp_hours": hours,
		"regulator":     prefs.Regulator.DisplayName(),
		"message":       fmt.Sprintf("Max FDP: %g hours (%s)", hours, prefs.Regulator.DisplayName()),
	})
}

// --- mapping helpers --------------------------------------------------------

// requestToInput converts the DTO into a domain.DutyInput, filling sector
// count and average sector time from the remembered form defaults when the
// request omits them.
func requestToInput(req dutyRequest, prefs domain.UserPreferences) (domain.DutyInput, error) {
	sectors := req.Sectors
	if sectors == 0 {
		sectors = prefs.LastSectors
	}
	if sectors < 1 {
		return domain.DutyInput{}, fmt.Errorf("sectors must be at least 1")
	}

	avg := prefs.LastAvgSectorTime
	if req.AvgSectorTime != "" {
		parsed, err := domain.ParseAvgSectorTime(req.AvgSectorTime)
		if err != nil {
			return domain.DutyInput{}, fmt.Errorf("avg_sector_time must be one of <30, 30-50, >=50")
		}
		avg = parsed
	}

	restType, err := domain.ParseRestType(req.RestType)
	if err != nil {
		return domain.DutyInput{}, fmt.Errorf("rest_type must be 12h or 10+travel")
	}

	return domain.DutyInput{
		StartDate:     req.StartDate,
		StartTime:     req.StartTime,
		EndDate:       req.EndDate,
		EndTime:       req.EndTime,
		Sectors:       sectors,
		AvgSectorTime: avg,
		AcclZone:      req.AcclZone,
		RestType:      restType,
	}, nil
}

func commitToResponse(result service.CommitResult) commitResponse {
	return commitResponse{
		Duty:     result.Duty,
		Rest:     result.Rest,
		LNRs:     result.LNRs,
		Warnings: result.Warnings,
		Reminder: result.Reminder,
		Advisory: result.Advisory,
	}
}

// rememberFormDefaults updates the last-used sector count and average
// sector time, mirroring how the original form pre-fills itself.
func (s *Server) rememberFormDefaults(input domain.DutyInput) {
	s.mu.Lock()
	s.prefs.LastSectors = input.Sectors
	s.prefs.LastAvgSectorTime = input.AvgSectorTime
	if input.AcclZone != "" {
		s.prefs.AcclZone = input.AcclZone
	}
	prefs := s.prefs
	s.mu.Unlock()

	if s.prefStore != nil {
		_ = s.prefStore.Save(prefs) // best effort; losing a form default is harmless
	}
}
