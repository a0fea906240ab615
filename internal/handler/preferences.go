package handler

import (
	"encoding/json"
	"net/http"

	"github.com/acameron/flightduty/backend/internal/config"
	"github.com/acameron/flightduty/backend/internal/domain"
)

// preferencesDTO is the wire shape of the settings panel.
type preferencesDTO struct {
	Regulator         string `json:"regulator"`
	AcclZone          string `json:"acclimatization_zone"`
	ReferenceZone     string `json:"reference_zone"`
	TimeFormat        string `json:"time_format"`
	Theme             string `json:"theme"`
	LastSectors       int    `json:"last_sectors"`
	LastAvgSectorTime string `json:"last_avg_sector_time"`
}

// GetPreferences handles GET /preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, _ *http.Request) {
	p := s.preferences()
	writeJSON(w, http.StatusOK, preferencesDTO{
		Regulator:         string(p.Regulator),
		AcclZone:          p.AcclZone,
		ReferenceZone:     p.ReferenceZone,
		TimeFormat:        p.TimeFormat,
		Theme:             p.Theme,
		LastSectors:       p.LastSectors,
		LastAvgSectorTime: string(p.LastAvgSectorTime),
	})
}

// PutPreferences handles PUT /preferences. The regulator and sector band
// are validated outright; zones and display settings are normalized to
// defaults when invalid, matching how the preferences file is loaded.
func (s *Server) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var dto preferencesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required")
		return
	}

	reg, err := domain.ParseRegulator(dto.Regulator)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "regulator must be one of TC, FAA, EASA, Australia")
		return
	}
	avg := domain.AvgSectorUnder30
	if dto.LastAvgSectorTime != "" {
		avg, err = domain.ParseAvgSectorTime(dto.LastAvgSectorTime)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", "last_avg_sector_time must be one of <30, 30-50, >=50")
			return
		}
	}

	prefs := domain.UserPreferences{
		Regulator:         reg,
		AcclZone:          dto.AcclZone,
		ReferenceZone:     dto.ReferenceZone,
		TimeFormat:        dto.TimeFormat,
		Theme:             dto.Theme,
		LastSectors:       dto.LastSectors,
		LastAvgSectorTime: avg,
	}
	// The in-memory copy must match what Save persists, so normalize here
	// rather than leaving it to the store.
	config.NormalizePreferences(&prefs)

	s.mu.Lock()
	s.prefs = prefs
	s.mu.Unlock()

	if s.prefStore != nil {
		if err := s.prefStore.Save(prefs); err != nil {
			writeError(w, http.StatusInternalServerError, "internal", "failed to persist preferences")
			return
		}
	}
	s.GetPreferences(w, r)
}
