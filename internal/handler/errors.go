package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/service"
)

// errorResponse is the uniform error body for every non-2xx JSON response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// respondServiceError maps service-layer sentinels onto status codes.
// Unrecognized errors become a 500 with a generic body so internals never
// leak to the client.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOverlapNeedsChoice):
		writeError(w, http.StatusConflict, "needs_choice",
			"Duty period overlaps with a rest period. Abort to edit the duty, or resubmit with proceed_on_overlap to record it anyway.")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// unwrapMessage strips the service call-site prefix from a wrapped sentinel,
// e.g. "service.DutyService.Validate: flight duty period exceeded: FDP
// exceeds table limit for CAR 705" → everything after the first prefix.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && strings.HasPrefix(msg, "service.") {
		return msg[i+2:]
	}
	return msg
}
