package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acameron/flightduty/backend/internal/domain"
)

// ---- GET /events -----------------------------------------------------------

func TestListEvents(t *testing.T) {
	events := []domain.Event{
		{ID: uuid.New(), Title: "Duty Period", Kind: domain.KindDuty},
		{ID: uuid.New(), Title: "Required Rest", Kind: domain.KindRest},
	}
	duties := &mockDutyService{
		eventsFn: func(from, to time.Time) []domain.Event {
			assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), from)
			// A date range end covers the whole named day.
			assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), to)
			return events
		},
	}
	srv, _, _ := newTestServer(duties)

	w := doRequest(srv, http.MethodGet, "/events/?from=2026-06-01&to=2026-06-30", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []domain.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Events, 2)
}

func TestListEvents_DefaultsApplied(t *testing.T) {
	called := false
	duties := &mockDutyService{
		eventsFn: func(from, to time.Time) []domain.Event {
			called = true
			assert.True(t, from.Before(to))
			return nil
		},
	}
	srv, _, _ := newTestServer(duties)

	w := doRequest(srv, http.MethodGet, "/events/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	// Nil from the service still serializes as an empty array.
	assert.Contains(t, w.Body.String(), `"events":[]`)
}

func TestListEvents_BadFrom(t *testing.T) {
	srv, _, _ := newTestServer(&mockDutyService{})
	w := doRequest(srv, http.MethodGet, "/events/?from=yesterday", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// ---- DELETE /events/{id} ---------------------------------------------------

func TestDeleteEvent(t *testing.T) {
	var got uuid.UUID
	duties := &mockDutyService{
		removeEventFn: func(id uuid.UUID) error {
			got = id
			return nil
		},
	}
	srv, _, _ := newTestServer(duties)

	id := uuid.New()
	w := doRequest(srv, http.MethodDelete, "/events/"+id.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, id, got)
}

func TestDeleteEvent_NotFound(t *testing.T) {
	duties := &mockDutyService{
		removeEventFn: func(uuid.UUID) error {
			return fmt.Errorf("service.DutyService.RemoveEvent: %w", domain.ErrNotFound)
		},
	}
	srv, _, _ := newTestServer(duties)

	w := doRequest(srv, http.MethodDelete, "/events/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ---- DELETE /events --------------------------------------------------------

func TestDeleteEventRange(t *testing.T) {
	duties := &mockDutyService{
		deleteRangeFn: func(from, to time.Time) int {
			assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), from)
			assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), to)
			return 5
		},
	}
	srv, _, _ := newTestServer(duties)

	w := doRequest(srv, http.MethodDelete, "/events/?from=2026-06-01&to=2026-06-30", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"removed":5}`, w.Body.String())
}

func TestDeleteEventRange_RequiresBounds(t *testing.T) {
	srv, _, _ := newTestServer(&mockDutyService{})

	w := doRequest(srv, http.MethodDelete, "/events/?from=2026-06-01", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(srv, http.MethodDelete, "/events/?to=2026-06-30", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
