// Package handler implements the HTTP surface of the flight duty engine.
// Handlers are thin: they decode DTOs, call the service layer, and map
// sentinel errors onto status codes. All interactive decisions (the
// overlap confirmation, reminder opt-in) arrive as explicit request flags;
// no business logic lives here.
package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/service"
)

// DutyServicer defines the business operations the duty handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the service layer or the store.
type DutyServicer interface {
	Create(input domain.DutyInput, prefs domain.UserPreferences, proceedOnOverlap bool) (service.CommitResult, error)
	Update(id uuid.UUID, input domain.DutyInput, prefs domain.UserPreferences) (service.CommitResult, error)
	Delete(id uuid.UUID) error
	RemoveEvent(id uuid.UUID) error
	DeleteRange(from, to time.Time) int
	Events(from, to time.Time) []domain.Event
	MaxFDPPreview(input domain.DutyInput, prefs domain.UserPreferences) (float64, error)
}

// AnnotatorServicer provides the per-day marker annotations.
type AnnotatorServicer interface {
	Range(from, to time.Time, prefs domain.UserPreferences) ([]domain.DayAnnotation, error)
}

// Exporter renders the timeline as an iCalendar document.
type Exporter interface {
	ICS() string
}

// ReminderScheduler arms the 10+travel reminder sequence. A nil plan is a
// no-op, so handlers can pass whatever the commit produced.
type ReminderScheduler interface {
	Schedule(plan *service.ReminderPlan)
}

// PreferencesStore persists the presentation-owned settings between runs.
type PreferencesStore interface {
	Save(prefs domain.UserPreferences) error
}

// Server holds the handler dependencies and the current user preferences.
// Preferences are guarded by a mutex because PUT /preferences can race
// with in-flight commits.
type Server struct {
	duties    DutyServicer
	annotator AnnotatorServicer
	exporter  Exporter
	reminders ReminderScheduler
	prefStore PreferencesStore

	mu    sync.RWMutex
	prefs domain.UserPreferences
}

// NewServer constructs the Server with all its dependencies.
// reminders and prefStore may be nil (reminders are then dropped and
// preference changes are kept in memory only).
func NewServer(duties DutyServicer, annotator AnnotatorServicer, exporter Exporter, reminders ReminderScheduler, prefStore PreferencesStore, prefs domain.UserPreferences) *Server {
	return &Server{
		duties:    duties,
		annotator: annotator,
		exporter:  exporter,
		reminders: reminders,
		prefStore: prefStore,
		prefs:     prefs,
	}
}

// Routes mounts all endpoints on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.Health)

	r.Route("/duties", func(r chi.Router) {
		r.Post("/", s.CreateDuty)
		r.Get("/maxfdp", s.MaxFDP)
		r.Put("/{id}", s.UpdateDuty)
		r.Delete("/{id}", s.DeleteDuty)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", s.ListEvents)
		r.Delete("/", s.DeleteEventRange)
		r.Delete("/{id}", s.DeleteEvent)
	})

	r.Get("/calendar", s.Calendar)
	r.Get("/export.ics", s.ExportICS)

	r.Get("/preferences", s.GetPreferences)
	r.Put("/preferences", s.PutPreferences)

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// preferences returns a copy of the current preferences.
func (s *Server) preferences() domain.UserPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}
