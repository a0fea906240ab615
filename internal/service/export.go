package service

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/timeline"
)

// ExportService renders the timeline as an iCalendar document so duties and
// rest periods can be subscribed to from any calendar client.
type ExportService struct {
	store timeline.Store
	now   func() time.Time
}

// NewExportService constructs an ExportService over the given Store.
// now is injectable for tests; pass time.Now in production.
func NewExportService(store timeline.Store, now func() time.Time) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{store: store, now: now}
}

// ICS serializes every timeline event as a VEVENT. Event categories carry
// the kind and the derived flags so calendar clients can color-code them.
func (s *ExportService) ICS() string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//flightduty//duty timeline//EN")

	stamp := s.now().UTC()
	for _, e := range s.store.List() {
		ev := cal.AddEvent(e.ID.String())
		ev.SetDtStampTime(stamp)
		ev.SetSummary(e.Title)
		ev.SetStartAt(e.Start.UTC())
		ev.SetEndAt(e.End.UTC())
		ev.AddProperty(ical.ComponentPropertyCategories, categories(e))
		if e.Violated {
			ev.SetDescription("Does not meet regulatory requirements.")
		}
	}
	return cal.Serialize()
}

func categories(e domain.Event) string {
	switch {
	case e.LocalNightRest:
		return "LNR"
	case e.Kind == domain.KindRest:
		return "REST"
	default:
		return "DUTY"
	}
}
