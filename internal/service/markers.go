package service

import (
	"fmt"
	"time"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/rules"
	"github.com/acameron/flightduty/backend/internal/timeline"
	"github.com/acameron/flightduty/backend/internal/tzutil"
)

// Annotator derives the per-day display state (markers, day status,
// violation indicators) from the timeline. It is pure and read-only.
type Annotator struct {
	store timeline.Store
}

// NewAnnotator constructs an Annotator over the given Store.
func NewAnnotator(store timeline.Store) *Annotator {
	return &Annotator{store: store}
}

// Range annotates every local calendar day from `from` through `to`
// inclusive (dates, not instants). Day boundaries follow the preferences'
// reference zone.
func (a *Annotator) Range(from, to time.Time, prefs domain.UserPreferences) ([]domain.DayAnnotation, error) {
	refLoc := time.UTC
	if prefs.ReferenceZone != "" {
		loc, err := tzutil.LoadZone(prefs.ReferenceZone)
		if err != nil {
			return nil, fmt.Errorf("service.Annotator.Range: %w", err)
		}
		refLoc = loc
	}

	out := make([]domain.DayAnnotation, 0)
	dayStart, dayEnd := tzutil.DayWindow(from, refLoc)
	stop, _ := tzutil.DayWindow(to, refLoc)
	for !dayStart.After(stop) {
		ann, err := a.annotateDay(dayStart, dayEnd, prefs)
		if err != nil {
			return nil, fmt.Errorf("service.Annotator.Range: %w", err)
		}
		out = append(out, ann)
		dayStart, dayEnd = dayEnd, dayEnd.AddDate(0, 0, 1)
	}
	return out, nil
}

// annotateDay builds the annotation for one half-open day window.
// Duty markers are mutually exclusive, evaluated Early → Late → Night with
// first match winning; Early applies only when the duty starts inside the
// window, Late and Night only when it ends inside it.
func (a *Annotator) annotateDay(dayStart, dayEnd time.Time, prefs domain.UserPreferences) (domain.DayAnnotation, error) {
	events := a.store.Overlapping(dayStart, dayEnd, "")
	ann := domain.DayAnnotation{
		Date:       dayStart,
		Status:     domain.DayStatusNone,
		Events:     events,
		Markers:    []domain.EventMarker{},
		Violations: []domain.ViolationIndicator{},
	}

	for _, e := range events {
		switch e.Kind {
		case domain.KindDuty:
			ann.Status = domain.DayStatusDuty
			marker, err := a.dutyMarker(e, dayStart, dayEnd, prefs)
			if err != nil {
				return domain.DayAnnotation{}, err
			}
			if marker != "" {
				ann.Markers = append(ann.Markers, domain.EventMarker{EventID: e.ID, Marker: marker})
			}
		case domain.KindRest:
			if ann.Status == domain.DayStatusNone {
				ann.Status = domain.DayStatusRest
			}
			if e.LocalNightRest {
				ann.Markers = append(ann.Markers, domain.EventMarker{EventID: e.ID, Marker: domain.MarkerLNR})
			}
		}
	}

	if ind, ok := a.violationIndicator(events, dayStart); ok {
		ann.Violations = append(ann.Violations, ind)
	}
	return ann, nil
}

func (a *Annotator) dutyMarker(e domain.Event, dayStart, dayEnd time.Time, prefs domain.UserPreferences) (domain.Marker, error) {
	zone := zoneOr(e.AcclZone, prefs.AcclZone)
	startHour, err := tzutil.HourInZone(e.Start, zone)
	if err != nil {
		return "", err
	}
	endHour, err := tzutil.HourInZone(e.End, zone)
	if err != nil {
		return "", err
	}

	startsInDay := !e.Start.Before(dayStart) && e.Start.Before(dayEnd)
	endsInDay := e.End.After(dayStart) && !e.End.After(dayEnd)

	switch {
	case startsInDay && rules.IsEarlyStart(prefs.Regulator, startHour):
		return domain.MarkerEarly, nil
	case endsInDay && rules.IsLateEnd(prefs.Regulator, endHour):
		return domain.MarkerLate, nil
	case endsInDay && rules.IsNightDuty(prefs.Regulator, startHour, endHour):
		return domain.MarkerNight, nil
	}
	return "", nil
}

// violationIndicator positions the day's violation warning at the start of
// the overlap between the violated event and its conflict partner. A
// violated duty (against a rest) takes precedence over a violated local
// night rest (against a duty).
func (a *Annotator) violationIndicator(events []domain.Event, dayStart time.Time) (domain.ViolationIndicator, bool) {
	for _, e := range events {
		if e.Kind == domain.KindDuty && e.Violated {
			if partner, ok := firstOverlap(events, e, domain.KindRest); ok {
				return makeIndicator(e, partner, dayStart), true
			}
		}
	}
	for _, e := range events {
		if e.Kind == domain.KindRest && e.LocalNightRest && e.Violated {
			if partner, ok := firstOverlap(events, e, domain.KindDuty); ok {
				return makeIndicator(e, partner, dayStart), true
			}
		}
	}
	return domain.ViolationIndicator{}, false
}

func firstOverlap(events []domain.Event, target domain.Event, kind domain.EventKind) (domain.Event, bool) {
	for _, e := range events {
		if e.Kind == kind && e.ID != target.ID && e.Overlaps(target) {
			return e, true
		}
	}
	return domain.Event{}, false
}

func makeIndicator(violated, partner domain.Event, dayStart time.Time) domain.ViolationIndicator {
	overlapStart := violated.Start
	if partner.Start.After(overlapStart) {
		overlapStart = partner.Start
	}
	fraction := overlapStart.Sub(dayStart).Hours() / 24
	if fraction < 0 {
		fraction = 0
	}
	return domain.ViolationIndicator{
		EventID:      violated.ID,
		OverlapStart: overlapStart,
		DayFraction:  fraction,
	}
}
