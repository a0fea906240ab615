// Package service contains the business logic of the flight duty engine:
// duty validation, rest and local night rest synthesis, marker annotation,
// reminder planning, and export. Services validate inputs, enforce the
// regulatory rules, and orchestrate timeline calls. No HTTP or storage
// details live here.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/rules"
	"github.com/acameron/flightduty/backend/internal/timeline"
	"github.com/acameron/flightduty/backend/internal/tzutil"
)

// ErrOverlapNeedsChoice is returned by Create when the candidate duty
// overlaps a rest period and the caller has not yet passed
// ProceedOnOverlap. Overlap is a soft violation: the presentation layer
// asks the user whether to abort-and-edit or record the duty anyway, then
// re-invokes Create with the choice carried as an explicit flag.
var ErrOverlapNeedsChoice = errors.New("duty period overlaps with a rest period")

// dutyLayout is the wire format for the form's date+time pairs.
const dutyLayout = "2006-01-02 15:04"

// DutyService implements validation and commit orchestration for duties.
type DutyService struct {
	store timeline.Store
	now   func() time.Time
}

// NewDutyService constructs a DutyService backed by the provided Store.
// now is injectable for tests; pass time.Now in production.
func NewDutyService(store timeline.Store, now func() time.Time) *DutyService {
	if now == nil {
		now = time.Now
	}
	return &DutyService{store: store, now: now}
}

// Validation is the pure outcome of validating a candidate duty. Nothing is
// written to the timeline until the caller commits.
type Validation struct {
	// Duty is the parsed candidate, not yet stored and without an ID.
	Duty domain.Event

	// RestHours is the standard rest duration the chosen rest type yields.
	RestHours float64

	// OverlapsRest flags the soft violation that needs an explicit user
	// choice before commit.
	OverlapsRest bool
}

// CommitResult is everything a commit produced: the stored duty, its
// generated rest, any local night rest intervals, non-blocking warnings,
// and the reminder plan or past-due advisory for the 10+travel workflow.
type CommitResult struct {
	Duty     domain.Event
	Rest     *domain.Event
	LNRs     []domain.Event
	Warnings []string
	Reminder *ReminderPlan
	Advisory string
}

// Validate runs the full pre-commit check sequence on a candidate duty.
// Each step is a hard stop except the rest-overlap check, which is reported
// through Validation.OverlapsRest. Validate never mutates the timeline.
func (s *DutyService) Validate(input domain.DutyInput, prefs domain.UserPreferences) (Validation, error) {
	return s.validate(input, prefs, uuid.Nil)
}

// validate is Validate with an optional duty to exclude from the weekly sum
// (the duty being edited must not count its own old interval).
func (s *DutyService) validate(input domain.DutyInput, prefs domain.UserPreferences, exclude uuid.UUID) (Validation, error) {
	if input.StartDate == "" || input.StartTime == "" || input.EndDate == "" || input.EndTime == "" {
		return Validation{}, fmt.Errorf("service.DutyService.Validate: %w: start time, end date, and end time are required", domain.ErrMissingFields)
	}

	refLoc, err := s.referenceLocation(prefs)
	if err != nil {
		return Validation{}, fmt.Errorf("service.DutyService.Validate: %w", err)
	}
	start, err := time.ParseInLocation(dutyLayout, input.StartDate+" "+input.StartTime, refLoc)
	if err != nil {
		return Validation{}, fmt.Errorf("service.DutyService.Validate: %w: bad start date/time", domain.ErrInvalidInterval)
	}
	end, err := time.ParseInLocation(dutyLayout, input.EndDate+" "+input.EndTime, refLoc)
	if err != nil {
		return Validation{}, fmt.Errorf("service.DutyService.Validate: %w: bad end date/time", domain.ErrInvalidInterval)
	}
	if !start.Before(end) {
		return Validation{}, fmt.Errorf("service.DutyService.Validate: %w: end time must be after start time", domain.ErrInvalidInterval)
	}

	zone := input.AcclZone
	if zone == "" {
		zone = prefs.AcclZone
	}
	acclStartHour, err := tzutil.HourInZone(start, zone)
	if err != nil {
		return Validation{}, fmt.Errorf("service.DutyService.Validate: %w", err)
	}

	duration := end.Sub(start).Hours()
	maxFDP := rules.MaxFDP(prefs.Regulator, acclStartHour, input.Sectors, input.AvgSectorTime)
	if duration > maxFDP {
		return Validation{}, fmt.Errorf("service.DutyService.Validate: %w: FDP exceeds table limit for %s", domain.ErrFDPExceeded, prefs.Regulator.DisplayName())
	}

	if s.weeklyDutyHours(start, exclude)+duration > rules.MaxWeeklyDuty {
		return Validation{}, fmt.Errorf("service.DutyService.Validate: %w: total hours of work in 7 days would exceed %.0f hours for %s",
			domain.ErrWeeklyCapExceeded, rules.MaxWeeklyDuty, prefs.Regulator.DisplayName())
	}

	overlaps := false
	for _, r := range s.store.Overlapping(start, end, domain.KindRest) {
		if r.OwnerID != exclude {
			overlaps = true
			break
		}
	}

	return Validation{
		Duty: domain.Event{
			Title:    "Duty Period",
			Kind:     domain.KindDuty,
			Start:    start,
			End:      end,
			AcclZone: zone,
		},
		RestHours:    rules.MinRest(prefs.Regulator, input.RestType),
		OverlapsRest: overlaps,
	}, nil
}

// Create validates and commits a new duty. On success it stores the duty,
// generates the standard rest period, synthesizes local night rest in both
// directions, and plans the 10+travel reminder workflow.
//
// If the candidate overlaps a rest period and proceedOnOverlap is false,
// Create returns ErrOverlapNeedsChoice without touching the timeline.
// With proceedOnOverlap true the duty is stored with Violated set.
func (s *DutyService) Create(input domain.DutyInput, prefs domain.UserPreferences, proceedOnOverlap bool) (CommitResult, error) {
	v, err := s.Validate(input, prefs)
	if err != nil {
		return CommitResult{}, err
	}
	if v.OverlapsRest && !proceedOnOverlap {
		return CommitResult{}, fmt.Errorf("service.DutyService.Create: %w", ErrOverlapNeedsChoice)
	}

	duty := v.Duty
	duty.ID = uuid.New()
	duty.Violated = v.OverlapsRest
	s.store.Add(duty)

	rest := domain.Event{
		ID:      uuid.New(),
		OwnerID: duty.ID,
		Title:   restTitle(input.RestType),
		Kind:    domain.KindRest,
		Start:   duty.End,
		End:     duty.End.Add(time.Duration(v.RestHours * float64(time.Hour))),
	}
	s.store.Add(rest)

	result := CommitResult{Duty: duty, Rest: &rest}
	s.synthesizeAround(duty, prefs, &result)
	result.Reminder, result.Advisory = PlanReminders(duty.End, input.RestType, s.now())
	return result, nil
}

// Update validates and applies an edit to an existing duty. The duty's
// start, end, and acclimatization zone are mutated in place; the standard
// rest generated at creation time is intentionally left untouched. Local
// night rest linked to the duty, from either side, is removed and
// regenerated against the new boundaries.
func (s *DutyService) Update(id uuid.UUID, input domain.DutyInput, prefs domain.UserPreferences) (CommitResult, error) {
	old, err := s.store.Get(id)
	if err != nil {
		return CommitResult{}, fmt.Errorf("service.DutyService.Update: %w", err)
	}
	if old.Kind != domain.KindDuty {
		return CommitResult{}, fmt.Errorf("service.DutyService.Update: %w", domain.ErrNotFound)
	}

	v, err := s.validate(input, prefs, id)
	if err != nil {
		return CommitResult{}, err
	}

	s.removeLNRLinkedTo(id)

	updated, err := s.store.Update(id, func(e *domain.Event) {
		e.Start = v.Duty.Start
		e.End = v.Duty.End
		e.AcclZone = v.Duty.AcclZone
	})
	if err != nil {
		return CommitResult{}, fmt.Errorf("service.DutyService.Update: %w", err)
	}

	result := CommitResult{Duty: updated}
	s.synthesizeAround(updated, prefs, &result)
	result.Reminder, result.Advisory = PlanReminders(updated.End, input.RestType, s.now())
	return result, nil
}

// Delete removes a duty and cascades to its generated events: the standard
// rest owned by the duty, and any local night rest linked to the duty as
// its anchor or its neighbor.
func (s *DutyService) Delete(id uuid.UUID) error {
	old, err := s.store.Get(id)
	if err != nil {
		return fmt.Errorf("service.DutyService.Delete: %w", err)
	}
	if old.Kind != domain.KindDuty {
		return fmt.Errorf("service.DutyService.Delete: %w", domain.ErrNotFound)
	}
	if err := s.store.Remove(id); err != nil {
		return fmt.Errorf("service.DutyService.Delete: %w", err)
	}
	s.store.RemoveWhere(func(e domain.Event) bool {
		return e.Kind == domain.KindRest && !e.LocalNightRest && e.OwnerID == id
	})
	s.removeLNRLinkedTo(id)
	return nil
}

// RemoveEvent deletes a single event without cascading. The presentation
// layer uses this for direct rest-event deletion.
func (s *DutyService) RemoveEvent(id uuid.UUID) error {
	if err := s.store.Remove(id); err != nil {
		return fmt.Errorf("service.DutyService.RemoveEvent: %w", err)
	}
	return nil
}

// DeleteRange removes every event starting in the half-open range
// [from, to) and returns how many were removed. Backs the "delete all
// events in the current month" action.
func (s *DutyService) DeleteRange(from, to time.Time) int {
	return s.store.RemoveWhere(func(e domain.Event) bool {
		return !e.Start.Before(from) && e.Start.Before(to)
	})
}

// Events returns a snapshot of all events intersecting [from, to).
func (s *DutyService) Events(from, to time.Time) []domain.Event {
	return s.store.Overlapping(from, to, "")
}

// MaxFDPPreview computes the maximum FDP for a candidate start without
// committing anything. Backs the "Check Max Duty" action.
func (s *DutyService) MaxFDPPreview(input domain.DutyInput, prefs domain.UserPreferences) (float64, error) {
	if input.StartDate == "" || input.StartTime == "" {
		return 0, fmt.Errorf("service.DutyService.MaxFDPPreview: %w: start date and time are required", domain.ErrMissingFields)
	}
	refLoc, err := s.referenceLocation(prefs)
	if err != nil {
		return 0, fmt.Errorf("service.DutyService.MaxFDPPreview: %w", err)
	}
	start, err := time.ParseInLocation(dutyLayout, input.StartDate+" "+input.StartTime, refLoc)
	if err != nil {
		return 0, fmt.Errorf("service.DutyService.MaxFDPPreview: %w: bad start date/time", domain.ErrInvalidInterval)
	}
	zone := input.AcclZone
	if zone == "" {
		zone = prefs.AcclZone
	}
	hour, err := tzutil.HourInZone(start, zone)
	if err != nil {
		return 0, fmt.Errorf("service.DutyService.MaxFDPPreview: %w", err)
	}
	return rules.MaxFDP(prefs.Regulator, hour, input.Sectors, input.AvgSectorTime), nil
}

// weeklyDutyHours sums the durations of all duty events fully contained in
// the trailing seven days ending at start, excluding the given duty ID.
func (s *DutyService) weeklyDutyHours(start time.Time, exclude uuid.UUID) float64 {
	total := 0.0
	for _, e := range s.store.Within(start.AddDate(0, 0, -7), start, domain.KindDuty) {
		if e.ID != exclude {
			total += e.Duration().Hours()
		}
	}
	return total
}

// removeLNRLinkedTo drops local night rest intervals bridging to the given
// duty from either side: as the night-duty anchor (OwnerID) or as the
// early-start neighbor (NeighborID).
func (s *DutyService) removeLNRLinkedTo(id uuid.UUID) {
	s.store.RemoveWhere(func(e domain.Event) bool {
		return e.LocalNightRest && (e.OwnerID == id || e.NeighborID == id)
	})
}

// referenceLocation resolves the preferences' reference zone, defaulting to
// UTC when unset.
func (s *DutyService) referenceLocation(prefs domain.UserPreferences) (*time.Location, error) {
	if prefs.ReferenceZone == "" {
		return time.UTC, nil
	}
	return tzutil.LoadZone(prefs.ReferenceZone)
}

func restTitle(rt domain.RestType) string {
	if rt == domain.Rest10Travel {
		return "Required Rest (10+travel)"
	}
	return "Required Rest"
}
