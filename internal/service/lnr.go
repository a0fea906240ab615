package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/rules"
	"github.com/acameron/flightduty/backend/internal/tzutil"
)

// Local night rest clock anchors. The rest must start no later than 00:30
// on the anchor duty's day, end no earlier than 07:30 on the neighbor's
// day, and cover at least nine hours of the 22:30–09:30 night span.
const (
	lnrMinHours      = 12.0
	lnrNightMinHours = 9.0
)

// synthesizeAround runs local night rest synthesis twice for a committed
// duty: backward to the nearest prior duty and forward to the nearest
// following one. Generated intervals and their warnings are appended to
// result. Synthesis never blocks a commit.
func (s *DutyService) synthesizeAround(duty domain.Event, prefs domain.UserPreferences, result *CommitResult) {
	if prev, ok := s.nearestDutyBefore(duty); ok {
		if lnr, warnings := s.synthesizeLNR(prev, duty, prefs); lnr != nil {
			result.LNRs = append(result.LNRs, *lnr)
			result.Warnings = append(result.Warnings, warnings...)
		}
	}
	if next, ok := s.nearestDutyAfter(duty); ok {
		if lnr, warnings := s.synthesizeLNR(duty, next, prefs); lnr != nil {
			result.LNRs = append(result.LNRs, *lnr)
			result.Warnings = append(result.Warnings, warnings...)
		}
	}
}

// synthesizeLNR evaluates the gap between anchor (the earlier duty) and
// neighbor (the later one). If the anchor is a night duty and the neighbor
// an early-start duty, a local night rest interval is built over the gap,
// its legality checks are applied, and it is inserted into the timeline
// with whatever violation flag results. Returns nil when ineligible.
func (s *DutyService) synthesizeLNR(anchor, neighbor domain.Event, prefs domain.UserPreferences) (*domain.Event, []string) {
	anchorZone := zoneOr(anchor.AcclZone, prefs.AcclZone)
	anchorStartHour, err := tzutil.HourInZone(anchor.Start, anchorZone)
	if err != nil {
		return nil, nil
	}
	anchorEndHour, err := tzutil.HourInZone(anchor.End, anchorZone)
	if err != nil {
		return nil, nil
	}
	if !rules.IsNightDuty(prefs.Regulator, anchorStartHour, anchorEndHour) {
		return nil, nil
	}

	neighborZone := zoneOr(neighbor.AcclZone, prefs.AcclZone)
	neighborStartHour, err := tzutil.HourInZone(neighbor.Start, neighborZone)
	if err != nil {
		return nil, nil
	}
	if !rules.IsEarlyStart(prefs.Regulator, neighborStartHour) {
		return nil, nil
	}

	refLoc, err := s.referenceLocation(prefs)
	if err != nil {
		return nil, nil
	}

	lnrStart := anchor.End
	lnrEnd := lnrStart.Add(12 * time.Hour)
	if minEnd := tzutil.At(neighbor.Start, refLoc, 7, 30); lnrEnd.Before(minEnd) {
		lnrEnd = minEnd
	}

	violated := false
	if lnrEnd.Sub(lnrStart).Hours() < lnrMinHours {
		violated = true
	}
	nightStart := tzutil.At(anchor.End, refLoc, 22, 30)
	nightEnd := tzutil.At(neighbor.Start, refLoc, 9, 30)
	if nightOverlapHours(lnrStart, lnrEnd, nightStart, nightEnd) < lnrNightMinHours {
		violated = true
	}
	if lnrStart.After(tzutil.At(anchor.End, refLoc, 0, 30)) {
		violated = true
	}
	if neighbor.Start.Before(lnrEnd) {
		violated = true
	}

	var warnings []string
	if violated {
		warnings = append(warnings, "Local night rest does not meet regulatory requirements.")
	}
	if len(s.store.Overlapping(lnrStart, lnrEnd, domain.KindDuty)) > 0 {
		violated = true
		warnings = append(warnings, "Local night rest violation.")
	}

	// Regeneration replaces any rest already bridging this pair.
	s.store.RemoveWhere(func(e domain.Event) bool {
		return e.LocalNightRest && e.OwnerID == anchor.ID && e.NeighborID == neighbor.ID
	})

	lnr := domain.Event{
		ID:             uuid.New(),
		OwnerID:        anchor.ID,
		NeighborID:     neighbor.ID,
		Title:          "Local Night Rest",
		Kind:           domain.KindRest,
		Start:          lnrStart,
		End:            lnrEnd,
		LocalNightRest: true,
		Violated:       violated,
	}
	s.store.Add(lnr)
	return &lnr, warnings
}

// nearestDutyBefore returns the duty with the latest end at or before the
// given duty's start.
func (s *DutyService) nearestDutyBefore(duty domain.Event) (domain.Event, bool) {
	var best domain.Event
	found := false
	for _, e := range s.store.List() {
		if e.Kind != domain.KindDuty || e.ID == duty.ID || e.End.After(duty.Start) {
			continue
		}
		if !found || e.End.After(best.End) {
			best, found = e, true
		}
	}
	return best, found
}

// nearestDutyAfter returns the duty with the earliest start at or after the
// given duty's end.
func (s *DutyService) nearestDutyAfter(duty domain.Event) (domain.Event, bool) {
	var best domain.Event
	found := false
	for _, e := range s.store.List() {
		if e.Kind != domain.KindDuty || e.ID == duty.ID || e.Start.Before(duty.End) {
			continue
		}
		if !found || e.Start.Before(best.Start) {
			best, found = e, true
		}
	}
	return best, found
}

// nightOverlapHours returns the length in hours of the intersection of
// [start, end) with [nightStart, nightEnd), zero when disjoint.
func nightOverlapHours(start, end, nightStart, nightEnd time.Time) float64 {
	s := start
	if nightStart.After(s) {
		s = nightStart
	}
	e := end
	if nightEnd.Before(e) {
		e = nightEnd
	}
	if !e.After(s) {
		return 0
	}
	return e.Sub(s).Hours()
}

func zoneOr(zone, fallback string) string {
	if zone != "" {
		return zone
	}
	return fallback
}
