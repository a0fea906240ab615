// Package domain contains the core data types for the flight duty engine.
// This package has zero dependencies on the other internal packages and is
// imported by every one of them (timeline, rules, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind distinguishes the two interval types on the timeline.
type EventKind string

const (
	KindDuty EventKind = "duty"
	KindRest EventKind = "rest"
)

// Event is a single interval on the timeline: either a flight duty period or
// a rest period (standard or local night rest). Both kinds share one shape.
//
// OwnerID links a generated rest event to the duty that produced it, so
// cascade deletion queries by field rather than by identifier convention.
// It is uuid.Nil for duties and for rest events with no anchoring duty left.
// A local night rest additionally carries NeighborID, the early-start duty
// on its far side, so cascades from either adjacent duty find it.
type Event struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id,omitempty"`
	NeighborID uuid.UUID `json:"neighbor_id,omitempty"`
	Title      string    `json:"title"`
	Kind       EventKind `json:"kind"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`

	// AcclZone is the IANA acclimatization zone for a duty. Empty means the
	// global default from UserPreferences applies.
	AcclZone string `json:"accl_zone,omitempty"`

	// Violated is derived state. On a duty it means the interval overlaps a
	// rest period and the user chose to record it anyway. On a local night
	// rest it means the rest fails its duration/night-coverage/boundary
	// rules or overlaps a duty.
	Violated bool `json:"violated,omitempty"`

	// LocalNightRest marks the rest sub-kind generated between two
	// night-adjacent duties.
	LocalNightRest bool `json:"local_night_rest,omitempty"`
}

// Duration returns the event's length.
func (e Event) Duration() time.Duration { return e.End.Sub(e.Start) }

// Overlaps reports whether two half-open intervals [Start, End) intersect.
// Intervals that merely touch at a shared boundary do not overlap.
func (e Event) Overlaps(o Event) bool {
	return e.Start.Before(o.End) && o.Start.Before(e.End)
}

// OverlapsRange reports whether the event intersects the half-open range
// [start, end).
func (e Event) OverlapsRange(start, end time.Time) bool {
	return e.Start.Before(end) && start.Before(e.End)
}

// Within reports whether the event is fully contained in [start, end].
// Containment is closed on both ends; the weekly duty sum counts a duty that
// ends exactly at the window boundary.
func (e Event) Within(start, end time.Time) bool {
	return !e.Start.Before(start) && !e.End.After(end)
}
