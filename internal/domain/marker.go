package domain

import (
	"time"

	"github.com/google/uuid"
)

// Marker is a per-event display flag derived from the timeline.
type Marker string

const (
	MarkerEarly Marker = "E"   // duty starts in the regulator's early band
	MarkerLate  Marker = "L"   // duty ends in the regulator's late band
	MarkerNight Marker = "N"   // duty straddles the regulator's night window
	MarkerLNR   Marker = "LNR" // rest is a local night rest
)

// DayStatus summarizes what kind of events touch a day.
type DayStatus string

const (
	DayStatusDuty DayStatus = "duty"
	DayStatusRest DayStatus = "rest"
	DayStatusNone DayStatus = "none"
)

// EventMarker pairs a marker with the event it belongs to.
type EventMarker struct {
	EventID uuid.UUID `json:"event_id"`
	Marker  Marker    `json:"marker"`
}

// ViolationIndicator positions a violation warning at the start of the
// overlap between a violated event and the event it conflicts with.
// DayFraction is the overlap start's offset into the day in [0, 1), which
// the presentation layer uses directly as a horizontal position.
type ViolationIndicator struct {
	EventID      uuid.UUID `json:"event_id"`
	OverlapStart time.Time `json:"overlap_start"`
	DayFraction  float64   `json:"day_fraction"`
}

// DayAnnotation is everything the presentation layer needs to render one
// calendar day: status color, event markers, and violation indicators.
type DayAnnotation struct {
	Date       time.Time            `json:"date"`
	Status     DayStatus            `json:"status"`
	Events     []Event              `json:"events"`
	Markers    []EventMarker        `json:"markers"`
	Violations []ViolationIndicator `json:"violations"`
}
