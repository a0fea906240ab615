// Package tzutil holds the time zone and wall-clock helpers the rule engine
// is built on. Everything here is a pure function over the IANA tz database
// that ships with the Go toolchain, including DST transitions.
package tzutil

import (
	"fmt"
	"time"

	"github.com/acameron/flightduty/backend/internal/domain"
)

// HourInZone returns the wall-clock hour (0..23) of instant t as observed in
// the named IANA zone. Returns domain.ErrInvalidZone for unknown zone names.
func HourInZone(t time.Time, zoneName string) (int, error) {
	loc, err := LoadZone(zoneName)
	if err != nil {
		return 0, err
	}
	return t.In(loc).Hour(), nil
}

// LoadZone resolves an IANA zone name, mapping lookup failures onto the
// engine's error taxonomy.
func LoadZone(zoneName string) (*time.Location, error) {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidZone, zoneName)
	}
	return loc, nil
}

// DayWindow returns the half-open local calendar day [start, end) that
// contains t in the given location.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// At returns the instant at hh:mm on the local calendar day containing t in
// the given location. The local night rest bounds (22:30, 00:30, 07:30,
// 09:30) are all built with this.
func At(t time.Time, loc *time.Location, hh, mm int) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), hh, mm, 0, 0, loc)
}

// FormatClock formats an instant's wall clock in the given location using the
// preference time format ("24h" or "12h"). Unknown formats fall back to 24h.
func FormatClock(t time.Time, loc *time.Location, format string) string {
	lt := t.In(loc)
	if format == "12h" {
		return lt.Format("3:04 PM")
	}
	return lt.Format("15:04")
}

// FormatDurationHours renders a duration as decimal hours for messages,
// e.g. "12.5h".
func FormatDurationHours(d time.Duration) string {
	return fmt.Sprintf("%gh", d.Hours())
}
