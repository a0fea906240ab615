package domain

import "fmt"

// Regulator selects which rule tables apply to validation and marker logic.
type Regulator string

const (
	RegulatorTC        Regulator = "TC"        // Transport Canada, CAR 705
	RegulatorFAA       Regulator = "FAA"       // USA
	RegulatorEASA      Regulator = "EASA"      // Europe
	RegulatorAustralia Regulator = "Australia" // CASA
)

// ParseRegulator converts a string into a Regulator.
// Returns ErrValidation-wrapped error for unknown values.
func ParseRegulator(s string) (Regulator, error) {
	switch Regulator(s) {
	case RegulatorTC, RegulatorFAA, RegulatorEASA, RegulatorAustralia:
		return Regulator(s), nil
	}
	return "", fmt.Errorf("%w: unknown regulator %q", ErrValidation, s)
}

// DisplayName is the name used in user-facing rejection messages.
// Transport Canada rules are cited by their regulation number.
func (r Regulator) DisplayName() string {
	if r == RegulatorTC {
		return "CAR 705"
	}
	return string(r)
}

// AvgSectorTime is the average-sector-duration band of a duty.
type AvgSectorTime string

const (
	AvgSectorUnder30 AvgSectorTime = "<30"
	AvgSector30To50  AvgSectorTime = "30-50"
	AvgSector50Plus  AvgSectorTime = ">=50"
)

// ParseAvgSectorTime converts a string into an AvgSectorTime band.
func ParseAvgSectorTime(s string) (AvgSectorTime, error) {
	switch AvgSectorTime(s) {
	case AvgSectorUnder30, AvgSector30To50, AvgSector50Plus:
		return AvgSectorTime(s), nil
	}
	return "", fmt.Errorf("%w: unknown average sector time %q", ErrValidation, s)
}

// RestType is the rest regime chosen for the period following a duty.
type RestType string

const (
	// Rest12h is the regulator-minimum rest (12h for TC/EASA, 10h otherwise).
	Rest12h RestType = "12h"
	// Rest10Travel is the reduced "10 hours at hotel + room key" regime.
	// It always yields exactly 10 hours and triggers the release-time
	// confirmation reminder workflow.
	Rest10Travel RestType = "10+travel"
)

// ParseRestType converts a string into a RestType. Empty defaults to Rest12h.
func ParseRestType(s string) (RestType, error) {
	switch RestType(s) {
	case Rest12h, Rest10Travel:
		return RestType(s), nil
	case "":
		return Rest12h, nil
	}
	return "", fmt.Errorf("%w: unknown rest type %q", ErrValidation, s)
}
