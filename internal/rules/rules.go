// Package rules encodes the per-regulator duty limit tables. Every function
// is a pure, total lookup over immutable constants; unmapped combinations
// fall back to the 9-hour fail-safe minimum rather than erroring.
//
// The tables are a best-effort encoding of CAR 705 (TC), FAA, EASA, and CASA
// limits, not a validated legal source.
package rules

import "github.com/acameron/flightduty/backend/internal/domain"

// MaxWeeklyDuty is the cumulative duty cap in hours over the trailing seven
// days, identical across regulators.
const MaxWeeklyDuty = 60.0

// MaxFDP returns the maximum flight duty period in hours for a duty with the
// given acclimatized start hour, sector count, and average sector time band.
// Only TC limits vary with the inputs; EASA is flat 13 and FAA/CASA flat 14.
func MaxFDP(reg domain.Regulator, acclStartHour, sectors int, avg domain.AvgSectorTime) float64 {
	switch reg {
	case domain.RegulatorTC:
		return tcMaxFDP(acclStartHour, sectors, avg)
	case domain.RegulatorEASA:
		return 13
	default:
		return 14
	}
}

// MinRest returns the standard minimum rest in hours after a duty.
// The reduced "10+travel" rest type yields exactly 10 hours regardless of
// regulator.
func MinRest(reg domain.Regulator, restType domain.RestType) float64 {
	if restType == domain.Rest10Travel {
		return 10
	}
	switch reg {
	case domain.RegulatorTC, domain.RegulatorEASA:
		return 12
	default:
		return 10
	}
}

// NightWindow returns the regulator's night period bounds as wall-clock
// hours. Used by the night-duty straddle test and local night rest
// eligibility.
func NightWindow(reg domain.Regulator) (startHour, endHour int) {
	switch reg {
	case domain.RegulatorEASA, domain.RegulatorAustralia:
		startHour = 0
	case domain.RegulatorFAA:
		startHour = 1
	default: // TC
		startHour = 2
	}
	endHour = 6
	if reg == domain.RegulatorAustralia {
		endHour = 5
	}
	return startHour, endHour
}

// IsNightDuty reports whether a duty with the given acclimatized start and
// end hours straddles the regulator's night window. TC uses its own
// straddle test; the others compare against the night bounds directly.
func IsNightDuty(reg domain.Regulator, acclStartHour, acclEndHour int) bool {
	if reg == domain.RegulatorTC {
		return (acclStartHour >= 13 || acclStartHour < 2) && acclEndHour > 1
	}
	nightStart, nightEnd := NightWindow(reg)
	return acclStartHour < nightEnd && acclEndHour > nightStart
}

// IsEarlyStart reports whether a duty starting at the given acclimatized
// hour counts as an early-start duty.
func IsEarlyStart(reg domain.Regulator, acclStartHour int) bool {
	if reg == domain.RegulatorTC {
		return acclStartHour >= 2 && acclStartHour < 7
	}
	return acclStartHour < 6
}

// IsLateEnd reports whether a duty ending at the given acclimatized hour
// counts as a late-finish duty.
func IsLateEnd(reg domain.Regulator, acclEndHour int) bool {
	if reg == domain.RegulatorTC {
		return acclEndHour >= 0 && acclEndHour < 2
	}
	return acclEndHour > 22
}
