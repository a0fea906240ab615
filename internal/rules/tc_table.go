package rules

import "github.com/acameron/flightduty/backend/internal/domain"

// The CAR 705 maximum FDP matrix: start-hour slot crossed with a sector
// group, where the grouping itself depends on the average sector time band.
// Values are hours; every slot/group combination present in the regulation
// is listed, and anything that falls outside resolves to the 9-hour floor.

// startSlot buckets an acclimatized start hour into the table's nine bands.
func startSlot(h int) string {
	switch {
	case h >= 0 && h <= 3:
		return "24-03"
	case h == 4:
		return "04-04"
	case h == 5:
		return "05-05"
	case h == 6:
		return "06-06"
	case h >= 7 && h <= 12:
		return "07-12"
	case h >= 13 && h <= 16:
		return "13-16"
	case h >= 17 && h <= 21:
		return "17-21"
	case h == 22:
		return "22-22"
	default:
		return "23-23"
	}
}

// sectorGroup buckets a sector count given the average sector time band.
func sectorGroup(sectors int, avg domain.AvgSectorTime) string {
	switch avg {
	case domain.AvgSectorUnder30:
		switch {
		case sectors <= 11:
			return "1-11"
		case sectors <= 17:
			return "12-17"
		default:
			return "18+"
		}
	case domain.AvgSector30To50:
		switch {
		case sectors <= 7:
			return "1-7"
		case sectors <= 11:
			return "8-11"
		default:
			return "12+"
		}
	case domain.AvgSector50Plus:
		switch {
		case sectors <= 4:
			return "1-4"
		case sectors <= 6:
			return "5-6"
		default:
			return "7+"
		}
	}
	return "1-11"
}

// The three group rows share identical hour profiles across the average
// sector time bands: the least demanding group gets the full profile, the
// middle group one hour less, and the most demanding group two hours less
// (floored at 9).
var tcTable = map[domain.AvgSectorTime]map[string]map[string]float64{
	domain.AvgSectorUnder30: {
		"1-11":  {"24-03": 9, "04-04": 10, "05-05": 11, "06-06": 12, "07-12": 13, "13-16": 12.5, "17-21": 12, "22-22": 11, "23-23": 10},
		"12-17": {"24-03": 9, "04-04": 9, "05-05": 10, "06-06": 11, "07-12": 12, "13-16": 11.5, "17-21": 11, "22-22": 10, "23-23": 9},
		"18+":   {"24-03": 9, "04-04": 9, "05-05": 9, "06-06": 10, "07-12": 11, "13-16": 10.5, "17-21": 10, "22-22": 9, "23-23": 9},
	},
	domain.AvgSector30To50: {
		"1-7":  {"24-03": 9, "04-04": 10, "05-05": 11, "06-06": 12, "07-12": 13, "13-16": 12.5, "17-21": 12, "22-22": 11, "23-23": 10},
		"8-11": {"24-03": 9, "04-04": 9, "05-05": 10, "06-06": 11, "07-12": 12, "13-16": 11.5, "17-21": 11, "22-22": 10, "23-23": 9},
		"12+":  {"24-03": 9, "04-04": 9, "05-05": 9, "06-06": 10, "07-12": 11, "13-16": 10.5, "17-21": 10, "22-22": 9, "23-23": 9},
	},
	domain.AvgSector50Plus: {
		"1-4": {"24-03": 9, "04-04": 10, "05-05": 11, "06-06": 12, "07-12": 13, "13-16": 12.5, "17-21": 12, "22-22": 11, "23-23": 10},
		"5-6": {"24-03": 9, "04-04": 9, "05-05": 10, "06-06": 11, "07-12": 12, "13-16": 11.5, "17-21": 11, "22-22": 10, "23-23": 9},
		"7+":  {"24-03": 9, "04-04": 9, "05-05": 9, "06-06": 10, "07-12": 11, "13-16": 10.5, "17-21": 10, "22-22": 9, "23-23": 9},
	},
}

// tcMaxFDP resolves the TC matrix. Any combination the table does not map
// returns the 9-hour fail-safe minimum.
func tcMaxFDP(acclStartHour, sectors int, avg domain.AvgSectorTime) float64 {
	groups, ok := tcTable[avg]
	if !ok {
		return 9
	}
	row, ok := groups[sectorGroup(sectors, avg)]
	if !ok {
		return 9
	}
	if v, ok := row[startSlot(acclStartHour)]; ok {
		return v
	}
	return 9
}
