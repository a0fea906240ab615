package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/rules"
)

var allRegulators = []domain.Regulator{
	domain.RegulatorTC,
	domain.RegulatorFAA,
	domain.RegulatorEASA,
	domain.RegulatorAustralia,
}

var allAvgBands = []domain.AvgSectorTime{
	domain.AvgSectorUnder30,
	domain.AvgSector30To50,
	domain.AvgSector50Plus,
}

// ---- MaxFDP ----------------------------------------------------------------

func TestMaxFDP_TCWorkedExample(t *testing.T) {
	// 06:00 acclimatized start, 1 sector, short sectors: band 06-06,
	// group 1-11 → 12 hours.
	got := rules.MaxFDP(domain.RegulatorTC, 6, 1, domain.AvgSectorUnder30)
	assert.Equal(t, 12.0, got)
}

func TestMaxFDP_TCBandBoundaries(t *testing.T) {
	cases := []struct {
		hour    int
		sectors int
		avg     domain.AvgSectorTime
		want    float64
	}{
		{0, 1, domain.AvgSectorUnder30, 9},
		{3, 1, domain.AvgSectorUnder30, 9},
		{4, 1, domain.AvgSectorUnder30, 10},
		{5, 1, domain.AvgSectorUnder30, 11},
		{7, 1, domain.AvgSectorUnder30, 13},
		{12, 1, domain.AvgSectorUnder30, 13},
		{13, 1, domain.AvgSectorUnder30, 12.5},
		{16, 1, domain.AvgSectorUnder30, 12.5},
		{17, 1, domain.AvgSectorUnder30, 12},
		{21, 1, domain.AvgSectorUnder30, 12},
		{22, 1, domain.AvgSectorUnder30, 11},
		{23, 1, domain.AvgSectorUnder30, 10},
		// Sector-group shifts within one start band.
		{7, 11, domain.AvgSectorUnder30, 13},
		{7, 12, domain.AvgSectorUnder30, 12},
		{7, 17, domain.AvgSectorUnder30, 12},
		{7, 18, domain.AvgSectorUnder30, 11},
		// 30-50 groups break at 7/11.
		{7, 7, domain.AvgSector30To50, 13},
		{7, 8, domain.AvgSector30To50, 12},
		{7, 12, domain.AvgSector30To50, 11},
		// >=50 groups break at 4/6.
		{7, 4, domain.AvgSector50Plus, 13},
		{7, 5, domain.AvgSector50Plus, 12},
		{7, 7, domain.AvgSector50Plus, 11},
	}
	for _, c := range cases {
		got := rules.MaxFDP(domain.RegulatorTC, c.hour, c.sectors, c.avg)
		assert.Equalf(t, c.want, got, "hour=%d sectors=%d avg=%s", c.hour, c.sectors, c.avg)
	}
}

func TestMaxFDP_FlatRegulators(t *testing.T) {
	for h := 0; h < 24; h++ {
		assert.Equal(t, 13.0, rules.MaxFDP(domain.RegulatorEASA, h, 3, domain.AvgSector30To50))
		assert.Equal(t, 14.0, rules.MaxFDP(domain.RegulatorFAA, h, 3, domain.AvgSector30To50))
		assert.Equal(t, 14.0, rules.MaxFDP(domain.RegulatorAustralia, h, 3, domain.AvgSector30To50))
	}
}

// TestMaxFDP_TotalAndInRange exhausts every (hour, sectors, avg) triple:
// the lookup must never fail and always land in the table's 9..13 range.
func TestMaxFDP_TotalAndInRange(t *testing.T) {
	for _, reg := range allRegulators {
		for _, avg := range allAvgBands {
			for h := 0; h < 24; h++ {
				for sectors := 1; sectors <= 25; sectors++ {
					got := rules.MaxFDP(reg, h, sectors, avg)
					require.GreaterOrEqual(t, got, 9.0)
					require.LessOrEqual(t, got, 14.0)
				}
			}
		}
	}
}

func TestMaxFDP_Deterministic(t *testing.T) {
	first := rules.MaxFDP(domain.RegulatorTC, 14, 9, domain.AvgSector30To50)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, rules.MaxFDP(domain.RegulatorTC, 14, 9, domain.AvgSector30To50))
	}
}

func TestMaxFDP_UnknownAvgFallsBack(t *testing.T) {
	assert.Equal(t, 9.0, rules.MaxFDP(domain.RegulatorTC, 7, 1, domain.AvgSectorTime("bogus")))
}

// ---- MinRest ---------------------------------------------------------------

func TestMinRest(t *testing.T) {
	assert.Equal(t, 12.0, rules.MinRest(domain.RegulatorTC, domain.Rest12h))
	assert.Equal(t, 12.0, rules.MinRest(domain.RegulatorEASA, domain.Rest12h))
	assert.Equal(t, 10.0, rules.MinRest(domain.RegulatorFAA, domain.Rest12h))
	assert.Equal(t, 10.0, rules.MinRest(domain.RegulatorAustralia, domain.Rest12h))

	// The reduced rest type always yields exactly 10 hours.
	for _, reg := range allRegulators {
		assert.Equal(t, 10.0, rules.MinRest(reg, domain.Rest10Travel))
	}
}

// ---- night / early / late bands --------------------------------------------

func TestNightWindow(t *testing.T) {
	cases := []struct {
		reg        domain.Regulator
		start, end int
	}{
		{domain.RegulatorTC, 2, 6},
		{domain.RegulatorFAA, 1, 6},
		{domain.RegulatorEASA, 0, 6},
		{domain.RegulatorAustralia, 0, 5},
	}
	for _, c := range cases {
		s, e := rules.NightWindow(c.reg)
		assert.Equal(t, c.start, s)
		assert.Equal(t, c.end, e)
	}
}

func TestIsNightDuty_TCStraddle(t *testing.T) {
	// Evening start finishing past 01:59 straddles the TC night.
	assert.True(t, rules.IsNightDuty(domain.RegulatorTC, 16, 23))
	assert.True(t, rules.IsNightDuty(domain.RegulatorTC, 1, 5))
	// Morning start never qualifies.
	assert.False(t, rules.IsNightDuty(domain.RegulatorTC, 8, 18))
	// Ends at or before 01:xx threshold.
	assert.False(t, rules.IsNightDuty(domain.RegulatorTC, 16, 1))
}

func TestIsNightDuty_Others(t *testing.T) {
	assert.True(t, rules.IsNightDuty(domain.RegulatorFAA, 2, 9))
	assert.False(t, rules.IsNightDuty(domain.RegulatorFAA, 6, 9))
	assert.True(t, rules.IsNightDuty(domain.RegulatorAustralia, 4, 6))
	assert.False(t, rules.IsNightDuty(domain.RegulatorAustralia, 5, 9))
}

func TestIsEarlyStart(t *testing.T) {
	assert.True(t, rules.IsEarlyStart(domain.RegulatorTC, 2))
	assert.True(t, rules.IsEarlyStart(domain.RegulatorTC, 6))
	assert.False(t, rules.IsEarlyStart(domain.RegulatorTC, 1))
	assert.False(t, rules.IsEarlyStart(domain.RegulatorTC, 7))

	assert.True(t, rules.IsEarlyStart(domain.RegulatorEASA, 0))
	assert.True(t, rules.IsEarlyStart(domain.RegulatorEASA, 5))
	assert.False(t, rules.IsEarlyStart(domain.RegulatorEASA, 6))
}

func TestIsLateEnd(t *testing.T) {
	assert.True(t, rules.IsLateEnd(domain.RegulatorTC, 0))
	assert.True(t, rules.IsLateEnd(domain.RegulatorTC, 1))
	assert.False(t, rules.IsLateEnd(domain.RegulatorTC, 2))
	assert.False(t, rules.IsLateEnd(domain.RegulatorTC, 23))

	assert.True(t, rules.IsLateEnd(domain.RegulatorFAA, 23))
	assert.False(t, rules.IsLateEnd(domain.RegulatorFAA, 22))
}
