package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acameron/flightduty/backend/internal/domain"
	"github.com/acameron/flightduty/backend/internal/timeline"
)

func lnrs(store timeline.Store) []domain.Event {
	var out []domain.Event
	for _, e := range store.List() {
		if e.LocalNightRest {
			out = append(out, e)
		}
	}
	return out
}

func TestSynthesis_NightThenEarlyStart(t *testing.T) {
	svc, store := newService()

	first, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "23:00"), utcPrefs(), false)
	require.NoError(t, err)

	// The early duty starts inside the first duty's rest period.
	second, err := svc.Create(input("2026-06-11", "06:30", "2026-06-11", "10:00"), utcPrefs(), true)
	require.NoError(t, err)

	require.Len(t, second.LNRs, 1)
	lnr := second.LNRs[0]
	assert.Equal(t, "Local Night Rest", lnr.Title)
	assert.Equal(t, domain.KindRest, lnr.Kind)
	assert.True(t, lnr.LocalNightRest)
	assert.Equal(t, first.Duty.ID, lnr.OwnerID)
	assert.Equal(t, second.Duty.ID, lnr.NeighborID)

	// Spans the gap: anchored at the night duty's end, twelve hours long
	// because 12h past 23:00 already clears the 07:30 floor.
	assert.Equal(t, time.Date(2026, 6, 10, 23, 0, 0, 0, time.UTC), lnr.Start)
	assert.Equal(t, time.Date(2026, 6, 11, 11, 0, 0, 0, time.UTC), lnr.End)

	// The 06:30 duty starts before the rest ends, so the rest is violated.
	assert.True(t, lnr.Violated)
	assert.Contains(t, second.Warnings, "Local night rest does not meet regulatory requirements.")
	assert.Contains(t, second.Warnings, "Local night rest violation.")

	stored := lnrs(store)
	require.Len(t, stored, 1)
	assert.Equal(t, lnr.ID, stored[0].ID)
}

func TestSynthesis_EndFlooredAtMorningAnchor(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "19:00"), utcPrefs(), false)
	require.NoError(t, err)

	second, err := svc.Create(input("2026-06-11", "06:00", "2026-06-11", "09:00"), utcPrefs(), true)
	require.NoError(t, err)

	require.Len(t, second.LNRs, 1)
	// 19:00 + 12h lands at 07:00; the rest still extends to 07:30 on the
	// early duty's day.
	assert.Equal(t, time.Date(2026, 6, 11, 7, 30, 0, 0, time.UTC), second.LNRs[0].End)
}

func TestSynthesis_SkipsWhenAnchorIsNotNightDuty(t *testing.T) {
	svc, store := newService()

	_, err := svc.Create(input("2026-06-10", "08:00", "2026-06-10", "14:00"), utcPrefs(), false)
	require.NoError(t, err)

	second, err := svc.Create(input("2026-06-11", "06:00", "2026-06-11", "09:00"), utcPrefs(), false)
	require.NoError(t, err)

	assert.Empty(t, second.LNRs)
	assert.Empty(t, lnrs(store))
}

func TestSynthesis_SkipsWhenNeighborIsNotEarlyStart(t *testing.T) {
	svc, store := newService()

	_, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "23:00"), utcPrefs(), false)
	require.NoError(t, err)

	second, err := svc.Create(input("2026-06-11", "09:00", "2026-06-11", "12:00"), utcPrefs(), true)
	require.NoError(t, err)

	assert.Empty(t, second.LNRs)
	assert.Empty(t, lnrs(store))
}

func TestSynthesis_RunsForwardWhenNightDutyIsAddedSecond(t *testing.T) {
	svc, store := newService()

	// The early duty exists first; recording the night duty afterwards
	// must still produce the rest between them.
	_, err := svc.Create(input("2026-06-11", "06:30", "2026-06-11", "10:00"), utcPrefs(), false)
	require.NoError(t, err)

	first, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "23:00"), utcPrefs(), false)
	require.NoError(t, err)

	require.Len(t, first.LNRs, 1)
	assert.Equal(t, time.Date(2026, 6, 10, 23, 0, 0, 0, time.UTC), first.LNRs[0].Start)
	assert.Len(t, lnrs(store), 1)
}

func TestSynthesis_BrokenZoneOnStoredDutySkipsQuietly(t *testing.T) {
	svc, store := newService()

	// A stored duty with an unresolvable zone (hand-imported data, say)
	// suppresses synthesis without failing the commit.
	anchor := seedDuty(store,
		time.Date(2026, 6, 10, 16, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 10, 23, 0, 0, 0, time.UTC))
	_, err := store.Update(anchor.ID, func(e *domain.Event) { e.AcclZone = "Broken/Zone" })
	require.NoError(t, err)

	second, err := svc.Create(input("2026-06-11", "06:30", "2026-06-11", "10:00"), utcPrefs(), false)
	require.NoError(t, err)
	assert.Empty(t, second.LNRs)
	assert.Empty(t, lnrs(store))
}

// ---- cascade and regeneration ----------------------------------------------

func TestDelete_CascadesToAnchoredLocalNightRest(t *testing.T) {
	svc, store := newService()

	first, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "23:00"), utcPrefs(), false)
	require.NoError(t, err)
	second, err := svc.Create(input("2026-06-11", "06:30", "2026-06-11", "10:00"), utcPrefs(), true)
	require.NoError(t, err)
	require.Len(t, store.List(), 5)

	require.NoError(t, svc.Delete(first.Duty.ID))

	// The night duty, its rest, and the local night rest anchored at its
	// end are gone; the early duty and its own rest survive.
	left := store.List()
	require.Len(t, left, 2)
	assert.Equal(t, second.Duty.ID, left[0].ID)
	assert.Equal(t, second.Rest.ID, left[1].ID)
}

func TestDelete_NeighborDutyRemovesBridgingLocalNightRest(t *testing.T) {
	svc, store := newService()

	first, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "23:00"), utcPrefs(), false)
	require.NoError(t, err)
	second, err := svc.Create(input("2026-06-11", "06:30", "2026-06-11", "10:00"), utcPrefs(), true)
	require.NoError(t, err)
	require.Len(t, lnrs(store), 1)

	// Deleting the early-start side must not leave a rest bridging to a
	// duty that no longer exists.
	require.NoError(t, svc.Delete(second.Duty.ID))

	assert.Empty(t, lnrs(store))
	left := store.List()
	require.Len(t, left, 2)
	assert.Equal(t, first.Duty.ID, left[0].ID)
	assert.Equal(t, first.Rest.ID, left[1].ID)
}

func TestUpdate_NeighborDutyReplacesLocalNightRest(t *testing.T) {
	svc, store := newService()

	first, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "23:00"), utcPrefs(), false)
	require.NoError(t, err)
	second, err := svc.Create(input("2026-06-11", "06:30", "2026-06-11", "10:00"), utcPrefs(), true)
	require.NoError(t, err)
	require.Len(t, lnrs(store), 1)

	// Editing the early-start side replaces the bridging rest; it must
	// never accumulate a duplicate over the same gap.
	_, err = svc.Update(second.Duty.ID, input("2026-06-11", "06:45", "2026-06-11", "10:00"), utcPrefs())
	require.NoError(t, err)

	stored := lnrs(store)
	require.Len(t, stored, 1)
	assert.Equal(t, first.Duty.ID, stored[0].OwnerID)
	assert.Equal(t, second.Duty.ID, stored[0].NeighborID)
	assert.Equal(t, time.Date(2026, 6, 10, 23, 0, 0, 0, time.UTC), stored[0].Start)
	assert.Equal(t, time.Date(2026, 6, 11, 11, 0, 0, 0, time.UTC), stored[0].End)
}

func TestUpdate_NeighborNoLongerEarlyDropsLocalNightRest(t *testing.T) {
	svc, store := newService()

	_, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "23:00"), utcPrefs(), false)
	require.NoError(t, err)
	second, err := svc.Create(input("2026-06-11", "06:30", "2026-06-11", "10:00"), utcPrefs(), true)
	require.NoError(t, err)
	require.Len(t, lnrs(store), 1)

	// Pushed past the early band, the pair is no longer eligible and the
	// old rest must not survive the edit.
	_, err = svc.Update(second.Duty.ID, input("2026-06-11", "09:00", "2026-06-11", "12:00"), utcPrefs())
	require.NoError(t, err)

	assert.Empty(t, lnrs(store))
}

func TestUpdate_RegeneratesLocalNightRestAtNewBoundary(t *testing.T) {
	svc, store := newService()

	first, err := svc.Create(input("2026-06-10", "16:00", "2026-06-10", "23:00"), utcPrefs(), false)
	require.NoError(t, err)
	_, err = svc.Create(input("2026-06-11", "06:30", "2026-06-11", "10:00"), utcPrefs(), true)
	require.NoError(t, err)

	result, err := svc.Update(first.Duty.ID, input("2026-06-10", "16:00", "2026-06-10", "23:30"), utcPrefs())
	require.NoError(t, err)
	require.Len(t, result.LNRs, 1)

	stored := lnrs(store)
	require.Len(t, stored, 1)
	assert.Equal(t, time.Date(2026, 6, 10, 23, 30, 0, 0, time.UTC), stored[0].Start)
	assert.Equal(t, time.Date(2026, 6, 11, 11, 30, 0, 0, time.UTC), stored[0].End)
}
