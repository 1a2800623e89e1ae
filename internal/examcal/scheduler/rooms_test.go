package scheduler

import (
	"testing"

	"github.com/delpresence/backend/internal/examcal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 2 from spec §8: platform course, one group of 50, labs L-1 (30)
// and L-2 (60). Expect room = L-2 by Tier A capacity.
func TestFeasibleRoom_TierACapacityWins(t *testing.T) {
	candidates := []roomCandidate{
		{room: models.Room{ID: "L-1", Capacity: 30}},
		{room: models.Room{ID: "L-2", Capacity: 60}},
	}
	room, err := feasibleRoom(candidates, "2025-11-10", "10:00", "12:00", 50,
		[]float64{1.0, 0.8, 0.0}, existingBookings{}, ReservationMap{}, true)
	require.NoError(t, err)
	assert.Equal(t, "L-2", room.ID)
}

func TestFeasibleRoom_ProgramHistoryPreferenceBreaksTie(t *testing.T) {
	candidates := []roomCandidate{
		{room: models.Room{ID: "L-1", Capacity: 60}},
		{room: models.Room{ID: "L-2", Capacity: 60}, usedByProgramID: true},
	}
	room, err := feasibleRoom(candidates, "2025-11-10", "10:00", "12:00", 50,
		[]float64{1.0, 0.8, 0.0}, existingBookings{}, ReservationMap{}, true)
	require.NoError(t, err)
	assert.Equal(t, "L-2", room.ID, "the lab already referenced by the program's history should win the tie")
}

// With the preference disabled the tie falls back to the room-ID order,
// ignoring usedByProgramID entirely.
func TestFeasibleRoom_ProgramHistoryPreferenceDisabledFallsBackToIDOrder(t *testing.T) {
	candidates := []roomCandidate{
		{room: models.Room{ID: "L-1", Capacity: 60}},
		{room: models.Room{ID: "L-2", Capacity: 60}, usedByProgramID: true},
	}
	room, err := feasibleRoom(candidates, "2025-11-10", "10:00", "12:00", 50,
		[]float64{1.0, 0.8, 0.0}, existingBookings{}, ReservationMap{}, false)
	require.NoError(t, err)
	assert.Equal(t, "L-1", room.ID, "with the preference off, ID order decides the tie, not teaching history")
}

func TestFeasibleRoom_FallsBackThroughTiersThenFails(t *testing.T) {
	// Tiers A (50 seats) and B (40 seats) reject a 10-seat room; tier C
	// accepts any capacity as a last resort.
	candidates := []roomCandidate{{room: models.Room{ID: "R-1", Capacity: 10}}}
	room, err := feasibleRoom(candidates, "2025-11-10", "10:00", "12:00", 50,
		[]float64{1.0, 0.8, 0.0}, existingBookings{}, ReservationMap{}, true)
	require.NoError(t, err)
	assert.Equal(t, "R-1", room.ID)

	// Once that room is booked for the slot, every tier fails.
	booked := existingBookings{"R-1": {{date: "2025-11-10", start: "10:00", end: "12:00"}}}
	_, err = feasibleRoom(candidates, "2025-11-10", "10:00", "12:00", 50,
		[]float64{1.0, 0.8, 0.0}, booked, ReservationMap{}, true)
	require.Error(t, err)
	schedErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindNoRoomAvailable, schedErr.Kind)
}

func TestFeasibleRoom_RejectsOverlappingBooking(t *testing.T) {
	candidates := []roomCandidate{{room: models.Room{ID: "R-101", Capacity: 40}}}
	booked := existingBookings{"R-101": {{date: "2025-11-10", start: "09:00", end: "11:00"}}}

	_, err := feasibleRoom(candidates, "2025-11-10", "10:00", "12:00", 30,
		[]float64{1.0, 0.8, 0.0}, booked, ReservationMap{}, true)
	require.Error(t, err)
}

func TestFeasibleRoom_AllowsRejectedOwnerRoomReuse(t *testing.T) {
	// A rejected exam's room is not present in existingBookings at all
	// (the repository only seeds non-rejected assignments), so the room
	// is free for reuse — see the §9(c) open-question resolution.
	candidates := []roomCandidate{{room: models.Room{ID: "R-101", Capacity: 40}}}
	_, err := feasibleRoom(candidates, "2025-11-10", "10:00", "12:00", 30,
		[]float64{1.0, 0.8, 0.0}, existingBookings{}, ReservationMap{}, true)
	require.NoError(t, err)
}
