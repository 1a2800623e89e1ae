package scheduler

import (
	"fmt"
	"math"
	"sort"

	"github.com/delpresence/backend/internal/examcal/models"
)

// reservationKey is (date, startTime, roomId) -> requestId, scoped to a
// single generation call and never shared across generations (§5, §9).
type reservationKey struct {
	date      string
	startTime string
	roomID    string
}

// ReservationMap tracks the room bookings made by one generation run. It
// starts empty; committed RoomAssignments inside the window are held
// separately in existingBookings, and both are checked so cross-program
// conflicts surface as NoRoomAvailable rather than duplicate bookings.
type ReservationMap map[reservationKey]string

func (m ReservationMap) reserve(date, start, roomID, requestID string) {
	m[reservationKey{date, start, roomID}] = requestID
}

func (m ReservationMap) occupied(date, start, roomID string) bool {
	_, ok := m[reservationKey{date, start, roomID}]
	return ok
}

// timeInterval is a half-open [start, end) time-of-day interval on one date.
type timeInterval struct {
	date  string
	start string
	end   string
}

func overlaps(a, b timeInterval) bool {
	if a.date != b.date {
		return false
	}
	return a.start < b.end && b.start < a.end
}

// existingBookings indexes committed, non-rejected RoomAssignments by room,
// for the overlap leg of the room feasibility predicate (§4.5.3).
type existingBookings map[string][]timeInterval

func (b existingBookings) conflicts(roomID string, interval timeInterval) bool {
	for _, existing := range b[roomID] {
		if overlaps(existing, interval) {
			return true
		}
	}
	return false
}

// roomCandidate is a Room annotated with whether it is a computer lab and
// whether it is the unit's own class room (used to break platform-mode lab
// preference ties; other rooms in the program's teaching records do not
// count).
type roomCandidate struct {
	room            models.Room
	isComputerLab   bool
	usedByProgramID bool
}

// feasibleRoom applies §4.5.3: capacity tiers tried A->B->C across all
// candidate rooms, then the non-conflict checks. Candidates must already be
// filtered to the correct family (ComputerLab for platform, any enabled
// room for written) by the caller.
func feasibleRoom(candidates []roomCandidate, date, start, end string, headcount int, tiers []float64, booked existingBookings, reservations ReservationMap, preferProgramHistory bool) (models.Room, error) {
	interval := timeInterval{date: date, start: start, end: end}

	sorted := make([]roomCandidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		if preferProgramHistory && sorted[i].usedByProgramID != sorted[j].usedByProgramID {
			return sorted[i].usedByProgramID
		}
		return sorted[i].room.ID < sorted[j].room.ID
	})

	for _, tier := range tiers {
		minCapacity := int(math.Ceil(tier * float64(headcount)))
		for _, c := range sorted {
			if c.room.Disabled {
				continue
			}
			if c.room.Capacity < minCapacity {
				continue
			}
			if booked.conflicts(c.room.ID, interval) {
				continue
			}
			if reservations.occupied(date, start, c.room.ID) {
				continue
			}
			return c.room, nil
		}
	}
	return models.Room{}, newErr(KindNoRoomAvailable,
		fmt.Sprintf("no room available for %d seats on %s %s-%s", headcount, date, start, end))
}
