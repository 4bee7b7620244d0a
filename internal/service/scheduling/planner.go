package scheduling

import "time"

// courtHours is the fixed daily sitting table: twelve half-hour slots
// with the 12:30–14:00 lunch recess left unscheduled.
var courtHours = []string{
	"10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM",
	"04:00 PM", "04:30 PM",
}

// courtRoomCount is the number of courtrooms cycled through within a
// sitting day. Room assignment is round-robin over the day's slots,
// not an availability check.
const courtRoomCount = 4

// SlotsPerDay is the number of hearing slots in one working day.
var SlotsPerDay = len(courtHours)

// Slot is one available hearing opening: a calendar date, a sitting
// time, and the courtroom index the round-robin assigns to it.
type Slot struct {
	Date      time.Time
	Time      string
	RoomIndex int
}

// PlanSlots enumerates the hearing slots for numDays working days
// starting at start. The start is truncated to midnight; Saturdays and
// Sundays are skipped entirely and do not count toward numDays. Slots
// come back in chronological order, SlotsPerDay per working day.
func PlanSlots(start time.Time, numDays int) []Slot {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	slots := make([]Slot, 0, numDays*SlotsPerDay)
	for i := 0; i < numDays; i++ {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}

		for slotIndex, hour := range courtHours {
			slots = append(slots, Slot{
				Date:      day,
				Time:      hour,
				RoomIndex: slotIndex % courtRoomCount,
			})
		}

		day = day.AddDate(0, 0, 1)
	}

	return slots
}
