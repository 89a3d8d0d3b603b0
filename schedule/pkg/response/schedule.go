package response

import (
	"time"
)

type TimeSlot struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DaySchedule groups slots under one calendar date (formatted YYYY-MM-DD).
type DaySchedule struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// Upcoming drops every slot whose start is not strictly in the future, and
// drops days left with no slots. Past slots are removed, never disabled.
func Upcoming(days []DaySchedule, now time.Time) []DaySchedule {
	upcoming := make([]DaySchedule, 0, len(days))
	for _, day := range days {
		slots := make([]TimeSlot, 0, len(day.Slots))
		for _, slot := range day.Slots {
			if slot.Start.After(now) {
				slots = append(slots, slot)
			}
		}
		if len(slots) == 0 {
			continue
		}
		upcoming = append(upcoming, DaySchedule{Date: day.Date, Slots: slots})
	}
	return upcoming
}
