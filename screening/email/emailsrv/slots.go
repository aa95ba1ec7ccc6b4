package emailsrv

import (
	"time"

	"github.com/talentsift/screening/screening/email"
)

const (
	defaultNumSlots     = 3
	defaultStartDaysOut = 3
	morningSlotStart    = "10:00"
	morningSlotEnd      = "11:00"
	afternoonSlotStart  = "14:00"
	afternoonSlotEnd    = "15:00"
)

// GenerateInterviewSlots proposes numSlots interview times starting at
// least startDaysOut days after from, on business days only. Each day
// contributes a morning and an afternoon slot; the list is truncated
// to numSlots.
func GenerateInterviewSlots(from time.Time, numSlots, startDaysOut int) []email.InterviewSlot {
	if numSlots <= 0 {
		numSlots = defaultNumSlots
	}
	if startDaysOut <= 0 {
		startDaysOut = defaultStartDaysOut
	}

	day := from.AddDate(0, 0, startDaysOut)
	for isWeekend(day) {
		day = day.AddDate(0, 0, 1)
	}

	slots := make([]email.InterviewSlot, 0, numSlots)
	for len(slots) < numSlots {
		for isWeekend(day) {
			day = day.AddDate(0, 0, 1)
		}

		date := day.Format("2006-01-02")
		slots = append(slots,
			email.InterviewSlot{Date: date, StartTime: morningSlotStart, EndTime: morningSlotEnd},
			email.InterviewSlot{Date: date, StartTime: afternoonSlotStart, EndTime: afternoonSlotEnd},
		)

		day = day.AddDate(0, 0, 1)
	}

	return slots[:numSlots]
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
