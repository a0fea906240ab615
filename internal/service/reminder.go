package service

import (
	"time"

	"github.com/acameron/flightduty/backend/internal/domain"
)

// The 10+travel workflow: the crew member confirms the actual release time
// with their company once settled at the rest location, so the app fires a
// reminder 30 minutes after the recorded duty end and a follow-up 30
// minutes after that.
const (
	reminderDelay    = 30 * time.Minute
	pastDueThreshold = 15 * time.Hour
)

const (
	reminderFirstMessage  = "Reminder: Confirm the new release time with your company (at the hotel room, key in hand or established rest location)."
	reminderSecondMessage = "Follow-up: Please update the release time on the app to reflect the actual time at the rest location."

	advisoryStale   = "More than 15 hours have passed since the release time. Please update the release time to reflect the actual time at the rest location."
	advisoryRecent  = "The release time has already passed. Please modify the end time of the duty to reflect the actual release time."
)

// ReminderPlan says what the notification layer should schedule. The engine
// only produces the plan; execution belongs to notify.Scheduler (or
// whatever the presentation layer substitutes).
type ReminderPlan struct {
	FirstDue      time.Time `json:"first_due"`
	FirstMessage  string    `json:"first_message"`
	SecondDue     time.Time `json:"second_due"`
	SecondMessage string    `json:"second_message"`
}

// PlanReminders builds the two-stage reminder sequence for a committed duty.
// Only the 10+travel rest type triggers reminders. If the duty's end is
// already in the past no plan is produced; instead an advisory message is
// returned, with a distinct wording once more than 15 hours have elapsed.
func PlanReminders(dutyEnd time.Time, restType domain.RestType, now time.Time) (*ReminderPlan, string) {
	if restType != domain.Rest10Travel {
		return nil, ""
	}
	if now.After(dutyEnd) {
		if now.Sub(dutyEnd) > pastDueThreshold {
			return nil, advisoryStale
		}
		return nil, advisoryRecent
	}
	first := dutyEnd.Add(reminderDelay)
	return &ReminderPlan{
		FirstDue:      first,
		FirstMessage:  reminderFirstMessage,
		SecondDue:     first.Add(reminderDelay),
		SecondMessage: reminderSecondMessage,
	}, ""
}
