// Package notify executes reminder plans produced by the service layer.
// The scheduler is fire-and-forget: timers cannot be cancelled, only read
// the instants captured at schedule time, and never touch the timeline. A
// reminder may therefore fire after the duty it referenced was edited or
// deleted; that is acceptable by design, since the reminder text only asks
// the user to confirm a release time.
package notify

import (
	"log/slog"
	"time"

	"github.com/acameron/flightduty/backend/internal/service"
)

// Scheduler delivers reminders by logging them. The presentation layer is
// expected to replace delivery with real local notifications; the engine
// only guarantees best effort.
type Scheduler struct {
	log *slog.Logger

	// after is time.AfterFunc, injectable so tests can fire timers
	// synchronously.
	after func(d time.Duration, f func()) *time.Timer

	// now anchors delay computation; pass time.Now in production.
	now func() time.Time
}

// NewScheduler constructs a Scheduler that logs via log.
func NewScheduler(log *slog.Logger) *Scheduler {
	return &Scheduler{log: log, after: time.AfterFunc, now: time.Now}
}

// Schedule arms both stages of a reminder plan. A nil plan is a no-op.
// Due times already in the past fire immediately.
func (s *Scheduler) Schedule(plan *service.ReminderPlan) {
	if plan == nil {
		return
	}
	now := s.now()
	s.at(plan.FirstDue.Sub(now), "reminder", plan.FirstMessage)
	s.at(plan.SecondDue.Sub(now), "reminder_followup", plan.SecondMessage)
}

func (s *Scheduler) at(delay time.Duration, stage, message string) {
	if delay < 0 {
		delay = 0
	}
	s.after(delay, func() {
		s.log.Info("reminder due", "stage", stage, "message", message)
	})
}
