package workflow

import (
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
)

// Allowed scheduled post transitions. published and cancelled are terminal;
// failed posts may be rescheduled for another attempt.
var scheduledTransitions = map[string][]string{
	models.ScheduledStatusDraft: {
		models.ScheduledStatusScheduled,
		models.ScheduledStatusCancelled,
	},
	models.ScheduledStatusScheduled: {
		models.ScheduledStatusPublished,
		models.ScheduledStatusFailed,
		models.ScheduledStatusCancelled,
	},
	models.ScheduledStatusFailed:    {models.ScheduledStatusScheduled},
	models.ScheduledStatusPublished: {},
	models.ScheduledStatusCancelled: {},
}

func ScheduledTransitionAllowed(from, to string) bool {
	for _, next := range scheduledTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether cancel is allowed from the given status.
func Cancellable(status string) bool {
	return ScheduledTransitionAllowed(status, models.ScheduledStatusCancelled)
}

// IsOverdue is derived on every read: a post is overdue while it sits in
// scheduled past its publish time. Overdue posts undergo no automatic
// transition; a human decides.
func IsOverdue(status string, scheduledFor, now time.Time) bool {
	return status == models.ScheduledStatusScheduled && scheduledFor.Before(now)
}
