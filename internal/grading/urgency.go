package grading

import (
	"fmt"
	"time"

	"github.com/studytrack/studytrack-api/internal/models"
)

// Urgency classifies how soon an assignment is due.
type Urgency string

const (
	UrgencyOverdue     Urgency = "OVERDUE"
	UrgencyDueToday    Urgency = "DUE_TODAY"
	UrgencyDueTomorrow Urgency = "DUE_TOMORROW"
	UrgencyDueSoon     Urgency = "DUE_SOON"
	UrgencyDueThisWeek Urgency = "DUE_THIS_WEEK"
	UrgencyLater       Urgency = "LATER"
)

// Classify buckets a due timestamp relative to now by whole-day difference.
// Both timestamps are truncated to their UTC calendar dates first, so a task
// due later today never counts as overdue regardless of time of day.
func Classify(due, now time.Time) Urgency {
	days := daysBetween(now, due)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days == 0:
		return UrgencyDueToday
	case days == 1:
		return UrgencyDueTomorrow
	case days <= 3:
		return UrgencyDueSoon
	case days <= 7:
		return UrgencyDueThisWeek
	default:
		return UrgencyLater
	}
}

// ColorTier returns the display tier the view layer maps to a colour.
func ColorTier(u Urgency) string {
	switch u {
	case UrgencyOverdue:
		return "error"
	case UrgencyDueToday:
		return "warning"
	case UrgencyDueTomorrow:
		return "accent"
	case UrgencyDueSoon:
		return "orange"
	case UrgencyDueThisWeek:
		return "primary"
	default:
		return "secondary"
	}
}

// RelativeLabel renders a human-readable phrase for a due date.
func RelativeLabel(due, now time.Time) string {
	days := daysBetween(now, due)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	case days <= 7:
		return fmt.Sprintf("In %d days", days)
	default:
		return due.UTC().Format("Jan 02, 2006")
	}
}

// IsUpcoming reports whether an assignment belongs on the dashboard's upcoming
// list: incomplete, due at or after now, and within the lookahead window.
func IsUpcoming(a models.Assignment, now time.Time, window time.Duration) bool {
	if a.Completed {
		return false
	}
	return !a.DueDate.Before(now) && !a.DueDate.After(now.Add(window))
}

// IsOverdue reports whether an assignment is incomplete and past due.
func IsOverdue(a models.Assignment, now time.Time) bool {
	return !a.Completed && a.DueDate.Before(now)
}

func daysBetween(now, due time.Time) int {
	nowDate := truncateToDate(now)
	dueDate := truncateToDate(due)
	return int(dueDate.Sub(nowDate).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
