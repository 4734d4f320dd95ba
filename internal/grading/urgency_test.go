package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studytrack/studytrack-api/internal/models"
)

var now = time.Date(2024, 10, 15, 14, 30, 0, 0, time.UTC)

func TestClassifyBuckets(t *testing.T) {
	cases := []struct {
		due  time.Time
		want Urgency
	}{
		{now.AddDate(0, 0, -1), UrgencyOverdue},
		{now.Add(-2 * time.Hour), UrgencyDueToday},
		{now, UrgencyDueToday},
		{now.AddDate(0, 0, 1), UrgencyDueTomorrow},
		{now.AddDate(0, 0, 2), UrgencyDueSoon},
		{now.AddDate(0, 0, 3), UrgencyDueSoon},
		{now.AddDate(0, 0, 4), UrgencyDueThisWeek},
		{now.AddDate(0, 0, 7), UrgencyDueThisWeek},
		{now.AddDate(0, 0, 8), UrgencyLater},
		{now.AddDate(0, 0, 10), UrgencyLater},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.due, now), "due %s", tc.due)
	}
}

func TestClassifyUsesCalendarDays(t *testing.T) {
	// Due at 23:59 today is still today, even though it is hours away.
	due := time.Date(2024, 10, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, UrgencyDueToday, Classify(due, now))

	// Due one minute after midnight tomorrow is tomorrow, not today.
	due = time.Date(2024, 10, 16, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, UrgencyDueTomorrow, Classify(due, now))
}

func TestColorTier(t *testing.T) {
	assert.Equal(t, "error", ColorTier(UrgencyOverdue))
	assert.Equal(t, "warning", ColorTier(UrgencyDueToday))
	assert.Equal(t, "secondary", ColorTier(UrgencyLater))
}

func TestRelativeLabel(t *testing.T) {
	assert.Equal(t, "Today", RelativeLabel(now, now))
	assert.Equal(t, "Tomorrow", RelativeLabel(now.AddDate(0, 0, 1), now))
	assert.Equal(t, "3 days ago", RelativeLabel(now.AddDate(0, 0, -3), now))
	assert.Equal(t, "In 5 days", RelativeLabel(now.AddDate(0, 0, 5), now))
	assert.Equal(t, "Oct 25, 2024", RelativeLabel(now.AddDate(0, 0, 10), now))
}

func TestIsUpcoming(t *testing.T) {
	window := 7 * 24 * time.Hour
	inWindow := models.Assignment{DueDate: now.AddDate(0, 0, 3)}
	assert.True(t, IsUpcoming(inWindow, now, window))

	completed := models.Assignment{DueDate: now.AddDate(0, 0, 3), Completed: true}
	assert.False(t, IsUpcoming(completed, now, window))

	past := models.Assignment{DueDate: now.Add(-time.Hour)}
	assert.False(t, IsUpcoming(past, now, window))

	beyond := models.Assignment{DueDate: now.AddDate(0, 0, 9)}
	assert.False(t, IsUpcoming(beyond, now, window))
}

func TestIsOverdue(t *testing.T) {
	assert.True(t, IsOverdue(models.Assignment{DueDate: now.Add(-time.Minute)}, now))
	assert.False(t, IsOverdue(models.Assignment{DueDate: now.Add(-time.Minute), Completed: true}, now))
	assert.False(t, IsOverdue(models.Assignment{DueDate: now.Add(time.Minute)}, now))
}
