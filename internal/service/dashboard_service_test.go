package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
)

var dashboardNow = time.Date(2024, 10, 15, 14, 30, 0, 0, time.UTC)

func newDashboardService(courses *mockCourseRepo, assignments *mockAssignmentRepo, cfg DashboardConfig) *DashboardService {
	svc := NewDashboardService(courses, assignments, nil, zap.NewNop(), cfg)
	svc.now = func() time.Time { return dashboardNow }
	return svc
}

func TestDashboardServiceSummary(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{
		1: {ID: 1, Name: "Calculus", Color: "#4F46E5", Credits: 3, CurrentGrade: 90},
		2: {ID: 2, Name: "Physics", Color: "#10B981", Credits: 4, CurrentGrade: 80},
	}}
	assignments := &mockAssignmentRepo{assignments: map[int64]models.Assignment{
		1: {ID: 1, CourseID: 1, Title: "Done", Completed: true, DueDate: dashboardNow.Add(-48 * time.Hour)},
		2: {ID: 2, CourseID: 1, Title: "Late", DueDate: dashboardNow.Add(-24 * time.Hour)},
		3: {ID: 3, CourseID: 2, Title: "Soon", DueDate: dashboardNow.Add(48 * time.Hour)},
		4: {ID: 4, CourseID: 2, Title: "Far", DueDate: dashboardNow.Add(30 * 24 * time.Hour)},
	}}
	svc := newDashboardService(courses, assignments, DashboardConfig{})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 2.73, summary.GPA, 0.0001)
	assert.Equal(t, 7, summary.TotalCredits)
	assert.Equal(t, 2, summary.CourseCount)
	assert.Equal(t, 1, summary.CompletedAssignments)
	assert.Equal(t, 3, summary.PendingAssignments)
	assert.Equal(t, 1, summary.OverdueCount)
	require.Len(t, summary.Upcoming, 1)
	assert.Equal(t, "Soon", summary.Upcoming[0].Title)
	assert.Equal(t, "Physics", summary.Upcoming[0].CourseName)
	assert.Equal(t, "DUE_SOON", summary.Upcoming[0].Urgency)
	assert.Equal(t, "In 2 days", summary.Upcoming[0].DueLabel)
}

func TestDashboardServiceUpcomingSortedAndCapped(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{1: {ID: 1, Name: "Calculus"}}}
	assignments := &mockAssignmentRepo{assignments: map[int64]models.Assignment{
		1: {ID: 1, CourseID: 1, Title: "Third", DueDate: dashboardNow.Add(72 * time.Hour)},
		2: {ID: 2, CourseID: 1, Title: "First", DueDate: dashboardNow.Add(12 * time.Hour)},
		3: {ID: 3, CourseID: 1, Title: "Second", DueDate: dashboardNow.Add(36 * time.Hour)},
	}}
	svc := newDashboardService(courses, assignments, DashboardConfig{UpcomingListMax: 2})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Upcoming, 2)
	assert.Equal(t, "First", summary.Upcoming[0].Title)
	assert.Equal(t, "Second", summary.Upcoming[1].Title)
}

func TestDashboardServiceEmpty(t *testing.T) {
	svc := newDashboardService(&mockCourseRepo{}, &mockAssignmentRepo{}, DashboardConfig{})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.GPA)
	assert.Zero(t, summary.CourseCount)
	assert.Empty(t, summary.Upcoming)
}
