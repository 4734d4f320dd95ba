package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studytrack/studytrack-api/internal/models"
)

func TestCategoryAverageGradedOnly(t *testing.T) {
	assignments := []models.Assignment{
		{CategoryID: 1, PointsEarned: 90, MaxPoints: 100},
		{CategoryID: 1, PointsEarned: 40, MaxPoints: 50},
		{CategoryID: 1, PointsEarned: 0, MaxPoints: 100}, // ungraded, excluded
		{CategoryID: 2, PointsEarned: 100, MaxPoints: 100},
	}
	assert.InDelta(t, 85.0, CategoryAverage(assignments, 1), 0.0001)
}

func TestCategoryAverageNoGradedAssignments(t *testing.T) {
	assignments := []models.Assignment{
		{CategoryID: 1, PointsEarned: 0, MaxPoints: 100},
		{CategoryID: 1, PointsEarned: 0, MaxPoints: 50},
	}
	assert.Equal(t, 0.0, CategoryAverage(assignments, 1))
	assert.Equal(t, 0.0, CategoryAverage(nil, 1))
}

func TestCourseGradeSkipsEmptyCategories(t *testing.T) {
	categories := []models.GradeCategory{
		{ID: 1, Name: "Homework", Weight: 40},
		{ID: 2, Name: "Exams", Weight: 30},
		{ID: 3, Name: "Project", Weight: 30}, // no assignments, contributes nothing
	}
	assignments := []models.Assignment{
		{CategoryID: 1, PointsEarned: 80, MaxPoints: 100},
		{CategoryID: 2, PointsEarned: 90, MaxPoints: 100},
	}
	// (80*0.4 + 90*0.3) / 0.7
	assert.InDelta(t, (80*0.4+90*0.3)/0.7, CourseGrade(assignments, categories), 0.0001)
}

func TestCourseGradePresenceGatesWeight(t *testing.T) {
	categories := []models.GradeCategory{
		{ID: 1, Name: "Homework", Weight: 50},
		{ID: 2, Name: "Exams", Weight: 50},
	}
	// Category 2 has an assignment but nothing graded: it still carries weight
	// while its average is 0, dragging the result down.
	assignments := []models.Assignment{
		{CategoryID: 1, PointsEarned: 100, MaxPoints: 100},
		{CategoryID: 2, PointsEarned: 0, MaxPoints: 100},
	}
	assert.InDelta(t, 50.0, CourseGrade(assignments, categories), 0.0001)
}

func TestCourseGradeNoPopulatedCategories(t *testing.T) {
	categories := []models.GradeCategory{{ID: 1, Name: "Homework", Weight: 100}}
	assert.Equal(t, 0.0, CourseGrade(nil, categories))
	assert.Equal(t, 0.0, CourseGrade(nil, nil))
}

func TestBreakdownCounts(t *testing.T) {
	categories := []models.GradeCategory{
		{ID: 1, Name: "Homework", Weight: 60},
		{ID: 2, Name: "Exams", Weight: 40},
	}
	assignments := []models.Assignment{
		{CategoryID: 1, PointsEarned: 95, MaxPoints: 100},
		{CategoryID: 1, PointsEarned: 0, MaxPoints: 100},
	}
	breakdown := Breakdown(assignments, categories)
	assert.Len(t, breakdown, 2)

	homework := breakdown[0]
	assert.Equal(t, int64(1), homework.CategoryID)
	assert.Equal(t, 2, homework.TotalCount)
	assert.Equal(t, 1, homework.GradedCount)
	assert.True(t, homework.Contributing)
	assert.InDelta(t, 95.0, homework.Average, 0.0001)

	exams := breakdown[1]
	assert.Equal(t, 0, exams.TotalCount)
	assert.False(t, exams.Contributing)
	assert.Equal(t, 0.0, exams.Average)
}

func TestClampPercentage(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercentage(-5))
	assert.Equal(t, 100.0, ClampPercentage(120))
	assert.Equal(t, 87.5, ClampPercentage(87.5))
}
