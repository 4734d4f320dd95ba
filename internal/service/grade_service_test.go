package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

func TestGradeServiceCourseGrade(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{2: {ID: 2, Name: "Calculus"}}}
	assignments := &mockAssignmentRepo{assignments: map[int64]models.Assignment{
		1: {ID: 1, CourseID: 2, CategoryID: 10, PointsEarned: 90, MaxPoints: 100},
		2: {ID: 2, CourseID: 2, CategoryID: 11, PointsEarned: 80, MaxPoints: 100},
	}}
	categories := &mockCategoryRepo{categories: map[int64]models.GradeCategory{
		10: {ID: 10, CourseID: 2, Name: "Homework", Weight: 40},
		11: {ID: 11, CourseID: 2, Name: "Exams", Weight: 60},
	}}
	svc := NewGradeService(courses, assignments, categories, nil, nil, zap.NewNop())

	resp, err := svc.CourseGrade(context.Background(), 2)
	require.NoError(t, err)
	assert.InDelta(t, 84.0, resp.CurrentGrade, 0.0001)
	assert.Equal(t, "B", resp.LetterGrade)
	assert.InDelta(t, 2.7, resp.GradePoints, 0.0001)
	assert.Len(t, resp.Breakdown, 2)
}

func TestGradeServiceCourseGradeNotFound(t *testing.T) {
	svc := NewGradeService(&mockCourseRepo{}, &mockAssignmentRepo{}, &mockCategoryRepo{}, nil, nil, zap.NewNop())

	_, err := svc.CourseGrade(context.Background(), 77)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGradeServiceRecalculatePersistsGrade(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{2: {ID: 2, Name: "Calculus"}}}
	assignments := &mockAssignmentRepo{assignments: map[int64]models.Assignment{
		1: {ID: 1, CourseID: 2, CategoryID: 10, PointsEarned: 90, MaxPoints: 100},
	}}
	categories := &mockCategoryRepo{categories: map[int64]models.GradeCategory{
		10: {ID: 10, CourseID: 2, Name: "Homework", Weight: 40},
		11: {ID: 11, CourseID: 2, Name: "Exams", Weight: 60},
	}}
	svc := NewGradeService(courses, assignments, categories, nil, nil, zap.NewNop())

	grade, err := svc.RecalculateCourseGrade(context.Background(), 2)
	require.NoError(t, err)
	// Exams has no assignments, so homework's 90% is renormalised over its own weight.
	assert.InDelta(t, 90.0, grade, 0.0001)
	assert.InDelta(t, 90.0, courses.courses[2].CurrentGrade, 0.0001)
}

func TestGradeServiceRecalculateEmptyCourse(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{2: {ID: 2, CurrentGrade: 50}}}
	svc := NewGradeService(courses, &mockAssignmentRepo{}, &mockCategoryRepo{}, nil, nil, zap.NewNop())

	grade, err := svc.RecalculateCourseGrade(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, grade)
	assert.Zero(t, courses.courses[2].CurrentGrade)
}

func TestGradeServiceGPA(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{
		1: {ID: 1, CurrentGrade: 85, Credits: 3},
		2: {ID: 2, CurrentGrade: 92, Credits: 4},
	}}
	svc := NewGradeService(courses, &mockAssignmentRepo{}, &mockCategoryRepo{}, nil, nil, zap.NewNop())

	resp, err := svc.GPA(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 3.27, resp.GPA, 0.0001)
	assert.Equal(t, 7, resp.TotalCredits)
	assert.Equal(t, 2, resp.CourseCount)
}

func TestGradeServiceGPAEmpty(t *testing.T) {
	svc := NewGradeService(&mockCourseRepo{}, &mockAssignmentRepo{}, &mockCategoryRepo{}, nil, nil, zap.NewNop())

	resp, err := svc.GPA(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.GPA)
	assert.Zero(t, resp.TotalCredits)
}
