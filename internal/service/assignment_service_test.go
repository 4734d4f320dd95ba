package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type mockAssignmentRepo struct {
	assignments map[int64]models.Assignment
	deleted     []int64
	listTotal   int
}

func (m *mockAssignmentRepo) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, int, error) {
	return m.all(), m.listTotal, nil
}

func (m *mockAssignmentRepo) ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range m.all() {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) ListAll(ctx context.Context) ([]models.Assignment, error) {
	return m.all(), nil
}

func (m *mockAssignmentRepo) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	if m.assignments == nil {
		m.assignments = make(map[int64]models.Assignment)
	}
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *mockAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	m.assignments[assignment.ID] = *assignment
	return nil
}

func (m *mockAssignmentRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepo) all() []models.Assignment {
	assignments := make([]models.Assignment, 0, len(m.assignments))
	for _, a := range m.assignments {
		assignments = append(assignments, a)
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments
}

type mockCategoryRepo struct {
	categories map[int64]models.GradeCategory
	deleted    []int64
}

func (m *mockCategoryRepo) ListByCourse(ctx context.Context, courseID int64) ([]models.GradeCategory, error) {
	var out []models.GradeCategory
	for _, c := range m.categories {
		if c.CourseID == courseID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out, nil
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id int64) (*models.GradeCategory, error) {
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.GradeCategory) error {
	if m.categories == nil {
		m.categories = make(map[int64]models.GradeCategory)
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *models.GradeCategory) error {
	m.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.categories, id)
	return nil
}

type mockRecalc struct {
	courseIDs []int64
	grade     float64
}

func (m *mockRecalc) RecalculateCourseGrade(ctx context.Context, courseID int64) (float64, error) {
	m.courseIDs = append(m.courseIDs, courseID)
	return m.grade, nil
}

func newAssignmentService(assignments *mockAssignmentRepo, courses *mockCourseRepo, categories *mockCategoryRepo, recalc *mockRecalc) *AssignmentService {
	return NewAssignmentService(assignments, courses, categories, &mockAllocator{}, recalc, nil, validator.New(), zap.NewNop())
}

func TestAssignmentServiceCreateTriggersRecalculation(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{2: {ID: 2, Name: "Calculus"}}}
	categories := &mockCategoryRepo{categories: map[int64]models.GradeCategory{3: {ID: 3, CourseID: 2, Name: "Homework", Weight: 40}}}
	repo := &mockAssignmentRepo{}
	recalc := &mockRecalc{}
	svc := newAssignmentService(repo, courses, categories, recalc)

	assignment, err := svc.Create(context.Background(), CreateAssignmentRequest{
		CourseID:   2,
		CategoryID: 3,
		Title:      "Problem Set 1",
		DueDate:    time.Now().Add(72 * time.Hour),
		MaxPoints:  100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), assignment.ID)
	assert.Equal(t, models.PriorityMedium, assignment.Priority)
	assert.Equal(t, []int64{2}, recalc.courseIDs)
}

func TestAssignmentServiceCreateRejectsForeignCategory(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{2: {ID: 2}}}
	categories := &mockCategoryRepo{categories: map[int64]models.GradeCategory{3: {ID: 3, CourseID: 9, Name: "Exams", Weight: 60}}}
	svc := newAssignmentService(&mockAssignmentRepo{}, courses, categories, &mockRecalc{})

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		CourseID:   2,
		CategoryID: 3,
		Title:      "Midterm",
		DueDate:    time.Now(),
		MaxPoints:  100,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceCreateCourseNotFound(t *testing.T) {
	svc := newAssignmentService(&mockAssignmentRepo{}, &mockCourseRepo{}, &mockCategoryRepo{}, &mockRecalc{})

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		CourseID:   99,
		CategoryID: 3,
		Title:      "Ghost",
		DueDate:    time.Now(),
		MaxPoints:  10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceToggleComplete(t *testing.T) {
	repo := &mockAssignmentRepo{assignments: map[int64]models.Assignment{
		5: {ID: 5, CourseID: 2, Title: "Essay", Completed: false},
	}}
	svc := newAssignmentService(repo, &mockCourseRepo{}, &mockCategoryRepo{}, &mockRecalc{})

	toggled, err := svc.ToggleComplete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.ToggleComplete(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestAssignmentServiceToggleCompleteNotFound(t *testing.T) {
	svc := newAssignmentService(&mockAssignmentRepo{}, &mockCourseRepo{}, &mockCategoryRepo{}, &mockRecalc{})

	_, err := svc.ToggleComplete(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAssignmentServiceDeleteTriggersRecalculation(t *testing.T) {
	repo := &mockAssignmentRepo{assignments: map[int64]models.Assignment{
		5: {ID: 5, CourseID: 2, Title: "Essay"},
	}}
	recalc := &mockRecalc{}
	svc := newAssignmentService(repo, &mockCourseRepo{}, &mockCategoryRepo{}, recalc)

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Contains(t, repo.deleted, int64(5))
	assert.Equal(t, []int64{2}, recalc.courseIDs)
}
