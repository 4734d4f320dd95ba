package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

func newCategoryService(repo *mockCategoryRepo, courses *mockCourseRepo, recalc *mockRecalc) *CategoryService {
	return NewCategoryService(repo, courses, &mockAllocator{}, recalc, validator.New(), zap.NewNop())
}

func TestCategoryServiceCreate(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{2: {ID: 2, Name: "Calculus"}}}
	repo := &mockCategoryRepo{}
	recalc := &mockRecalc{}
	svc := newCategoryService(repo, courses, recalc)

	category, err := svc.Create(context.Background(), CreateCategoryRequest{
		CourseID: 2,
		Name:     "Homework",
		Weight:   40,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), category.ID)
	assert.Equal(t, []int64{2}, recalc.courseIDs)
}

func TestCategoryServiceCreateCourseNotFound(t *testing.T) {
	svc := newCategoryService(&mockCategoryRepo{}, &mockCourseRepo{}, &mockRecalc{})

	_, err := svc.Create(context.Background(), CreateCategoryRequest{CourseID: 9, Name: "Exams", Weight: 60})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCategoryServiceCreateRejectsZeroWeight(t *testing.T) {
	courses := &mockCourseRepo{courses: map[int64]models.Course{2: {ID: 2}}}
	svc := newCategoryService(&mockCategoryRepo{}, courses, &mockRecalc{})

	_, err := svc.Create(context.Background(), CreateCategoryRequest{CourseID: 2, Name: "Exams", Weight: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCategoryServiceUpdateCascadesRecalculation(t *testing.T) {
	repo := &mockCategoryRepo{categories: map[int64]models.GradeCategory{3: {ID: 3, CourseID: 2, Name: "Homework", Weight: 40}}}
	recalc := &mockRecalc{}
	svc := newCategoryService(repo, &mockCourseRepo{}, recalc)

	updated, err := svc.Update(context.Background(), 3, UpdateCategoryRequest{Name: "Homework", Weight: 25})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, updated.Weight, 0.0001)
	assert.Equal(t, []int64{2}, recalc.courseIDs)
}

func TestCategoryServiceDelete(t *testing.T) {
	repo := &mockCategoryRepo{categories: map[int64]models.GradeCategory{3: {ID: 3, CourseID: 2, Name: "Homework", Weight: 40}}}
	recalc := &mockRecalc{}
	svc := newCategoryService(repo, &mockCourseRepo{}, recalc)

	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.Contains(t, repo.deleted, int64(3))
	assert.Equal(t, []int64{2}, recalc.courseIDs)

	err := svc.Delete(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCategoryServiceListByCourseNotFound(t *testing.T) {
	svc := newCategoryService(&mockCategoryRepo{}, &mockCourseRepo{}, &mockRecalc{})

	_, err := svc.ListByCourse(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
