package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/repository"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type categoryRepository interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.GradeCategory, error)
	FindByID(ctx context.Context, id int64) (*models.GradeCategory, error)
	Create(ctx context.Context, category *models.GradeCategory) error
	Update(ctx context.Context, category *models.GradeCategory) error
	Delete(ctx context.Context, id int64) error
}

// CreateCategoryRequest holds payload for creating grade categories.
type CreateCategoryRequest struct {
	CourseID int64   `json:"course_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Weight   float64 `json:"weight" validate:"gt=0,lte=100"`
}

// UpdateCategoryRequest holds payload for updating grade categories.
type UpdateCategoryRequest struct {
	Name   string  `json:"name" validate:"required"`
	Weight float64 `json:"weight" validate:"gt=0,lte=100"`
}

// CategoryService handles grade category use-cases.
type CategoryService struct {
	repo      categoryRepository
	courses   assignmentCourseChecker
	allocator idAllocator
	grades    gradeRecalculator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCategoryService constructs the category service.
func NewCategoryService(repo categoryRepository, courses assignmentCourseChecker, allocator idAllocator, grades gradeRecalculator, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		repo:      repo,
		courses:   courses,
		allocator: allocator,
		grades:    grades,
		validator: validate,
		logger:    logger,
	}
}

// ListByCourse returns the categories of one course, heaviest first.
func (s *CategoryService) ListByCourse(ctx context.Context, courseID int64) ([]models.GradeCategory, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	categories, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grade categories")
	}
	return categories, nil
}

// Get returns one grade category.
func (s *CategoryService) Get(ctx context.Context, id int64) (*models.GradeCategory, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade category not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade category")
	}
	return category, nil
}

// Create registers a new grade category under an existing course.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*models.GradeCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category payload")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	id, err := s.allocator.NextID(ctx, repository.CategorySequence)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate category id")
	}
	category := &models.GradeCategory{
		ID:       id,
		CourseID: req.CourseID,
		Name:     req.Name,
		Weight:   req.Weight,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade category")
	}
	s.recalculate(ctx, category.CourseID)
	return category, nil
}

// Update modifies a grade category. The weight change cascades into the owning
// course grade.
func (s *CategoryService) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (*models.GradeCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid category payload")
	}
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade category not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade category")
	}
	category.Name = req.Name
	category.Weight = req.Weight
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade category")
	}
	s.recalculate(ctx, category.CourseID)
	return category, nil
}

// Delete removes a grade category and refreshes the owning course grade.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grade category not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade category")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete grade category")
	}
	s.recalculate(ctx, category.CourseID)
	return nil
}

func (s *CategoryService) recalculate(ctx context.Context, courseID int64) {
	if s.grades == nil {
		return
	}
	if _, err := s.grades.RecalculateCourseGrade(ctx, courseID); err != nil {
		s.logger.Warn("course grade recalculation failed", zap.Int64("course_id", courseID), zap.Error(err))
	}
}
