package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/repository"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type assignmentRepository interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, int, error)
	FindByID(ctx context.Context, id int64) (*models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int64) error
}

type assignmentCourseChecker interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

type assignmentCategoryChecker interface {
	FindByID(ctx context.Context, id int64) (*models.GradeCategory, error)
}

type gradeRecalculator interface {
	RecalculateCourseGrade(ctx context.Context, courseID int64) (float64, error)
}

// CreateAssignmentRequest holds payload for creating assignments.
type CreateAssignmentRequest struct {
	CourseID     int64                     `json:"course_id" validate:"required"`
	CategoryID   int64                     `json:"category_id" validate:"required"`
	Title        string                    `json:"title" validate:"required"`
	Description  string                    `json:"description"`
	DueDate      time.Time                 `json:"due_date" validate:"required"`
	Priority     models.AssignmentPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	PointsEarned float64                   `json:"points_earned" validate:"gte=0"`
	MaxPoints    float64                   `json:"max_points" validate:"gt=0"`
}

// UpdateAssignmentRequest holds payload for updating assignments.
type UpdateAssignmentRequest struct {
	CategoryID   int64                     `json:"category_id" validate:"required"`
	Title        string                    `json:"title" validate:"required"`
	Description  string                    `json:"description"`
	DueDate      time.Time                 `json:"due_date" validate:"required"`
	Priority     models.AssignmentPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Completed    bool                      `json:"completed"`
	PointsEarned float64                   `json:"points_earned" validate:"gte=0"`
	MaxPoints    float64                   `json:"max_points" validate:"gt=0"`
}

// AssignmentService handles assignment use-cases. Writes that can affect the
// course grade trigger a recalculation so the stored grade never goes stale.
type AssignmentService struct {
	repo       assignmentRepository
	courses    assignmentCourseChecker
	categories assignmentCategoryChecker
	allocator  idAllocator
	grades     gradeRecalculator
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(repo assignmentRepository, courses assignmentCourseChecker, categories assignmentCategoryChecker, allocator idAllocator, grades gradeRecalculator, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		repo:       repo,
		courses:    courses,
		categories: categories,
		allocator:  allocator,
		grades:     grades,
		cache:      cache,
		validator:  validate,
		logger:     logger,
	}
}

// List returns assignments and pagination metadata.
func (s *AssignmentService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, *models.Pagination, error) {
	assignments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return assignments, pagination, nil
}

// Get returns one assignment.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	return assignment, nil
}

// Create registers a new assignment. The referenced course and category must
// exist and the category must belong to the same course.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	category, err := s.categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade category not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade category")
	}
	if category.CourseID != req.CourseID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade category belongs to a different course")
	}

	id, err := s.allocator.NextID(ctx, repository.AssignmentSequence)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate assignment id")
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	assignment := &models.Assignment{
		ID:           id,
		CourseID:     req.CourseID,
		CategoryID:   req.CategoryID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     priority,
		PointsEarned: req.PointsEarned,
		MaxPoints:    req.MaxPoints,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	s.recalculate(ctx, assignment.CourseID)
	return assignment, nil
}

// Update modifies an existing assignment and refreshes the course grade.
func (s *AssignmentService) Update(ctx context.Context, id int64, req UpdateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	category, err := s.categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade category not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade category")
	}
	if category.CourseID != assignment.CourseID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade category belongs to a different course")
	}

	assignment.CategoryID = req.CategoryID
	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.DueDate = req.DueDate
	if req.Priority != "" {
		assignment.Priority = req.Priority
	}
	assignment.Completed = req.Completed
	assignment.PointsEarned = req.PointsEarned
	assignment.MaxPoints = req.MaxPoints
	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	s.recalculate(ctx, assignment.CourseID)
	return assignment, nil
}

// ToggleComplete flips the completion flag and returns the updated record.
func (s *AssignmentService) ToggleComplete(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	assignment.Completed = !assignment.Completed
	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
	}
	if err := s.cache.Invalidate(ctx, DashboardCachePattern); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
	return assignment, nil
}

// Delete removes an assignment and refreshes the course grade.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	s.recalculate(ctx, assignment.CourseID)
	return nil
}

// recalculate refreshes the owning course grade after a write. A failed
// recalculation is logged, not surfaced; the write itself already succeeded.
func (s *AssignmentService) recalculate(ctx context.Context, courseID int64) {
	if s.grades == nil {
		return
	}
	if _, err := s.grades.RecalculateCourseGrade(ctx, courseID); err != nil {
		s.logger.Warn("course grade recalculation failed", zap.Int64("course_id", courseID), zap.Error(err))
	}
}
