package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/dto"
	"github.com/studytrack/studytrack-api/internal/grading"
	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type gradeCourseStore interface {
	ListAll(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	UpdateGrade(ctx context.Context, id int64, grade float64) error
}

type gradeAssignmentStore interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error)
}

type gradeCategoryStore interface {
	ListByCourse(ctx context.Context, courseID int64) ([]models.GradeCategory, error)
}

// GradeService computes and persists course grades and the cumulative GPA.
type GradeService struct {
	courses     gradeCourseStore
	assignments gradeAssignmentStore
	categories  gradeCategoryStore
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(courses gradeCourseStore, assignments gradeAssignmentStore, categories gradeCategoryStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		courses:     courses,
		assignments: assignments,
		categories:  categories,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

// CourseGrade returns the computed grade for one course with its letter
// equivalent and per-category breakdown.
func (s *GradeService) CourseGrade(ctx context.Context, courseID int64) (*dto.CourseGradeResponse, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	categories, err := s.categories.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade categories")
	}

	grade := grading.ClampPercentage(grading.CourseGrade(assignments, categories))
	return &dto.CourseGradeResponse{
		CourseID:     course.ID,
		CurrentGrade: grade,
		LetterGrade:  grading.LetterGrade(grade),
		GradePoints:  grading.GradePoints(grade),
		Breakdown:    grading.Breakdown(assignments, categories),
	}, nil
}

// RecalculateCourseGrade recomputes a course grade from its assignments and
// categories and persists the clamped result. Returns the stored percentage.
func (s *GradeService) RecalculateCourseGrade(ctx context.Context, courseID int64) (float64, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	categories, err := s.categories.ListByCourse(ctx, courseID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade categories")
	}

	grade := grading.ClampPercentage(grading.CourseGrade(assignments, categories))
	if err := s.courses.UpdateGrade(ctx, courseID, grade); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist course grade")
	}
	if s.metrics != nil {
		s.metrics.RecordGradeRecalculation()
	}
	if err := s.cache.Invalidate(ctx, DashboardCachePattern); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
	return grade, nil
}

// GPA aggregates all courses into the cumulative credit-weighted GPA.
func (s *GradeService) GPA(ctx context.Context) (*dto.GPAResponse, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	grades := make([]grading.CreditGrade, 0, len(courses))
	totalCredits := 0
	for _, course := range courses {
		grades = append(grades, grading.CreditGrade{Percentage: course.CurrentGrade, Credits: course.Credits})
		totalCredits += course.Credits
	}
	return &dto.GPAResponse{
		GPA:          grading.ComputeGPA(grades),
		TotalCredits: totalCredits,
		CourseCount:  len(courses),
	}, nil
}
