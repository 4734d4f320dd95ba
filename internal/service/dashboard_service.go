package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/dto"
	"github.com/studytrack/studytrack-api/internal/grading"
	"github.com/studytrack/studytrack-api/internal/models"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type dashboardCourseStore interface {
	ListAll(ctx context.Context) ([]models.Course, error)
}

type dashboardAssignmentStore interface {
	ListAll(ctx context.Context) ([]models.Assignment, error)
}

// DashboardConfig tunes the upcoming list.
type DashboardConfig struct {
	UpcomingWindow  time.Duration
	UpcomingListMax int
	CacheTTL        time.Duration
}

// DashboardService aggregates the landing view payload with optional caching.
type DashboardService struct {
	courses     dashboardCourseStore
	assignments dashboardAssignmentStore
	cache       *CacheService
	logger      *zap.Logger
	cfg         DashboardConfig
	now         func() time.Time
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(courses dashboardCourseStore, assignments dashboardAssignmentStore, cache *CacheService, logger *zap.Logger, cfg DashboardConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UpcomingWindow <= 0 {
		cfg.UpcomingWindow = 7 * 24 * time.Hour
	}
	if cfg.UpcomingListMax <= 0 {
		cfg.UpcomingListMax = 5
	}
	return &DashboardService{
		courses:     courses,
		assignments: assignments,
		cache:       cache,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Summary returns the dashboard aggregate, serving from cache when possible.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	var cached dto.DashboardSummary
	hit, err := s.cache.Get(ctx, DashboardCacheKey, &cached)
	if err != nil {
		s.logger.Warn("dashboard cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, DashboardCacheKey, summary, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return summary, nil
}

func (s *DashboardService) build(ctx context.Context) (*dto.DashboardSummary, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	assignments, err := s.assignments.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	now := s.now()
	courseByID := make(map[int64]models.Course, len(courses))
	grades := make([]grading.CreditGrade, 0, len(courses))
	totalCredits := 0
	for _, course := range courses {
		courseByID[course.ID] = course
		grades = append(grades, grading.CreditGrade{Percentage: course.CurrentGrade, Credits: course.Credits})
		totalCredits += course.Credits
	}

	summary := &dto.DashboardSummary{
		GPA:          grading.ComputeGPA(grades),
		TotalCredits: totalCredits,
		CourseCount:  len(courses),
		Upcoming:     []dto.UpcomingAssignment{},
		GeneratedAt:  now.UTC(),
	}

	var upcoming []models.Assignment
	for _, a := range assignments {
		if a.Completed {
			summary.CompletedAssignments++
			continue
		}
		summary.PendingAssignments++
		if grading.IsOverdue(a, now) {
			summary.OverdueCount++
		}
		if grading.IsUpcoming(a, now, s.cfg.UpcomingWindow) {
			upcoming = append(upcoming, a)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].DueDate.Before(upcoming[j].DueDate) })
	if len(upcoming) > s.cfg.UpcomingListMax {
		upcoming = upcoming[:s.cfg.UpcomingListMax]
	}
	for _, a := range upcoming {
		course := courseByID[a.CourseID]
		summary.Upcoming = append(summary.Upcoming, dto.UpcomingAssignment{
			ID:         a.ID,
			CourseID:   a.CourseID,
			CourseName: course.Name,
			Color:      course.Color,
			Title:      a.Title,
			DueDate:    a.DueDate,
			Priority:   a.Priority,
			Urgency:    string(grading.Classify(a.DueDate, now)),
			ColorTier:  grading.ColorTier(grading.Classify(a.DueDate, now)),
			DueLabel:   grading.RelativeLabel(a.DueDate, now),
		})
	}

	return summary, nil
}
