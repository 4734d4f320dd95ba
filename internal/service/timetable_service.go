package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/studytrack/studytrack-api/internal/dto"
	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/timetable"
	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

type timetableCourseStore interface {
	ListAll(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	UpdateSchedule(ctx context.Context, id int64, slots models.ScheduleSlots) error
}

// PlaceSlotRequest holds payload for placing a weekly slot on a course.
type PlaceSlotRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	Duration  int    `json:"duration" validate:"gte=0"`
	Location  string `json:"location"`
}

// TimetableService manages per-course weekly slots and the merged grid.
type TimetableService struct {
	courses         timetableCourseStore
	cache           *CacheService
	validator       *validator.Validate
	logger          *zap.Logger
	defaultDuration time.Duration
	defaultLocation string
}

// NewTimetableService constructs the timetable service.
func NewTimetableService(courses timetableCourseStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger, defaultDuration time.Duration, defaultLocation string) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultDuration <= 0 {
		defaultDuration = 90 * time.Minute
	}
	if defaultLocation == "" {
		defaultLocation = "TBD"
	}
	return &TimetableService{
		courses:         courses,
		cache:           cache,
		validator:       validate,
		logger:          logger,
		defaultDuration: defaultDuration,
		defaultLocation: defaultLocation,
	}
}

// PlaceSlot writes a weekly slot onto a course. Placing over the course's own
// slot at the same (day, start time) replaces it in place. When another course
// holds that cell its claim is removed first, so the grid never carries a
// silent double booking; the displaced slot is reported back to the caller.
func (s *TimetableService) PlaceSlot(ctx context.Context, courseID int64, req PlaceSlotRequest) (*dto.PlaceSlotResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	if !timetable.ValidDay(req.Day) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day must be a weekday between Monday and Friday")
	}
	if !timetable.ValidStartTime(req.StartTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start time must sit on the 30-minute grid between 8:00 AM and 6:00 PM")
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	duration := req.Duration
	if duration <= 0 {
		duration = int(s.defaultDuration.Minutes())
	}
	location := req.Location
	if location == "" {
		location = s.defaultLocation
	}
	slot := models.ScheduleSlot{
		Day:       req.Day,
		StartTime: req.StartTime,
		Duration:  duration,
		Location:  location,
	}

	displaced, err := s.displaceOccupant(ctx, courseID, req.Day, req.StartTime)
	if err != nil {
		return nil, err
	}

	updated := timetable.AddOrReplaceSlot(course.Schedule, slot)
	if err := s.courses.UpdateSchedule(ctx, courseID, updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule")
	}
	s.invalidateDashboard(ctx)
	return &dto.PlaceSlotResult{Schedule: updated, Displaced: displaced}, nil
}

// RemoveSlot drops the slot at (day, start time) from a course. Removing an
// absent slot succeeds without changing anything.
func (s *TimetableService) RemoveSlot(ctx context.Context, courseID int64, day, startTime string) (models.ScheduleSlots, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	updated := timetable.RemoveSlot(course.Schedule, day, startTime)
	if len(updated) == len(course.Schedule) {
		return course.Schedule, nil
	}
	if err := s.courses.UpdateSchedule(ctx, courseID, updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule")
	}
	s.invalidateDashboard(ctx)
	return updated, nil
}

// Grid assembles the merged weekly view across all courses.
func (s *TimetableService) Grid(ctx context.Context) (*dto.TimetableResponse, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	grid, conflicts := timetable.MergedGrid(courses)
	return &dto.TimetableResponse{
		Days:      timetable.Days,
		TimeSlots: timetable.TimeSlots,
		Grid:      grid,
		Conflicts: conflicts,
		Summary:   timetable.Summarise(courses, grid),
	}, nil
}

// displaceOccupant removes a conflicting claim held by a different course.
func (s *TimetableService) displaceOccupant(ctx context.Context, courseID int64, day, startTime string) (*dto.DisplacedSlot, error) {
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	for _, other := range courses {
		if other.ID == courseID {
			continue
		}
		slot, ok := timetable.FindSlot(other.Schedule, day, startTime)
		if !ok {
			continue
		}
		remaining := timetable.RemoveSlot(other.Schedule, day, startTime)
		if err := s.courses.UpdateSchedule(ctx, other.ID, remaining); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to displace conflicting slot")
		}
		s.logger.Info("displaced conflicting slot",
			zap.Int64("course_id", other.ID),
			zap.String("day", day),
			zap.String("start_time", startTime))
		return &dto.DisplacedSlot{CourseID: other.ID, CourseName: other.Name, Slot: slot}, nil
	}
	return nil, nil
}

func (s *TimetableService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, DashboardCachePattern); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
