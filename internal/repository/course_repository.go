package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studytrack/studytrack-api/internal/models"
)

const courseColumns = "id, name, instructor, credits, semester, color, current_grade, schedule, created_at, updated_at"

// CourseRepository provides persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses with optional filtering and pagination.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Semester != "" {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR instructor ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"name":          true,
		"credits":       true,
		"current_grade": true,
		"created_at":    true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", courseColumns, base, sortBy, order, size, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	return courses, total, nil
}

// ListAll returns every course including its schedule, ordered by id so the
// merged grid is stable across calls.
func (r *CourseRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses ORDER BY id ASC", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list all courses: %w", err)
	}
	return courses, nil
}

// FindByID loads a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create stores a new course record. The caller is responsible for having
// allocated the identifier.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	if course.Schedule == nil {
		course.Schedule = models.ScheduleSlots{}
	}

	const query = `INSERT INTO courses (id, name, instructor, credits, semester, color, current_grade, schedule, created_at, updated_at) VALUES (:id, :name, :instructor, :credits, :semester, :color, :current_grade, :schedule, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies a course record.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, instructor = :instructor, credits = :credits, semester = :semester, color = :color, current_grade = :current_grade, schedule = :schedule, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// UpdateSchedule replaces only the schedule column for a course.
func (r *CourseRepository) UpdateSchedule(ctx context.Context, id int64, slots models.ScheduleSlots) error {
	if slots == nil {
		slots = models.ScheduleSlots{}
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE courses SET schedule = $1, updated_at = $2 WHERE id = $3`, slots, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update course schedule: %w", err)
	}
	return nil
}

// UpdateGrade persists the computed current grade for a course.
func (r *CourseRepository) UpdateGrade(ctx context.Context, id int64, grade float64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE courses SET current_grade = $1, updated_at = $2 WHERE id = $3`, grade, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update course grade: %w", err)
	}
	return nil
}

// Delete removes a course by id.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
