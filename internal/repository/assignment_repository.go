package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studytrack/studytrack-api/internal/models"
)

const assignmentColumns = "id, course_id, category_id, title, description, due_date, priority, completed, points_earned, max_points, created_at, updated_at"

// AssignmentRepository provides persistence for assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns assignments with optional filtering and pagination.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, int, error) {
	base := "FROM assignments WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.CourseID != 0 {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.CategoryID != 0 {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)+1))
		args = append(args, filter.CategoryID)
	}
	if filter.Completed != nil {
		conditions = append(conditions, fmt.Sprintf("completed = $%d", len(args)+1))
		args = append(args, *filter.Completed)
	}
	if filter.Priority != "" {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)+1))
		args = append(args, filter.Priority)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"due_date":   true,
		"title":      true,
		"priority":   true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "due_date"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", assignmentColumns, base, sortBy, order, size, offset)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list assignments: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count assignments: %w", err)
	}

	return assignments, total, nil
}

// ListByCourse returns every assignment for a course ordered by due date.
func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments WHERE course_id = $1 ORDER BY due_date ASC", assignmentColumns)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, courseID); err != nil {
		return nil, fmt.Errorf("list assignments by course: %w", err)
	}
	return assignments, nil
}

// ListAll returns every assignment ordered by due date.
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]models.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments ORDER BY due_date ASC", assignmentColumns)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list all assignments: %w", err)
	}
	return assignments, nil
}

// FindByID loads an assignment by id.
func (r *AssignmentRepository) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := fmt.Sprintf("SELECT %s FROM assignments WHERE id = $1", assignmentColumns)
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create stores a new assignment record with a caller-allocated identifier.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	now := time.Now().UTC()
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = now
	}
	assignment.UpdatedAt = now

	const query = `INSERT INTO assignments (id, course_id, category_id, title, description, due_date, priority, completed, points_earned, max_points, created_at, updated_at) VALUES (:id, :course_id, :category_id, :title, :description, :due_date, :priority, :completed, :points_earned, :max_points, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update modifies an assignment record.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	assignment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assignments SET course_id = :course_id, category_id = :category_id, title = :title, description = :description, due_date = :due_date, priority = :priority, completed = :completed, points_earned = :points_earned, max_points = :max_points, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment by id.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
