package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/studytrack/studytrack-api/internal/models"
)

const categoryColumns = "id, course_id, name, weight, created_at, updated_at"

// CategoryRepository provides persistence for grade categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new grade category repository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListAll returns every grade category.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]models.GradeCategory, error) {
	query := fmt.Sprintf("SELECT %s FROM grade_categories ORDER BY course_id ASC, weight DESC", categoryColumns)
	var categories []models.GradeCategory
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list grade categories: %w", err)
	}
	return categories, nil
}

// ListByCourse returns grade categories for one course, heaviest first.
func (r *CategoryRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.GradeCategory, error) {
	query := fmt.Sprintf("SELECT %s FROM grade_categories WHERE course_id = $1 ORDER BY weight DESC", categoryColumns)
	var categories []models.GradeCategory
	if err := r.db.SelectContext(ctx, &categories, query, courseID); err != nil {
		return nil, fmt.Errorf("list grade categories by course: %w", err)
	}
	return categories, nil
}

// FindByID loads a grade category by id.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.GradeCategory, error) {
	query := fmt.Sprintf("SELECT %s FROM grade_categories WHERE id = $1", categoryColumns)
	var category models.GradeCategory
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, err
	}
	return &category, nil
}

// Create stores a new grade category with a caller-allocated identifier.
func (r *CategoryRepository) Create(ctx context.Context, category *models.GradeCategory) error {
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	const query = `INSERT INTO grade_categories (id, course_id, name, weight, created_at, updated_at) VALUES (:id, :course_id, :name, :weight, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("create grade category: %w", err)
	}
	return nil
}

// Update modifies a grade category record.
func (r *CategoryRepository) Update(ctx context.Context, category *models.GradeCategory) error {
	category.UpdatedAt = time.Now().UTC()
	const query = `UPDATE grade_categories SET course_id = :course_id, name = :name, weight = :weight, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("update grade category: %w", err)
	}
	return nil
}

// Delete removes a grade category by id.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM grade_categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete grade category: %w", err)
	}
	return nil
}
