package models

import "time"

// AssignmentPriority labels the urgency a student assigned to a task.
type AssignmentPriority string

const (
	PriorityLow    AssignmentPriority = "LOW"
	PriorityMedium AssignmentPriority = "MEDIUM"
	PriorityHigh   AssignmentPriority = "HIGH"
)

// Assignment represents a single piece of coursework tied to a course.
//
// PointsEarned of 0 means "not yet graded"; the aggregation layer only treats
// an assignment as graded when PointsEarned > 0.
type Assignment struct {
	ID           int64              `db:"id" json:"id"`
	CourseID     int64              `db:"course_id" json:"course_id"`
	CategoryID   int64              `db:"category_id" json:"category_id"`
	Title        string             `db:"title" json:"title"`
	Description  string             `db:"description" json:"description"`
	DueDate      time.Time          `db:"due_date" json:"due_date"`
	Priority     AssignmentPriority `db:"priority" json:"priority"`
	Completed    bool               `db:"completed" json:"completed"`
	PointsEarned float64            `db:"points_earned" json:"points_earned"`
	MaxPoints    float64            `db:"max_points" json:"max_points"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
}

// AssignmentFilter describes query params for listing assignments.
type AssignmentFilter struct {
	CourseID   int64
	CategoryID int64
	Completed  *bool
	Priority   AssignmentPriority
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
