package dto

import (
	"time"

	"github.com/studytrack/studytrack-api/internal/models"
)

// UpcomingAssignment decorates an assignment with course context and urgency
// metadata for the dashboard list.
type UpcomingAssignment struct {
	ID         int64                     `json:"id"`
	CourseID   int64                     `json:"course_id"`
	CourseName string                    `json:"course_name"`
	Color      string                    `json:"color"`
	Title      string                    `json:"title"`
	DueDate    time.Time                 `json:"due_date"`
	Priority   models.AssignmentPriority `json:"priority"`
	Urgency    string                    `json:"urgency"`
	ColorTier  string                    `json:"color_tier"`
	DueLabel   string                    `json:"due_label"`
}

// DashboardSummary is the aggregate payload backing the landing view.
type DashboardSummary struct {
	GPA                  float64              `json:"gpa"`
	TotalCredits         int                  `json:"total_credits"`
	CourseCount          int                  `json:"course_count"`
	PendingAssignments   int                  `json:"pending_assignments"`
	CompletedAssignments int                  `json:"completed_assignments"`
	OverdueCount         int                  `json:"overdue_count"`
	Upcoming             []UpcomingAssignment `json:"upcoming"`
	GeneratedAt          time.Time            `json:"generated_at"`
}
