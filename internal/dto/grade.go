package dto

import "github.com/studytrack/studytrack-api/internal/grading"

// CourseGradeResponse exposes the computed grade for one course along with its
// letter equivalent and per-category breakdown.
type CourseGradeResponse struct {
	CourseID     int64                       `json:"course_id"`
	CurrentGrade float64                     `json:"current_grade"`
	LetterGrade  string                      `json:"letter_grade"`
	GradePoints  float64                     `json:"grade_points"`
	Breakdown    []grading.CategoryBreakdown `json:"breakdown"`
}

// GPAResponse exposes the cumulative credit-weighted GPA.
type GPAResponse struct {
	GPA          float64 `json:"gpa"`
	TotalCredits int     `json:"total_credits"`
	CourseCount  int     `json:"course_count"`
}
