package models

import "time"

// Course represents an academic unit with a computed grade and credit weight.
type Course struct {
	ID           int64         `db:"id" json:"id"`
	Name         string        `db:"name" json:"name"`
	Instructor   string        `db:"instructor" json:"instructor"`
	Credits      int           `db:"credits" json:"credits"`
	Semester     string        `db:"semester" json:"semester"`
	Color        string        `db:"color" json:"color"`
	CurrentGrade float64       `db:"current_grade" json:"current_grade"`
	Schedule     ScheduleSlots `db:"schedule" json:"schedule"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// CourseFilter describes query params for listing courses.
type CourseFilter struct {
	Semester  string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
