package models

import "time"

// GradeCategory is a named, weighted grouping of assignments within one course.
// Weight is expressed in percentage points of the final grade; weights for one
// course conventionally sum to 100 but this is not enforced.
type GradeCategory struct {
	ID        int64     `db:"id" json:"id"`
	CourseID  int64     `db:"course_id" json:"course_id"`
	Name      string    `db:"name" json:"name"`
	Weight    float64   `db:"weight" json:"weight"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
