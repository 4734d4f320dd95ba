package dto

import (
	"github.com/studytrack/studytrack-api/internal/models"
	"github.com/studytrack/studytrack-api/internal/timetable"
)

// TimetableResponse carries the merged weekly grid plus the axes needed to
// render it and any contested cells.
type TimetableResponse struct {
	Days      []string                       `json:"days"`
	TimeSlots []string                       `json:"time_slots"`
	Grid      map[string]timetable.GridEntry `json:"grid"`
	Conflicts []models.SlotConflict          `json:"conflicts"`
	Summary   timetable.Summary              `json:"summary"`
}

// DisplacedSlot records a slot that was bumped from another course when a new
// claim was written over the same cell.
type DisplacedSlot struct {
	CourseID   int64               `json:"course_id"`
	CourseName string              `json:"course_name"`
	Slot       models.ScheduleSlot `json:"slot"`
}

// PlaceSlotResult reports the updated schedule and, when the write took over a
// cell held by another course, which slot was displaced.
type PlaceSlotResult struct {
	Schedule  models.ScheduleSlots `json:"schedule"`
	Displaced *DisplacedSlot       `json:"displaced,omitempty"`
}
