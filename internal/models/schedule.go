package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ScheduleSlot is a single weekly occurrence of a course at a fixed day/time.
type ScheduleSlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Location  string `json:"location"`
}

// ScheduleSlots is stored as a JSONB column on the courses table.
type ScheduleSlots []ScheduleSlot

// Value implements driver.Valuer for JSONB persistence.
func (s ScheduleSlots) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB persistence.
func (s *ScheduleSlots) Scan(src interface{}) error {
	if src == nil {
		*s = ScheduleSlots{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported schedule column type %T", src)
	}
	if len(raw) == 0 {
		*s = ScheduleSlots{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// SlotConflict describes a grid cell claimed by more than one course.
type SlotConflict struct {
	Day       string  `json:"day"`
	StartTime string  `json:"start_time"`
	CourseIDs []int64 `json:"course_ids"`
}
