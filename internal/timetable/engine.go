package timetable

import (
	"fmt"
	"sort"
	"time"

	"github.com/studytrack/studytrack-api/internal/models"
)

// Days is the fixed ordered set of weekdays the grid spans.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimeSlots is the fixed 30-minute grid from 8:00 AM through 6:00 PM.
var TimeSlots = []string{
	"8:00 AM", "8:30 AM", "9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM",
	"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM", "4:00 PM", "4:30 PM",
	"5:00 PM", "5:30 PM", "6:00 PM",
}

const clockLayout = "3:04 PM"

var (
	daySet  = toSet(Days)
	timeSet = toSet(TimeSlots)
)

// GridEntry is one occupied cell of the merged weekly grid.
type GridEntry struct {
	CourseID   int64               `json:"course_id"`
	CourseName string              `json:"course_name"`
	Color      string              `json:"color"`
	Slot       models.ScheduleSlot `json:"slot"`
}

// Summary aggregates headline numbers for the schedule view.
type Summary struct {
	TotalCredits   int     `json:"total_credits"`
	ScheduledCount int     `json:"scheduled_count"`
	AverageGrade   float64 `json:"average_grade"`
}

// CellKey builds the grid key for a (day, start time) pair.
func CellKey(day, startTime string) string {
	return day + "|" + startTime
}

// ValidDay reports whether day is one of the five weekday names.
func ValidDay(day string) bool {
	_, ok := daySet[day]
	return ok
}

// ValidStartTime reports whether startTime sits on the fixed 30-minute grid.
func ValidStartTime(startTime string) bool {
	_, ok := timeSet[startTime]
	return ok
}

// AddOrReplaceSlot upserts a slot keyed on (day, start time) and returns the
// new slot set. Re-inserting an identical slot is idempotent; replacing an
// existing entry is not an error.
func AddOrReplaceSlot(slots models.ScheduleSlots, slot models.ScheduleSlot) models.ScheduleSlots {
	next := make(models.ScheduleSlots, 0, len(slots)+1)
	for _, existing := range slots {
		if existing.Day == slot.Day && existing.StartTime == slot.StartTime {
			continue
		}
		next = append(next, existing)
	}
	return append(next, slot)
}

// RemoveSlot drops the entry matching (day, start time) exactly. Removing an
// absent slot returns the input set unchanged.
func RemoveSlot(slots models.ScheduleSlots, day, startTime string) models.ScheduleSlots {
	next := make(models.ScheduleSlots, 0, len(slots))
	for _, existing := range slots {
		if existing.Day == day && existing.StartTime == startTime {
			continue
		}
		next = append(next, existing)
	}
	return next
}

// FindSlot returns the slot at (day, start time) if present.
func FindSlot(slots models.ScheduleSlots, day, startTime string) (models.ScheduleSlot, bool) {
	for _, slot := range slots {
		if slot.Day == day && slot.StartTime == startTime {
			return slot, true
		}
	}
	return models.ScheduleSlot{}, false
}

// MergedGrid flattens all courses' slot sets into one grid keyed by cell.
//
// Courses are visited in ascending ID order so the result is deterministic:
// when two courses claim the same cell the higher ID occupies it for
// rendering, and every contested cell is reported in the conflict list so the
// caller can surface it rather than silently dropping a claim.
func MergedGrid(courses []models.Course) (map[string]GridEntry, []models.SlotConflict) {
	ordered := make([]models.Course, len(courses))
	copy(ordered, courses)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	grid := make(map[string]GridEntry)
	claims := make(map[string][]int64)
	for _, course := range ordered {
		for _, slot := range course.Schedule {
			key := CellKey(slot.Day, slot.StartTime)
			grid[key] = GridEntry{
				CourseID:   course.ID,
				CourseName: course.Name,
				Color:      course.Color,
				Slot:       slot,
			}
			claims[key] = append(claims[key], course.ID)
		}
	}

	var conflicts []models.SlotConflict
	for _, course := range ordered {
		for _, slot := range course.Schedule {
			key := CellKey(slot.Day, slot.StartTime)
			ids := claims[key]
			if len(ids) > 1 {
				conflicts = append(conflicts, models.SlotConflict{
					Day:       slot.Day,
					StartTime: slot.StartTime,
					CourseIDs: ids,
				})
				delete(claims, key)
			}
		}
	}
	return grid, conflicts
}

// Summarise computes headline totals over courses and an already-merged grid.
// AverageGrade is the unweighted mean of current grades, 0 with no courses.
func Summarise(courses []models.Course, grid map[string]GridEntry) Summary {
	summary := Summary{ScheduledCount: len(grid)}
	if len(courses) == 0 {
		return summary
	}
	gradeTotal := 0.0
	for _, course := range courses {
		summary.TotalCredits += course.Credits
		gradeTotal += course.CurrentGrade
	}
	summary.AverageGrade = gradeTotal / float64(len(courses))
	return summary
}

// FormatTimeRange renders "9:00 AM - 10:30 AM" for display. It is not used
// for conflict detection, which stays keyed on slot equality.
func FormatTimeRange(startTime string, durationMinutes int) (string, error) {
	start, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return "", fmt.Errorf("parse start time %q: %w", startTime, err)
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return fmt.Sprintf("%s - %s", startTime, end.Format(clockLayout)), nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
