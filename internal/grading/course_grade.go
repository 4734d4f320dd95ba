package grading

import "github.com/studytrack/studytrack-api/internal/models"

// CategoryBreakdown summarises one grading category for the breakdown view.
type CategoryBreakdown struct {
	CategoryID   int64   `json:"category_id"`
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`
	Average      float64 `json:"average"`
	GradedCount  int     `json:"graded_count"`
	TotalCount   int     `json:"total_count"`
	Contributing bool    `json:"contributing"`
}

// CategoryAverage computes the mean score of graded assignments in the given
// category. An assignment is graded only when it has earned points above zero;
// with no graded assignments the average is 0.
func CategoryAverage(assignments []models.Assignment, categoryID int64) float64 {
	total := 0.0
	graded := 0
	for _, a := range assignments {
		if a.CategoryID != categoryID || a.PointsEarned <= 0 {
			continue
		}
		total += a.PointsEarned / a.MaxPoints * 100
		graded++
	}
	if graded == 0 {
		return 0
	}
	return total / float64(graded)
}

// CourseGrade computes the category-weighted percentage for one course.
//
// Categories with no matching assignments contribute neither score nor weight,
// so the result renormalises against the populated categories only instead of
// penalising for empty ones. Presence of any assignment (graded or not) is what
// gates a category into the weighting; CategoryAverage still only scores the
// graded subset. Returns 0 when no category carries weight.
func CourseGrade(assignments []models.Assignment, categories []models.GradeCategory) float64 {
	weightedScore := 0.0
	weightTotal := 0.0
	for _, category := range categories {
		matching := 0
		for _, a := range assignments {
			if a.CategoryID == category.ID {
				matching++
			}
		}
		if matching == 0 {
			continue
		}
		weightedScore += CategoryAverage(assignments, category.ID) * (category.Weight / 100)
		weightTotal += category.Weight / 100
	}
	if weightTotal <= 0 {
		return 0
	}
	return weightedScore / weightTotal
}

// Breakdown expands CourseGrade into per-category detail for rendering.
func Breakdown(assignments []models.Assignment, categories []models.GradeCategory) []CategoryBreakdown {
	result := make([]CategoryBreakdown, 0, len(categories))
	for _, category := range categories {
		matching := 0
		graded := 0
		for _, a := range assignments {
			if a.CategoryID != category.ID {
				continue
			}
			matching++
			if a.PointsEarned > 0 {
				graded++
			}
		}
		result = append(result, CategoryBreakdown{
			CategoryID:   category.ID,
			Name:         category.Name,
			Weight:       category.Weight,
			Average:      CategoryAverage(assignments, category.ID),
			GradedCount:  graded,
			TotalCount:   matching,
			Contributing: matching > 0,
		})
	}
	return result
}

// ClampPercentage bounds a computed grade to [0, 100] before it is persisted.
func ClampPercentage(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
