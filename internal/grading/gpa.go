package grading

import "math"

// CreditGrade pairs a course percentage with its credit weight for GPA
// aggregation.
type CreditGrade struct {
	Percentage float64
	Credits    int
}

// ComputeGPA aggregates courses into a single credit-weighted GPA rounded to
// two decimal places. Returns 0 for an empty input and for a non-empty input
// whose total credits are zero.
func ComputeGPA(courses []CreditGrade) float64 {
	if len(courses) == 0 {
		return 0
	}

	totalCredits := 0
	totalPoints := 0.0
	for _, course := range courses {
		totalCredits += course.Credits
		totalPoints += GradePoints(course.Percentage) * float64(course.Credits)
	}
	if totalCredits == 0 {
		return 0
	}

	return round2(totalPoints / float64(totalCredits))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
