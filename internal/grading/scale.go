package grading

// scaleStep maps a minimum percentage to its letter and grade-point value.
// Steps are evaluated top-down; the first threshold at or below the input wins.
type scaleStep struct {
	min    float64
	letter string
	points float64
}

var scale = []scaleStep{
	{97, "A+", 4.0},
	{93, "A", 3.7},
	{90, "A-", 3.3},
	{87, "B+", 3.0},
	{83, "B", 2.7},
	{80, "B-", 2.3},
	{77, "C+", 2.0},
	{73, "C", 1.7},
	{70, "C-", 1.3},
	{67, "D+", 1.0},
	{65, "D", 0.7},
}

// LetterGrade maps a percentage to its letter grade. Out-of-range input is not
// rejected: anything below 65 is an F and anything at or above 97 is an A+.
func LetterGrade(percentage float64) string {
	for _, step := range scale {
		if percentage >= step.min {
			return step.letter
		}
	}
	return "F"
}

// GradePoints maps a percentage to its 4.0-scale grade-point value using the
// same partition as LetterGrade.
func GradePoints(percentage float64) float64 {
	for _, step := range scale {
		if percentage >= step.min {
			return step.points
		}
	}
	return 0.0
}
