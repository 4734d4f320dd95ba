package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGPAEmpty(t *testing.T) {
	assert.Equal(t, 0.0, ComputeGPA(nil))
	assert.Equal(t, 0.0, ComputeGPA([]CreditGrade{}))
}

func TestComputeGPAZeroCredits(t *testing.T) {
	courses := []CreditGrade{{Percentage: 100, Credits: 0}}
	assert.Equal(t, 0.0, ComputeGPA(courses))
}

func TestComputeGPAWeightedAverage(t *testing.T) {
	courses := []CreditGrade{
		{Percentage: 90, Credits: 3},
		{Percentage: 80, Credits: 3},
	}
	// (3.3*3 + 2.3*3) / 6
	assert.InDelta(t, 2.80, ComputeGPA(courses), 0.0001)
}

func TestComputeGPAUnevenCredits(t *testing.T) {
	courses := []CreditGrade{
		{Percentage: 85, Credits: 3},
		{Percentage: 92, Credits: 4},
	}
	// (2.7*3 + 3.7*4) / 7 = 3.2714... -> 3.27
	assert.InDelta(t, 3.27, ComputeGPA(courses), 0.0001)
}

func TestComputeGPAIgnoresZeroCreditEntries(t *testing.T) {
	courses := []CreditGrade{
		{Percentage: 95, Credits: 3},
		{Percentage: 50, Credits: 0},
	}
	assert.InDelta(t, 3.7, ComputeGPA(courses), 0.0001)
}
