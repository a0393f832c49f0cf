package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	tests := []struct {
		name   string
		missed int
		total  int
		want   string
	}{
		{"all answered", 0, 12, "A"},
		{"nine of twelve", 3, 12, "C"},
		{"exactly ninety", 1, 10, "A"},
		{"exactly eighty", 2, 10, "B"},
		{"exactly sixty", 4, 10, "D"},
		{"below sixty", 5, 10, "F"},
		{"none answered", 12, 12, "F"},
		{"no questions", 0, 0, "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Grade(tt.missed, tt.total))
		})
	}
}

func TestGradeForPercentBoundaries(t *testing.T) {
	assert.Equal(t, "A", gradeForPercent(90.0))
	assert.Equal(t, "B", gradeForPercent(89.999))
	assert.Equal(t, "C", gradeForPercent(79.999))
	assert.Equal(t, "F", gradeForPercent(0))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 75.0, Percent(3, 12))
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 100.0, Percent(0, 5))
}
