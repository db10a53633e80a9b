package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLessonValidate(t *testing.T) {
	scenarios := []struct {
		name   string
		lesson Lesson
		valid  bool
	}{
		{
			name:   "valid normal lesson",
			lesson: Lesson{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 4},
			valid:  true,
		},
		{
			name:   "valid alternating lesson",
			lesson: Lesson{Kind: Alternating, Subjects: []string{"Biology", "Chemistry"}, Teachers: []string{"Darwin", "Curie"}, PeriodsPerWeek: 1},
			valid:  true,
		},
		{
			name:   "valid group lesson",
			lesson: Lesson{Kind: Group, Subjects: []string{"Crafts"}, Teachers: []string{"Morris", "Ruskin"}, PeriodsPerWeek: 2},
			valid:  true,
		},
		{
			name:   "zero periods per week",
			lesson: Lesson{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 0},
			valid:  false,
		},
		{
			name:   "normal lesson with two teachers",
			lesson: Lesson{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss", "Euler"}, PeriodsPerWeek: 1},
			valid:  false,
		},
		{
			name:   "alternating lesson with one subject",
			lesson: Lesson{Kind: Alternating, Subjects: []string{"Biology"}, Teachers: []string{"Darwin", "Curie"}, PeriodsPerWeek: 1},
			valid:  false,
		},
		{
			name:   "alternating lesson with identical teachers",
			lesson: Lesson{Kind: Alternating, Subjects: []string{"Biology", "Chemistry"}, Teachers: []string{"Darwin", "Darwin"}, PeriodsPerWeek: 1},
			valid:  false,
		},
		{
			name:   "group lesson with identical teachers",
			lesson: Lesson{Kind: Group, Subjects: []string{"Crafts"}, Teachers: []string{"Morris", "Morris"}, PeriodsPerWeek: 1},
			valid:  false,
		},
		{
			name:   "empty teacher reference",
			lesson: Lesson{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{""}, PeriodsPerWeek: 1},
			valid:  false,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			// Act
			err := scenario.lesson.Validate()

			// Assert
			if scenario.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLessonTeacherNames(t *testing.T) {
	// Arrange
	normal := Lesson{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 1}
	alternating := Lesson{Kind: Alternating, Subjects: []string{"Biology", "Chemistry"}, Teachers: []string{"Darwin", "Curie"}, PeriodsPerWeek: 1}
	group := Lesson{Kind: Group, Subjects: []string{"Crafts"}, Teachers: []string{"Morris", "Ruskin"}, PeriodsPerWeek: 1}

	// Assert
	assert.Equal(t, []string{"Gauss"}, normal.TeacherNames())
	assert.Equal(t, []string{"Darwin", "Curie"}, alternating.TeacherNames())
	assert.Equal(t, []string{"Morris", "Ruskin"}, group.TeacherNames())
}

func TestLessonSubject(t *testing.T) {
	// Arrange
	normal := Lesson{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 1}
	alternating := Lesson{Kind: Alternating, Subjects: []string{"Biology", "Chemistry"}, Teachers: []string{"Darwin", "Curie"}, PeriodsPerWeek: 1}

	// Assert
	assert.Equal(t, "Mathematics", normal.Subject())
	assert.Equal(t, "Biology/Chemistry", alternating.Subject())
}
