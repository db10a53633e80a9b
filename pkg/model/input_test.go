package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterJson = `{
	"days": 2,
	"periodsPerDay": 3,
	"teachers": [
		{
			"name": "Gauss",
			"contact": "gauss@school.example",
			"availability": [
				[true, true, false],
				[true, false, false]
			]
		},
		{"name": "Darwin"},
		{"name": "Curie"}
	],
	"classes": [
		{
			"name": "7a",
			"lessons": [
				{"kind": "normal", "subjects": ["Mathematics"], "teachers": ["Gauss"], "periodsPerWeek": 2},
				{"kind": "alternating", "subjects": ["Biology", "Chemistry"], "teachers": ["Darwin", "Curie"], "periodsPerWeek": 1}
			]
		}
	]
}`

func writeInputFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0666))
	return file
}

func TestInputFromJson(t *testing.T) {
	// Arrange
	file := writeInputFile(t, rosterJson)

	// Act
	input, err := InputFromJson(file)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, input.Days)
	assert.Equal(t, 3, input.PeriodsPerDay)
	assert.Len(t, input.Teachers, 3)
	assert.Len(t, input.Classes, 1)
	assert.Equal(t, "gauss@school.example", input.Teachers[0].Contact)
	assert.Equal(t, 2, input.Classes[0].Lessons[0].PeriodsPerWeek)
}

func TestInputToRoster(t *testing.T) {
	// Arrange
	file := writeInputFile(t, rosterJson)
	input, err := InputFromJson(file)
	require.NoError(t, err)

	// Act
	roster, err := input.ToRoster()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, roster.Days)
	assert.Equal(t, 3, roster.PeriodsPerDay)
	assert.Len(t, roster.Occurrences(), 3)

	// Explicit availability is decoded bit by bit
	gauss := roster.Teachers[roster.TeacherIndex("Gauss")]
	assert.True(t, gauss.Availability.Get(0, 0))
	assert.False(t, gauss.Availability.Get(0, 2))
	assert.Equal(t, 3, gauss.Availability.Count())

	// Omitted availability means the whole week
	darwin := roster.Teachers[roster.TeacherIndex("Darwin")]
	assert.Equal(t, 6, darwin.Availability.Count())
}

func TestInputDefaultsToStandardWeek(t *testing.T) {
	// Arrange
	file := writeInputFile(t, `{"teachers": [{"name": "Gauss"}], "classes": []}`)
	input, err := InputFromJson(file)
	require.NoError(t, err)

	// Act
	roster, err := input.ToRoster()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, DefaultDays, roster.Days)
	assert.Equal(t, DefaultPeriodsPerDay, roster.PeriodsPerDay)
}

func TestInputUnknownLessonKind(t *testing.T) {
	// Arrange
	file := writeInputFile(t, `{
		"teachers": [{"name": "Gauss"}],
		"classes": [{"name": "7a", "lessons": [{"kind": "seminar", "subjects": ["Mathematics"], "teachers": ["Gauss"], "periodsPerWeek": 1}]}]
	}`)
	input, err := InputFromJson(file)
	require.NoError(t, err)

	// Act
	_, err = input.ToRoster()

	// Assert
	assert.ErrorContains(t, err, "unknown lesson kind")
}

func TestInputFromJsonMissingFile(t *testing.T) {
	// Act
	_, err := InputFromJson(filepath.Join(t.TempDir(), "missing.json"))

	// Assert
	assert.Error(t, err)
}
