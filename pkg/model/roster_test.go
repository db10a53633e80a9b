package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTeacher(name string) Teacher {
	return Teacher{Name: name, Availability: NewFullAvailability(5, 8)}
}

func TestNewRoster(t *testing.T) {
	t.Run("valid roster", func(t *testing.T) {
		// Arrange
		classes := []Class{{
			Name: "7a",
			Lessons: []Lesson{
				{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 4},
				{Kind: Group, Subjects: []string{"Crafts"}, Teachers: []string{"Morris", "Gauss"}, PeriodsPerWeek: 2},
			},
		}}
		teachers := []Teacher{newTeacher("Gauss"), newTeacher("Morris")}

		// Act
		roster, err := NewRoster(classes, teachers, 5, 8)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 6, len(roster.Occurrences()))
		assert.Equal(t, 6, roster.Classes[0].TotalPeriodsPerWeek())
		assert.Equal(t, 40, roster.SlotsPerWeek())
		assert.Equal(t, 0, roster.TeacherIndex("Gauss"))
		assert.Equal(t, 1, roster.TeacherIndex("Morris"))
	})

	t.Run("duplicate teacher name", func(t *testing.T) {
		// Act
		_, err := NewRoster(nil, []Teacher{newTeacher("Gauss"), newTeacher("Gauss")}, 5, 8)

		// Assert
		assert.ErrorContains(t, err, "duplicate teacher")
	})

	t.Run("duplicate class name", func(t *testing.T) {
		// Arrange
		classes := []Class{{Name: "7a"}, {Name: "7a"}}

		// Act
		_, err := NewRoster(classes, []Teacher{newTeacher("Gauss")}, 5, 8)

		// Assert
		assert.ErrorContains(t, err, "duplicate class")
	})

	t.Run("unknown teacher reference", func(t *testing.T) {
		// Arrange
		classes := []Class{{
			Name:    "7a",
			Lessons: []Lesson{{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Euler"}, PeriodsPerWeek: 1}},
		}}

		// Act
		_, err := NewRoster(classes, []Teacher{newTeacher("Gauss")}, 5, 8)

		// Assert
		assert.ErrorContains(t, err, "unknown teacher")
	})

	t.Run("availability geometry mismatch", func(t *testing.T) {
		// Arrange
		teacher := Teacher{Name: "Gauss", Availability: NewFullAvailability(4, 6)}

		// Act
		_, err := NewRoster(nil, []Teacher{teacher}, 5, 8)

		// Assert
		assert.Error(t, err)
	})

	t.Run("invalid lesson is rejected", func(t *testing.T) {
		// Arrange
		classes := []Class{{
			Name:    "7a",
			Lessons: []Lesson{{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 0}},
		}}

		// Act
		_, err := NewRoster(classes, []Teacher{newTeacher("Gauss")}, 5, 8)

		// Assert
		assert.Error(t, err)
	})
}

func TestRosterOccurrenceOrder(t *testing.T) {
	// Arrange
	classes := []Class{
		{
			Name:    "7a",
			Lessons: []Lesson{{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 2}},
		},
		{
			Name:    "7b",
			Lessons: []Lesson{{Kind: Normal, Subjects: []string{"History"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 1}},
		},
	}

	// Act
	roster, err := NewRoster(classes, []Teacher{newTeacher("Gauss")}, 5, 8)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []Occurrence{
		{Class: 0, Lesson: 0, Index: 0},
		{Class: 0, Lesson: 0, Index: 1},
		{Class: 1, Lesson: 0, Index: 0},
	}, roster.Occurrences())
}

func TestTimetableCloneAndGrid(t *testing.T) {
	// Arrange
	classes := []Class{{
		Name:    "7a",
		Lessons: []Lesson{{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 2}},
	}}
	roster, err := NewRoster(classes, []Teacher{newTeacher("Gauss")}, 5, 8)
	require.NoError(t, err)

	timetable := NewTimetable(roster)
	timetable.SetSlot(0, Slot{Day: 0, Period: 3})
	timetable.SetSlot(1, Slot{Day: 2, Period: 5})

	// Act
	clone := timetable.Clone()
	clone.SetSlot(0, Slot{Day: 4, Period: 0})
	grid := timetable.Grid(roster, 0)

	// Assert
	assert.Equal(t, Slot{Day: 0, Period: 3}, timetable.Slot(0))
	assert.Equal(t, Slot{Day: 4, Period: 0}, clone.Slot(0))
	assert.Equal(t, 0, grid[0][3])
	assert.Equal(t, 1, grid[2][5])
	assert.Equal(t, -1, grid[1][0])
}

func TestTimetableSetSlotOutOfRangePanics(t *testing.T) {
	// Arrange
	classes := []Class{{
		Name:    "7a",
		Lessons: []Lesson{{Kind: Normal, Subjects: []string{"Mathematics"}, Teachers: []string{"Gauss"}, PeriodsPerWeek: 1}},
	}}
	roster, err := NewRoster(classes, []Teacher{newTeacher("Gauss")}, 5, 8)
	require.NoError(t, err)
	timetable := NewTimetable(roster)

	// Assert
	assert.Panics(t, func() { timetable.SetSlot(0, Slot{Day: 5, Period: 0}) })
	assert.Panics(t, func() { timetable.SetSlot(0, Slot{Day: 0, Period: 8}) })
}
