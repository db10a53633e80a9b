package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityGetSetToggle(t *testing.T) {
	// Arrange
	availability := NewAvailability(5, 8)

	// Act
	availability.Set(0, 0, true)
	availability.Set(4, 7, true)
	availability.Toggle(2, 3)
	availability.Toggle(4, 7)

	// Assert
	assert.True(t, availability.Get(0, 0))
	assert.True(t, availability.Get(2, 3))
	assert.False(t, availability.Get(4, 7))
	assert.False(t, availability.Get(1, 1))
	assert.Equal(t, 2, availability.Count())
}

func TestFullAvailability(t *testing.T) {
	// Act
	availability := NewFullAvailability(5, 8)

	// Assert
	assert.Equal(t, 40, availability.Count())
	for day := 0; day < 5; day++ {
		for period := 0; period < 8; period++ {
			assert.True(t, availability.Get(day, period))
		}
	}
}

func TestAvailabilityFromMatrix(t *testing.T) {
	t.Run("valid matrix", func(t *testing.T) {
		// Arrange
		matrix := [][]bool{
			{true, false, true},
			{false, false, false},
		}

		// Act
		availability, err := NewAvailabilityFromMatrix(matrix)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, availability.Days())
		assert.Equal(t, 3, availability.PeriodsPerDay())
		assert.True(t, availability.Get(0, 0))
		assert.False(t, availability.Get(0, 1))
		assert.True(t, availability.Get(0, 2))
		assert.Equal(t, 2, availability.Count())
	})

	t.Run("ragged matrix", func(t *testing.T) {
		// Act
		_, err := NewAvailabilityFromMatrix([][]bool{
			{true, true},
			{true},
		})

		// Assert
		assert.Error(t, err)
	})

	t.Run("empty matrix", func(t *testing.T) {
		// Act
		_, err := NewAvailabilityFromMatrix(nil)

		// Assert
		assert.Error(t, err)
	})
}

func TestAvailabilityCloneIsIndependent(t *testing.T) {
	// Arrange
	availability := NewFullAvailability(5, 8)

	// Act
	clone := availability.Clone()
	clone.Set(1, 1, false)

	// Assert
	assert.True(t, availability.Get(1, 1))
	assert.False(t, clone.Get(1, 1))
}

func TestAvailabilityOutOfRangePanics(t *testing.T) {
	// Arrange
	availability := NewAvailability(5, 8)

	// Assert
	assert.Panics(t, func() { availability.Get(5, 0) })
	assert.Panics(t, func() { availability.Get(0, 8) })
	assert.Panics(t, func() { availability.Set(-1, 0, true) })
	assert.Panics(t, func() { availability.Toggle(0, -1) })
	assert.Panics(t, func() { NewAvailability(0, 8) })
}
