package model

import "fmt"

const (
	DefaultDays          = 5
	DefaultPeriodsPerDay = 8
)

// Availability is a weekly bitmap of the slots a teacher can be booked in,
// one bit per (day, period). Editors replace the whole buffer on change
// instead of mutating it partially, so the engine treats it as immutable.
type Availability struct {
	days          int
	periodsPerDay int
	words         []uint64
}

func NewAvailability(days, periodsPerDay int) *Availability {
	if days <= 0 || periodsPerDay <= 0 {
		panic(fmt.Sprintf("availability dimensions must be positive: %v days, %v periods", days, periodsPerDay))
	}
	bits := days * periodsPerDay
	return &Availability{
		days:          days,
		periodsPerDay: periodsPerDay,
		words:         make([]uint64, (bits+63)/64),
	}
}

// NewFullAvailability returns a bitmap with every slot available.
func NewFullAvailability(days, periodsPerDay int) *Availability {
	availability := NewAvailability(days, periodsPerDay)
	for day := 0; day < days; day++ {
		for period := 0; period < periodsPerDay; period++ {
			availability.Set(day, period, true)
		}
	}
	return availability
}

// NewAvailabilityFromMatrix builds a bitmap from a day-major boolean matrix,
// the representation the surrounding editor application produces.
func NewAvailabilityFromMatrix(matrix [][]bool) (*Availability, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, fmt.Errorf("availability matrix must not be empty")
	}
	availability := NewAvailability(len(matrix), len(matrix[0]))
	for day, row := range matrix {
		if len(row) != availability.periodsPerDay {
			return nil, fmt.Errorf("availability matrix rows must have equal length: row %v has %v columns, expected %v", day, len(row), availability.periodsPerDay)
		}
		for period, available := range row {
			availability.Set(day, period, available)
		}
	}
	return availability, nil
}

func (availability *Availability) Days() int {
	return availability.days
}

func (availability *Availability) PeriodsPerDay() int {
	return availability.periodsPerDay
}

// Get reads the bit for the given slot. Out-of-range coordinates are a
// programming error and panic.
func (availability *Availability) Get(day, period int) bool {
	bit := availability.bit(day, period)
	return availability.words[bit/64]&(1<<(bit%64)) != 0
}

func (availability *Availability) Set(day, period int, available bool) {
	bit := availability.bit(day, period)
	if available {
		availability.words[bit/64] |= 1 << (bit % 64)
	} else {
		availability.words[bit/64] &^= 1 << (bit % 64)
	}
}

func (availability *Availability) Toggle(day, period int) {
	bit := availability.bit(day, period)
	availability.words[bit/64] ^= 1 << (bit % 64)
}

// Count returns the number of available slots in the week.
func (availability *Availability) Count() int {
	count := 0
	for day := 0; day < availability.days; day++ {
		for period := 0; period < availability.periodsPerDay; period++ {
			if availability.Get(day, period) {
				count++
			}
		}
	}
	return count
}

func (availability *Availability) Clone() *Availability {
	words := make([]uint64, len(availability.words))
	copy(words, availability.words)
	return &Availability{
		days:          availability.days,
		periodsPerDay: availability.periodsPerDay,
		words:         words,
	}
}

func (availability *Availability) bit(day, period int) int {
	if day < 0 || day >= availability.days || period < 0 || period >= availability.periodsPerDay {
		panic(fmt.Sprintf("slot (%v, %v) is out of range for a %vx%v availability", day, period, availability.days, availability.periodsPerDay))
	}
	return day*availability.periodsPerDay + period
}
