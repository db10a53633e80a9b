package engine

import (
	"math"
	"math/rand"

	"stundenplan/pkg/model"
)

// mutate derives one offspring from a parent by resampling a small number of
// occurrence placements; the resampling breadth is proportional to sigma.
// The parent is never touched: every step reads the current state and writes
// an independent clone.
func (s *seeder) mutate(parent *model.Timetable, sigma float64, rng *rand.Rand) *model.Timetable {
	offspring := parent.Clone()
	state := s.stateFrom(offspring)
	occurrences := s.roster.Occurrences()

	moves := int(math.Round(sigma * float64(len(occurrences))))
	if moves < 1 {
		moves = 1
	}

	for move := 0; move < moves; move++ {
		i := rng.Intn(len(occurrences))
		occurrence := occurrences[i]

		state.release(s.roster, occurrence, offspring.Slot(i))
		slot := s.place(i, occurrence, state, rng)
		offspring.SetSlot(i, slot)
		state.occupy(s.roster, occurrence, slot)
	}

	return offspring
}
