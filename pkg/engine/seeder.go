package engine

import (
	"math/rand"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"stundenplan/pkg/model"
)

// seeder builds complete candidate timetables by greedy-random placement.
// Construction never fails: when no legal slot exists for an occurrence, the
// least-conflicting slot is taken and the conflict is left for the cost
// function to expose. A seeder is read-only after construction and safe to
// share across goroutines; all mutable state lives in placementState.
type seeder struct {
	roster             *model.Roster
	occurrenceTeachers [][]int
}

func newSeeder(roster *model.Roster) *seeder {
	return &seeder{
		roster:             roster,
		occurrenceTeachers: occurrenceTeacherIndices(roster),
	}
}

// placementState tracks per-class slot occupancy and per-lesson day usage
// while a candidate is built or mutated.
type placementState struct {
	classUse  [][]int         // [class][slot] occupancy count
	lessonDay map[[2]int][]int // (class, lesson) -> per-day occurrence count
}

func (s *seeder) newState() *placementState {
	state := &placementState{
		classUse:  make([][]int, len(s.roster.Classes)),
		lessonDay: make(map[[2]int][]int),
	}
	for class := range state.classUse {
		state.classUse[class] = make([]int, s.roster.SlotsPerWeek())
	}
	return state
}

func (s *seeder) stateFrom(timetable *model.Timetable) *placementState {
	state := s.newState()
	for i, occurrence := range s.roster.Occurrences() {
		state.occupy(s.roster, occurrence, timetable.Slot(i))
	}
	return state
}

func (state *placementState) occupy(roster *model.Roster, occurrence model.Occurrence, slot model.Slot) {
	state.classUse[occurrence.Class][slot.Day*roster.PeriodsPerDay+slot.Period]++
	key := [2]int{occurrence.Class, occurrence.Lesson}
	if state.lessonDay[key] == nil {
		state.lessonDay[key] = make([]int, roster.Days)
	}
	state.lessonDay[key][slot.Day]++
}

func (state *placementState) release(roster *model.Roster, occurrence model.Occurrence, slot model.Slot) {
	state.classUse[occurrence.Class][slot.Day*roster.PeriodsPerDay+slot.Period]--
	state.lessonDay[[2]int{occurrence.Class, occurrence.Lesson}][slot.Day]--
}

// seed builds one complete candidate timetable.
func (s *seeder) seed(rng *rand.Rand) *model.Timetable {
	timetable := model.NewTimetable(s.roster)
	state := s.newState()

	for i, occurrence := range s.roster.Occurrences() {
		slot := s.place(i, occurrence, state, rng)
		timetable.SetSlot(i, slot)
		state.occupy(s.roster, occurrence, slot)
	}

	s.repairDays(timetable)
	return timetable
}

// place picks a slot for one occurrence: uniformly among slots that are free
// for the class, inside every involved teacher's availability and on a day
// the lesson does not use yet; the day-spread restriction is dropped first,
// then the whole legality requirement, falling back to the least-conflicting
// slot so placement always terminates.
func (s *seeder) place(i int, occurrence model.Occurrence, state *placementState, rng *rand.Rand) model.Slot {
	roster := s.roster
	dayUse := state.lessonDay[[2]int{occurrence.Class, occurrence.Lesson}]

	for _, spreadDays := range []bool{true, false} {
		legal := make([]model.Slot, 0, roster.SlotsPerWeek())
		for day := 0; day < roster.Days; day++ {
			if spreadDays && dayUse != nil && dayUse[day] > 0 {
				continue
			}
			for period := 0; period < roster.PeriodsPerDay; period++ {
				if state.classUse[occurrence.Class][day*roster.PeriodsPerDay+period] > 0 {
					continue
				}
				if !s.teachersAvailable(i, day, period) {
					continue
				}
				legal = append(legal, model.Slot{Day: day, Period: period})
			}
		}
		if len(legal) > 0 {
			return legal[rng.Intn(len(legal))]
		}
	}

	return s.leastConflicting(i, occurrence, state, rng)
}

func (s *seeder) teachersAvailable(i, day, period int) bool {
	for _, teacher := range s.occurrenceTeachers[i] {
		if !s.roster.Teachers[teacher].Availability.Get(day, period) {
			return false
		}
	}
	return true
}

func (s *seeder) leastConflicting(i int, occurrence model.Occurrence, state *placementState, rng *rand.Rand) model.Slot {
	roster := s.roster
	best := make([]model.Slot, 0)
	bestScore := -1

	for day := 0; day < roster.Days; day++ {
		for period := 0; period < roster.PeriodsPerDay; period++ {
			score := state.classUse[occurrence.Class][day*roster.PeriodsPerDay+period]
			for _, teacher := range s.occurrenceTeachers[i] {
				if !roster.Teachers[teacher].Availability.Get(day, period) {
					score++
				}
			}
			if bestScore < 0 || score < bestScore {
				bestScore = score
				best = best[:0]
			}
			if score == bestScore {
				best = append(best, model.Slot{Day: day, Period: period})
			}
		}
	}

	return best[rng.Intn(len(best))]
}

// repairDays reassigns the periods of each class-day through a maximum
// bipartite matching between that day's occurrences and the day's periods,
// keeping every involved teacher inside their availability where a matching
// exists. Occurrences stay on their day, so the seeded day spread survives.
func (s *seeder) repairDays(timetable *model.Timetable) {
	for class := range s.roster.Classes {
		byDay := make([][]int, s.roster.Days)
		for i, occurrence := range s.roster.Occurrences() {
			if occurrence.Class != class {
				continue
			}
			day := timetable.Slot(i).Day
			byDay[day] = append(byDay[day], i)
		}

		for day, booked := range byDay {
			if len(booked) > 1 {
				s.rematchDay(timetable, day, booked)
			}
		}
	}
}

func (s *seeder) rematchDay(timetable *model.Timetable, day int, booked []int) {
	periods := lo.Range(s.roster.PeriodsPerDay)

	neighbours := func(occurrenceAny any, periodAny any) (bool, error) {
		return s.teachersAvailable(occurrenceAny.(int), day, periodAny.(int)), nil
	}

	graph, err := bipartitegraph.NewBipartiteGraph(lo.ToAnySlice(booked), lo.ToAnySlice(periods), neighbours)
	if err != nil {
		return
	}

	assigned := make([]bool, s.roster.PeriodsPerDay)
	placed := make(map[int]bool, len(booked))
	for _, edge := range graph.LargestMatching() {
		occurrence := booked[edge.Node1]
		period := periods[edge.Node2-len(booked)]
		timetable.SetSlot(occurrence, model.Slot{Day: day, Period: period})
		assigned[period] = true
		placed[occurrence] = true
	}

	// Occurrences the matching could not cover keep a distinct free period
	// when one is left; the remaining class conflicts are the evaluator's
	// concern.
	for _, occurrence := range booked {
		if placed[occurrence] {
			continue
		}
		period := timetable.Slot(occurrence).Period
		if !assigned[period] {
			assigned[period] = true
			continue
		}
		for candidate := 0; candidate < s.roster.PeriodsPerDay; candidate++ {
			if !assigned[candidate] {
				timetable.SetSlot(occurrence, model.Slot{Day: day, Period: candidate})
				assigned[candidate] = true
				break
			}
		}
	}
}
