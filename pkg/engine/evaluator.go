package engine

import (
	"github.com/samber/lo"

	"stundenplan/pkg/model"
)

const (
	// A single hard violation outweighs any attainable soft total, so a
	// hard-violating timetable always ranks below a hard-clean one.
	hardViolationWeight = 1000.0

	gapWeight          = 2.0
	balanceWeight      = 1.0
	repeatWeight       = 3.0
	pairedRepeatWeight = 6.0

	// costEpsilon bounds the soft cost considered negligible when deciding
	// whether refinement can stop early.
	costEpsilon = 1e-9
)

// Evaluator computes a scalar cost for a timetable: a pure, deterministic
// function of its inputs. Hard-constraint violations dominate the soft
// quality penalties used to rank hard-clean timetables among each other.
type Evaluator interface {
	Evaluate(timetable *model.Timetable) float64
	Violations(timetable *model.Timetable) []Violation
}

func NewEvaluator(roster *model.Roster) Evaluator {
	return newCostEvaluator(roster)
}

type costEvaluator struct {
	roster *model.Roster

	// occurrenceTeachers holds, per occurrence, the indices of every
	// teacher occupying its slot, unified across lesson variants.
	occurrenceTeachers [][]int
}

func newCostEvaluator(roster *model.Roster) *costEvaluator {
	return &costEvaluator{
		roster:             roster,
		occurrenceTeachers: occurrenceTeacherIndices(roster),
	}
}

func occurrenceTeacherIndices(roster *model.Roster) [][]int {
	occurrences := roster.Occurrences()
	indices := make([][]int, len(occurrences))
	for i, occurrence := range occurrences {
		lesson := roster.Lesson(occurrence)
		indices[i] = lo.Map(lesson.TeacherNames(), func(name string, _ int) int {
			return roster.TeacherIndex(name)
		})
	}
	return indices
}

func (evaluator *costEvaluator) Evaluate(timetable *model.Timetable) float64 {
	roster := evaluator.roster
	days, periodsPerDay := roster.Days, roster.PeriodsPerDay
	slotsPerWeek := roster.SlotsPerWeek()

	classUse := make([][]uint8, len(roster.Classes))
	for class := range classUse {
		classUse[class] = make([]uint8, slotsPerWeek)
	}
	teacherUse := make([][]uint8, len(roster.Teachers))
	for teacher := range teacherUse {
		teacherUse[teacher] = make([]uint8, slotsPerWeek)
	}

	hard := 0
	for i := range roster.Occurrences() {
		slot := timetable.Slot(i)
		index := slot.Day*periodsPerDay + slot.Period

		occurrence := roster.Occurrences()[i]
		if classUse[occurrence.Class][index] > 0 {
			hard++ // Class double-booked
		}
		classUse[occurrence.Class][index]++

		for _, teacher := range evaluator.occurrenceTeachers[i] {
			if teacherUse[teacher][index] > 0 {
				hard++ // Teacher double-booked
			}
			teacherUse[teacher][index]++

			if !roster.Teachers[teacher].Availability.Get(slot.Day, slot.Period) {
				hard++ // Teacher booked outside availability
			}
		}
	}

	soft := 0.0

	// Teacher gaps and per-day load balance
	for teacher := range roster.Teachers {
		soft += gapWeight * float64(dailyGaps(teacherUse[teacher], days, periodsPerDay))
		soft += balanceWeight * float64(dailyOverload(teacherUse[teacher], days, periodsPerDay))
	}

	// Class per-day load balance
	for class := range roster.Classes {
		soft += balanceWeight * float64(dailyOverload(classUse[class], days, periodsPerDay))
	}

	// Same-lesson repeats on one day, penalized only when avoidable.
	// Alternating and group lessons weigh double: their single weekly slot
	// must stay consistent across both rotation phases, so clustering them
	// hurts twice.
	soft += evaluator.repeatPenalty(timetable)

	return float64(hard)*hardViolationWeight + soft
}

func (evaluator *costEvaluator) repeatPenalty(timetable *model.Timetable) float64 {
	roster := evaluator.roster
	occurrences := roster.Occurrences()
	penalty := 0.0

	// Occurrences of one lesson are contiguous in roster order.
	for start := 0; start < len(occurrences); {
		occurrence := occurrences[start]
		lesson := roster.Lesson(occurrence)
		end := start + lesson.PeriodsPerWeek

		if lesson.PeriodsPerWeek <= roster.Days {
			perDay := make([]int, roster.Days)
			for i := start; i < end; i++ {
				perDay[timetable.Slot(i).Day]++
			}
			weight := repeatWeight
			if lesson.Kind != model.Normal {
				weight = pairedRepeatWeight
			}
			for _, count := range perDay {
				if count > 1 {
					penalty += weight * float64(count-1)
				}
			}
		}

		start = end
	}

	return penalty
}

// dailyGaps counts idle periods strictly between the first and last booked
// period of each day.
func dailyGaps(use []uint8, days, periodsPerDay int) int {
	gaps := 0
	for day := 0; day < days; day++ {
		first, last, booked := -1, -1, 0
		for period := 0; period < periodsPerDay; period++ {
			if use[day*periodsPerDay+period] == 0 {
				continue
			}
			if first < 0 {
				first = period
			}
			last = period
			booked++
		}
		if booked > 1 {
			gaps += last - first + 1 - booked
		}
	}
	return gaps
}

// dailyOverload measures how far each day's booked-period count exceeds an
// even distribution of the weekly total across days.
func dailyOverload(use []uint8, days, periodsPerDay int) int {
	counts := make([]int, days)
	total := 0
	for day := 0; day < days; day++ {
		for period := 0; period < periodsPerDay; period++ {
			if use[day*periodsPerDay+period] > 0 {
				counts[day]++
				total++
			}
		}
	}
	if total == 0 {
		return 0
	}

	ceiling := (total + days - 1) / days
	overload := 0
	for _, count := range counts {
		if count > ceiling {
			overload += count - ceiling
		}
	}
	return overload
}

func (evaluator *costEvaluator) Violations(timetable *model.Timetable) []Violation {
	roster := evaluator.roster
	periodsPerDay := roster.PeriodsPerDay
	slotsPerWeek := roster.SlotsPerWeek()
	occurrences := roster.Occurrences()

	classBookings := make([][][]int, len(roster.Classes))
	for class := range classBookings {
		classBookings[class] = make([][]int, slotsPerWeek)
	}
	teacherBookings := make([][][]int, len(roster.Teachers))
	for teacher := range teacherBookings {
		teacherBookings[teacher] = make([][]int, slotsPerWeek)
	}

	for i := range occurrences {
		slot := timetable.Slot(i)
		index := slot.Day*periodsPerDay + slot.Period
		classBookings[occurrences[i].Class][index] = append(classBookings[occurrences[i].Class][index], i)
		for _, teacher := range evaluator.occurrenceTeachers[i] {
			teacherBookings[teacher][index] = append(teacherBookings[teacher][index], i)
		}
	}

	violations := make([]Violation, 0)

	for teacher := range roster.Teachers {
		for index, booked := range teacherBookings[teacher] {
			if len(booked) < 2 {
				continue
			}
			violations = append(violations, Violation{
				Kind:     TeacherConflict,
				Teacher:  roster.Teachers[teacher].Name,
				Classes:  lo.Uniq(evaluator.classNames(booked)),
				Subjects: lo.Uniq(evaluator.subjects(booked)),
				Slot:     model.Slot{Day: index / periodsPerDay, Period: index % periodsPerDay},
			})
		}
	}

	for class := range roster.Classes {
		for index, booked := range classBookings[class] {
			if len(booked) < 2 {
				continue
			}
			violations = append(violations, Violation{
				Kind:     ClassConflict,
				Classes:  []string{roster.Classes[class].Name},
				Subjects: lo.Uniq(evaluator.subjects(booked)),
				Slot:     model.Slot{Day: index / periodsPerDay, Period: index % periodsPerDay},
			})
		}
	}

	for i := range occurrences {
		slot := timetable.Slot(i)
		lesson := roster.Lesson(occurrences[i])
		for _, teacher := range evaluator.occurrenceTeachers[i] {
			if roster.Teachers[teacher].Availability.Get(slot.Day, slot.Period) {
				continue
			}
			violations = append(violations, Violation{
				Kind:     TeacherUnavailable,
				Teacher:  roster.Teachers[teacher].Name,
				Classes:  []string{roster.Classes[occurrences[i].Class].Name},
				Subjects: []string{lesson.Subject()},
				Slot:     slot,
			})
		}
	}

	return violations
}

func (evaluator *costEvaluator) classNames(booked []int) []string {
	occurrences := evaluator.roster.Occurrences()
	return lo.Map(booked, func(i int, _ int) string {
		return evaluator.roster.Classes[occurrences[i].Class].Name
	})
}

func (evaluator *costEvaluator) subjects(booked []int) []string {
	occurrences := evaluator.roster.Occurrences()
	return lo.Map(booked, func(i int, _ int) string {
		return evaluator.roster.Lesson(occurrences[i]).Subject()
	})
}
