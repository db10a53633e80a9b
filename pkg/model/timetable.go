package model

import "fmt"

// Slot is a (day, period) coordinate in the weekly grid.
type Slot struct {
	Day    int
	Period int
}

func (slot Slot) String() string {
	return fmt.Sprintf("day %v period %v", slot.Day, slot.Period)
}

// Timetable assigns one slot to every occurrence of the roster, parallel to
// Roster.Occurrences. It is complete by construction: a lesson requiring N
// periods per week always holds exactly N placements, so infeasibility shows
// up as conflicting slots, never as missing ones. The scheduler owns a
// timetable exclusively during search and the returned result must be treated
// as immutable.
type Timetable struct {
	days          int
	periodsPerDay int
	slots         []Slot
}

func NewTimetable(roster *Roster) *Timetable {
	return &Timetable{
		days:          roster.Days,
		periodsPerDay: roster.PeriodsPerDay,
		slots:         make([]Slot, len(roster.Occurrences())),
	}
}

func (timetable *Timetable) Days() int {
	return timetable.days
}

func (timetable *Timetable) PeriodsPerDay() int {
	return timetable.periodsPerDay
}

// Slot returns the placement of the i-th occurrence.
func (timetable *Timetable) Slot(occurrence int) Slot {
	return timetable.slots[occurrence]
}

func (timetable *Timetable) SetSlot(occurrence int, slot Slot) {
	if slot.Day < 0 || slot.Day >= timetable.days || slot.Period < 0 || slot.Period >= timetable.periodsPerDay {
		panic(fmt.Sprintf("slot (%v, %v) is out of range for a %vx%v timetable", slot.Day, slot.Period, timetable.days, timetable.periodsPerDay))
	}
	timetable.slots[occurrence] = slot
}

func (timetable *Timetable) Len() int {
	return len(timetable.slots)
}

func (timetable *Timetable) Clone() *Timetable {
	slots := make([]Slot, len(timetable.slots))
	copy(slots, timetable.slots)
	return &Timetable{
		days:          timetable.days,
		periodsPerDay: timetable.periodsPerDay,
		slots:         slots,
	}
}

// Grid materializes the per-class (day x period) view of the timetable. Each
// cell holds the index into Roster.Occurrences of the occurrence booked there,
// or -1 when the cell is free. Conflicting placements keep the last
// occurrence written; conflict detection belongs to the evaluator.
func (timetable *Timetable) Grid(roster *Roster, class int) [][]int {
	grid := make([][]int, timetable.days)
	for day := range grid {
		grid[day] = make([]int, timetable.periodsPerDay)
		for period := range grid[day] {
			grid[day][period] = -1
		}
	}

	for i, occurrence := range roster.Occurrences() {
		if occurrence.Class != class {
			continue
		}
		slot := timetable.slots[i]
		grid[slot.Day][slot.Period] = i
	}

	return grid
}
