package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Teacher's name is its natural key: two teachers are the same scheduling
// subject if and only if their names match.
type Teacher struct {
	Name         string
	Contact      string
	Availability *Availability
}

type Class struct {
	Name    string
	Lessons []Lesson
}

func (class Class) TotalPeriodsPerWeek() int {
	return lo.SumBy(class.Lessons, func(lesson Lesson) int { return lesson.PeriodsPerWeek })
}

// Occurrence identifies one concrete weekly placement of a lesson: a lesson
// with PeriodsPerWeek=N contributes N occurrences with indices 0..N-1.
type Occurrence struct {
	Class  int
	Lesson int
	Index  int
}

// Roster is the full collection of classes and teachers handed to the engine,
// together with the week geometry. References are resolved by teacher name at
// construction time; the roster never holds back-references into caller-owned
// collections.
type Roster struct {
	Classes       []Class
	Teachers      []Teacher
	Days          int
	PeriodsPerDay int

	teacherIndex map[string]int
	occurrences  []Occurrence
}

func NewRoster(classes []Class, teachers []Teacher, days, periodsPerDay int) (*Roster, error) {
	if days <= 0 || periodsPerDay <= 0 {
		return nil, fmt.Errorf("week geometry must be positive: %v days, %v periods per day", days, periodsPerDay)
	}

	roster := &Roster{
		Classes:       classes,
		Teachers:      teachers,
		Days:          days,
		PeriodsPerDay: periodsPerDay,
		teacherIndex:  make(map[string]int, len(teachers)),
	}

	for i, teacher := range teachers {
		if teacher.Name == "" {
			return nil, fmt.Errorf("teacher %v has an empty name", i)
		}
		if _, ok := roster.teacherIndex[teacher.Name]; ok {
			return nil, fmt.Errorf("duplicate teacher name: %v", teacher.Name)
		}
		if teacher.Availability == nil {
			return nil, fmt.Errorf("teacher %v has no availability", teacher.Name)
		}
		if teacher.Availability.Days() != days || teacher.Availability.PeriodsPerDay() != periodsPerDay {
			return nil, fmt.Errorf("teacher %v availability is %vx%v, roster is %vx%v",
				teacher.Name, teacher.Availability.Days(), teacher.Availability.PeriodsPerDay(), days, periodsPerDay)
		}
		roster.teacherIndex[teacher.Name] = i
	}

	classNames := make(map[string]bool, len(classes))
	for classIndex, class := range classes {
		if class.Name == "" {
			return nil, fmt.Errorf("class %v has an empty name", classIndex)
		}
		if classNames[class.Name] {
			return nil, fmt.Errorf("duplicate class name: %v", class.Name)
		}
		classNames[class.Name] = true

		for lessonIndex, lesson := range class.Lessons {
			if err := lesson.Validate(); err != nil {
				return nil, fmt.Errorf("class %v: %w", class.Name, err)
			}
			for _, teacher := range lesson.TeacherNames() {
				if _, ok := roster.teacherIndex[teacher]; !ok {
					return nil, fmt.Errorf("class %v lesson %v references unknown teacher %v", class.Name, lesson.Subject(), teacher)
				}
			}
			for index := 0; index < lesson.PeriodsPerWeek; index++ {
				roster.occurrences = append(roster.occurrences, Occurrence{
					Class:  classIndex,
					Lesson: lessonIndex,
					Index:  index,
				})
			}
		}
	}

	return roster, nil
}

// Occurrences enumerates every lesson occurrence in a fixed order: classes in
// roster order, lessons in class order, indices ascending. The slice is
// shared and must not be mutated.
func (roster *Roster) Occurrences() []Occurrence {
	return roster.occurrences
}

// TeacherIndex resolves a teacher name to its position in Teachers. The name
// must have been validated at construction time.
func (roster *Roster) TeacherIndex(name string) int {
	index, ok := roster.teacherIndex[name]
	if !ok {
		panic(fmt.Sprintf("unknown teacher: %v", name))
	}
	return index
}

// Lesson returns the lesson an occurrence belongs to.
func (roster *Roster) Lesson(occurrence Occurrence) Lesson {
	return roster.Classes[occurrence.Class].Lessons[occurrence.Lesson]
}

// SlotsPerWeek is the capacity of the weekly grid.
func (roster *Roster) SlotsPerWeek() int {
	return roster.Days * roster.PeriodsPerDay
}
