package model

import (
	"fmt"
	"strings"
)

type LessonKind int

const (
	// Normal is a single subject taught by a single teacher.
	Normal LessonKind = iota
	// Alternating is one weekly slot whose content alternates by calendar
	// week between two subject/teacher pairs. Both teachers occupy the slot
	// for conflict purposes, since either may be booked in a given real week.
	Alternating
	// Group is one subject taught simultaneously by two teachers to split
	// sub-groups of the same class.
	Group
)

var lessonKindNames = map[LessonKind]string{
	Normal:      "normal",
	Alternating: "alternating",
	Group:       "group",
}

func (kind LessonKind) String() string {
	name, ok := lessonKindNames[kind]
	if !ok {
		panic(fmt.Sprintf("unknown lesson kind: %d", int(kind)))
	}
	return name
}

// Lesson is a closed tagged variant over Normal, Alternating and Group.
// Subjects and Teachers hold one entry for Normal, two for Alternating
// (pairwise: Subjects[i] is taught by Teachers[i]); Group holds one subject
// and two teachers.
type Lesson struct {
	Kind           LessonKind
	Subjects       []string
	Teachers       []string
	PeriodsPerWeek int
}

// TeacherNames returns the set of teacher identities that occupy a slot
// booked by this lesson, unifying conflict checks across variants.
func (lesson Lesson) TeacherNames() []string {
	switch lesson.Kind {
	case Normal:
		return lesson.Teachers[:1]
	case Alternating, Group:
		return lesson.Teachers[:2]
	default:
		panic(fmt.Sprintf("unknown lesson kind: %d", int(lesson.Kind)))
	}
}

// Subject returns a display name for the lesson's content.
func (lesson Lesson) Subject() string {
	switch lesson.Kind {
	case Normal, Group:
		return lesson.Subjects[0]
	case Alternating:
		return strings.Join(lesson.Subjects[:2], "/")
	default:
		panic(fmt.Sprintf("unknown lesson kind: %d", int(lesson.Kind)))
	}
}

func (lesson Lesson) Validate() error {
	if lesson.PeriodsPerWeek < 1 {
		return fmt.Errorf("lesson %v: periods per week must be positive: %v", strings.Join(lesson.Subjects, "/"), lesson.PeriodsPerWeek)
	}

	subjects, teachers := 1, 1
	switch lesson.Kind {
	case Normal:
	case Alternating:
		subjects, teachers = 2, 2
	case Group:
		teachers = 2
	default:
		return fmt.Errorf("unknown lesson kind: %d", int(lesson.Kind))
	}

	if len(lesson.Subjects) != subjects {
		return fmt.Errorf("%v lesson must have exactly %v subject(s): %v", lesson.Kind, subjects, lesson.Subjects)
	}
	if len(lesson.Teachers) != teachers {
		return fmt.Errorf("%v lesson %v must have exactly %v teacher(s): %v", lesson.Kind, lesson.Subject(), teachers, lesson.Teachers)
	}
	if teachers == 2 && lesson.Teachers[0] == lesson.Teachers[1] {
		return fmt.Errorf("%v lesson %v must have two distinct teachers: %v", lesson.Kind, lesson.Subject(), lesson.Teachers[0])
	}
	for _, teacher := range lesson.Teachers {
		if teacher == "" {
			return fmt.Errorf("%v lesson %v has an empty teacher reference", lesson.Kind, lesson.Subject())
		}
	}
	return nil
}
