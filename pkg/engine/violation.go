package engine

import (
	"fmt"
	"strings"

	"stundenplan/pkg/model"
)

type ViolationKind int

const (
	// TeacherConflict: a teacher is booked by more than one occurrence in
	// the same slot, across classes.
	TeacherConflict ViolationKind = iota
	// ClassConflict: a class has more than one occurrence in the same slot.
	ClassConflict
	// TeacherUnavailable: an occurrence books a teacher outside their
	// availability bitmap.
	TeacherUnavailable
)

var violationKindNames = map[ViolationKind]string{
	TeacherConflict:    "teacher-conflict",
	ClassConflict:      "class-conflict",
	TeacherUnavailable: "teacher-unavailable",
}

func (kind ViolationKind) String() string {
	name, ok := violationKindNames[kind]
	if !ok {
		panic(fmt.Sprintf("unknown violation kind: %d", int(kind)))
	}
	return name
}

// Violation describes one residual hard-constraint breach of a timetable,
// naming every involved party.
type Violation struct {
	Kind     ViolationKind
	Teacher  string
	Classes  []string
	Subjects []string
	Slot     model.Slot
}

func (violation Violation) String() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%v at %v", violation.Kind, violation.Slot)
	if violation.Teacher != "" {
		fmt.Fprintf(&builder, ", teacher %v", violation.Teacher)
	}
	if len(violation.Classes) > 0 {
		fmt.Fprintf(&builder, ", classes [%v]", strings.Join(violation.Classes, ", "))
	}
	if len(violation.Subjects) > 0 {
		fmt.Fprintf(&builder, ", subjects [%v]", strings.Join(violation.Subjects, ", "))
	}
	return builder.String()
}
