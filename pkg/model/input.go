package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// TeacherInput, LessonInput and ClassInput mirror the JSON shape the
// surrounding editor application exports: availability is a day-major boolean
// matrix, lessons reference teachers by name.
type TeacherInput struct {
	Name         string
	Contact      string
	Availability [][]bool
}

type LessonInput struct {
	Kind           string
	Subjects       []string
	Teachers       []string
	PeriodsPerWeek int `mapstructure:"periodsPerWeek"`
}

type ClassInput struct {
	Name    string
	Lessons []LessonInput
}

type RosterInput struct {
	Days          int
	PeriodsPerDay int `mapstructure:"periodsPerDay"`
	Teachers      []TeacherInput
	Classes       []ClassInput
}

var lessonKinds = map[string]LessonKind{
	"normal":      Normal,
	"alternating": Alternating,
	"group":       Group,
}

// InputFromJson reads a roster description from a JSON file.
func InputFromJson(file string) (RosterInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return RosterInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return RosterInput{}, err
	}

	var input RosterInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return RosterInput{}, err
	}

	return input, nil
}

// ToRoster resolves the raw input into a validated roster. Missing geometry
// falls back to the 5x8 default week.
func (input RosterInput) ToRoster() (*Roster, error) {
	days, periodsPerDay := input.Days, input.PeriodsPerDay
	if days == 0 {
		days = DefaultDays
	}
	if periodsPerDay == 0 {
		periodsPerDay = DefaultPeriodsPerDay
	}

	teachers := make([]Teacher, 0, len(input.Teachers))
	for _, teacherInput := range input.Teachers {
		availability, err := availabilityFromInput(teacherInput.Availability, days, periodsPerDay)
		if err != nil {
			return nil, fmt.Errorf("teacher %v: %w", teacherInput.Name, err)
		}
		teachers = append(teachers, Teacher{
			Name:         teacherInput.Name,
			Contact:      teacherInput.Contact,
			Availability: availability,
		})
	}

	classes := make([]Class, 0, len(input.Classes))
	for _, classInput := range input.Classes {
		lessons := make([]Lesson, 0, len(classInput.Lessons))
		for _, lessonInput := range classInput.Lessons {
			kind, ok := lessonKinds[lessonInput.Kind]
			if !ok {
				return nil, fmt.Errorf("class %v: unknown lesson kind %q", classInput.Name, lessonInput.Kind)
			}
			lessons = append(lessons, Lesson{
				Kind:           kind,
				Subjects:       lessonInput.Subjects,
				Teachers:       lessonInput.Teachers,
				PeriodsPerWeek: lessonInput.PeriodsPerWeek,
			})
		}
		classes = append(classes, Class{Name: classInput.Name, Lessons: lessons})
	}

	return NewRoster(classes, teachers, days, periodsPerDay)
}

func availabilityFromInput(matrix [][]bool, days, periodsPerDay int) (*Availability, error) {
	// An omitted matrix means the teacher is available the whole week.
	if len(matrix) == 0 {
		return NewFullAvailability(days, periodsPerDay), nil
	}
	return NewAvailabilityFromMatrix(matrix)
}
