package engine

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"stundenplan/pkg/model"
)

// validateRoster checks cross-referential feasibility before the search
// starts. Structural shape (name uniqueness, positive periods, resolvable
// teacher references) is already enforced by model.NewRoster; here the engine
// rejects rosters no amount of searching can schedule.
func validateRoster(roster *model.Roster, logger *zap.Logger) error {
	issues := make([]InputIssue, 0)
	capacity := roster.SlotsPerWeek()

	for _, class := range roster.Classes {
		if total := class.TotalPeriodsPerWeek(); total > capacity {
			issues = append(issues, InputIssue{
				Class:  class.Name,
				Detail: fmt.Sprintf("requires %v periods per week but the grid only has %v slots", total, capacity),
			})
		}

		for _, lesson := range class.Lessons {
			if lesson.PeriodsPerWeek > roster.Days {
				logger.Warn("lesson requires more periods than there are days; same-day repeats are unavoidable",
					zap.String("class", class.Name),
					zap.String("subject", lesson.Subject()),
					zap.Int("periodsPerWeek", lesson.PeriodsPerWeek),
					zap.Int("days", roster.Days))
			}

			for _, name := range lesson.TeacherNames() {
				teacher := roster.Teachers[roster.TeacherIndex(name)]
				if teacher.Availability.Count() == 0 {
					issues = append(issues, InputIssue{
						Class:   class.Name,
						Teacher: name,
						Detail:  fmt.Sprintf("teacher has no available slots for lesson %v", lesson.Subject()),
					})
				}
			}
		}
	}

	// Over-subscribed teachers are not a structural impossibility from the
	// engine's point of view: the search still produces a best-effort
	// timetable with enumerated conflicts. Flag them early anyway.
	demand := make([]int, len(roster.Teachers))
	for _, class := range roster.Classes {
		for _, lesson := range class.Lessons {
			for _, name := range lesson.TeacherNames() {
				demand[roster.TeacherIndex(name)] += lesson.PeriodsPerWeek
			}
		}
	}
	for i, teacher := range roster.Teachers {
		if available := teacher.Availability.Count(); demand[i] > available {
			logger.Warn("teacher demand exceeds availability",
				zap.String("teacher", teacher.Name),
				zap.Int("demand", demand[i]),
				zap.Int("available", available))
		}
	}

	if len(issues) > 0 {
		return &InfeasibleError{Issues: lo.UniqBy(issues, InputIssue.String)}
	}
	return nil
}
