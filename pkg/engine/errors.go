package engine

import (
	"fmt"
	"strings"
)

// InputIssue names one structural impossibility found before the search
// starts, with enough context for the host UI to surface an actionable
// message.
type InputIssue struct {
	Class   string
	Teacher string
	Detail  string
}

func (issue InputIssue) String() string {
	var builder strings.Builder
	if issue.Class != "" {
		fmt.Fprintf(&builder, "class %v: ", issue.Class)
	}
	if issue.Teacher != "" {
		fmt.Fprintf(&builder, "teacher %v: ", issue.Teacher)
	}
	builder.WriteString(issue.Detail)
	return builder.String()
}

// InfeasibleError reports that the roster cannot be scheduled regardless of
// search effort. It is returned before the search loop is entered.
type InfeasibleError struct {
	Issues []InputIssue
}

func (err *InfeasibleError) Error() string {
	issues := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		issues = append(issues, issue.String())
	}
	return fmt.Sprintf("roster is infeasible: %v", strings.Join(issues, "; "))
}
