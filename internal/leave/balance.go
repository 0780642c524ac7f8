package leave

import (
	"time"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"
)

// InclusiveDaySpan counts the calendar days covered by [start, end], both
// ends included. A single-day request spans 1. This is the single source of
// truth for "days requested"; creation and any re-display must agree with it.
func InclusiveDaySpan(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// ProjectedRemaining is the employee's balance after deducting the given
// days. It may be negative: callers surface that as a warning before
// submission, never as an error.
func ProjectedRemaining(e employee.Employee, days int) int {
	return e.RemainingDays - days
}

// ApplyApproval returns a copy of the employee with the balance reduced by
// the request's days. Never called for rejections, and never allowed to push
// the balance below zero: the lifecycle controller checks the balance before
// calling.
func ApplyApproval(e employee.Employee, req LeaveRequest) employee.Employee {
	e.RemainingDays -= req.Days
	return e
}
