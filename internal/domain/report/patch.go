package report

import (
	"github.com/shopspring/decimal"
)

// Patch lists the fields of a report that may be edited. Nil fields are left
// untouched.
type Patch struct {
	Summary       *string
	Activities    *[]Activity
	Challenges    *string
	NextActions   *string
	WorkingHours  *float64
	TravelExpense *decimal.Decimal
}

func (p Patch) Empty() bool {
	return p.Summary == nil && p.Activities == nil && p.Challenges == nil &&
		p.NextActions == nil && p.WorkingHours == nil && p.TravelExpense == nil
}

func (p Patch) ApplyTo(r *Report) {
	if p.Summary != nil {
		r.Summary = *p.Summary
	}
	if p.Activities != nil {
		r.Activities = append(r.Activities[:0:0], (*p.Activities)...)
	}
	if p.Challenges != nil {
		r.Challenges = *p.Challenges
	}
	if p.NextActions != nil {
		r.NextActions = *p.NextActions
	}
	if p.WorkingHours != nil {
		r.WorkingHours = *p.WorkingHours
	}
	if p.TravelExpense != nil {
		r.TravelExpense = *p.TravelExpense
	}
}
