package report

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type submission struct {
	Summary       string  `validate:"required"`
	WorkingHours  float64 `validate:"gte=0,lte=24"`
	TravelExpense float64 `validate:"gte=0"`
}

// ValidateForSubmission checks that a report is complete enough to be
// submitted: a non-blank summary, working hours within a day and a
// non-negative travel expense.
func (r *Report) ValidateForSubmission() error {
	s := submission{
		Summary:       strings.TrimSpace(r.Summary),
		WorkingHours:  r.WorkingHours,
		TravelExpense: r.TravelExpense.InexactFloat64(),
	}
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, strings.ToLower(e.Field())+" is required")
		default:
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s", strings.ToLower(e.Field()), e.Tag(), e.Param()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(msgs, "; "))
}
