package report

import "errors"

var (
	ErrNotFound         = errors.New("report not found")
	ErrInvalidState     = errors.New("operation not allowed in current report status")
	ErrValidationFailed = errors.New("report validation failed")
)

// IsRejected reports whether err is a business rejection (not found, wrong
// state, failed validation) as opposed to an infrastructure failure.
func IsRejected(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrValidationFailed)
}
