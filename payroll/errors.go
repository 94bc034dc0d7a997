/*
errors.go - Error values of the payroll calculator

PURPOSE:
  The calculator is pure and total except for two outcomes in which no
  meaningful snapshot exists. They are reported as sentinel errors so callers
  can tell them apart from real failures with errors.Is().

SKIP OUTCOMES:
  ErrDegenerateShift - shift length is not positive (start == end)
  ErrNoWorkDays      - the resolved pay period contains no configured work day

  Neither is exceptional. The ticker treats both as "hold the previous
  display, try again next second".

SEE ALSO:
  - calculator.go: Returns these errors
  - ticker/ticker.go: Swallows them
*/
package payroll

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateShift is returned when the effective shift has no positive length.
	ErrDegenerateShift = errors.New("degenerate shift length")

	// ErrNoWorkDays is returned when the pay period has zero configured work days.
	ErrNoWorkDays = errors.New("no work days in pay period")
)

// NoWorkDaysError carries the period that had no work days.
type NoWorkDaysError struct {
	Period   PayPeriod
	WorkDays WeekdaySet
}

func (e *NoWorkDaysError) Error() string {
	return fmt.Sprintf("no work days in pay period %s (work days %v)", e.Period, e.WorkDays)
}

func (e *NoWorkDaysError) Unwrap() error {
	return ErrNoWorkDays
}

// IsSkip returns true if err means "no snapshot this tick".
func IsSkip(err error) bool {
	return errors.Is(err, ErrDegenerateShift) || errors.Is(err, ErrNoWorkDays)
}
