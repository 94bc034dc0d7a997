package payroll

import "time"

// =============================================================================
// PAY PERIOD - The interval every rate is derived from
// =============================================================================

// PayPeriod is the half-open interval [Start, End) between two consecutive
// pay days. End is the next pay day itself, which belongs to the following period.
type PayPeriod struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Contains returns true if d is within [Start, End).
func (p PayPeriod) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.Before(p.End)
}

// Days returns every date in the period.
func (p PayPeriod) Days() []Date {
	var days []Date
	for current := p.Start; current.Before(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Length is the number of days in the period.
func (p PayPeriod) Length() int { return DaysBetween(p.Start, p.End) }

func (p PayPeriod) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + ")"
}

// =============================================================================
// RESOLVER
// =============================================================================

// ClampedPayDay is the pay day as it falls in the given month. A pay day of 31
// becomes the 28th/29th in February and the 30th in 30-day months.
func ClampedPayDay(year int, month time.Month, payDay int) int {
	return min(payDay, DaysInMonth(year, month))
}

// ResolvePayPeriod returns the pay period containing today.
//
// If today is on or after this month's (clamped) pay day, the period runs to
// next month's pay day; otherwise it started on last month's pay day.
// Month arithmetic goes through time.Date normalisation so December→January
// and January→December roll the year.
func ResolvePayPeriod(today Date, payDay int) PayPeriod {
	year, month := today.Year(), today.Month()

	if today.Day() >= ClampedPayDay(year, month, payDay) {
		return PayPeriod{
			Start: payDayIn(year, month, payDay),
			End:   payDayIn(year, month+1, payDay),
		}
	}
	return PayPeriod{
		Start: payDayIn(year, month-1, payDay),
		End:   payDayIn(year, month, payDay),
	}
}

// payDayIn normalises (year, month) first, then clamps.
func payDayIn(year int, month time.Month, payDay int) Date {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	y, m := first.Year(), first.Month()
	return NewDate(y, m, ClampedPayDay(y, m, payDay))
}

// Next returns the period that starts where this one ends.
func (p PayPeriod) Next(payDay int) PayPeriod {
	return ResolvePayPeriod(p.End, payDay)
}

// IsPayday reports whether today is this month's clamped pay day.
func IsPayday(today Date, payDay int) bool {
	return today.Day() == ClampedPayDay(today.Year(), today.Month(), payDay)
}

// DaysUntilPayday is zero on a pay day, otherwise the distance to the end of
// the current period.
func DaysUntilPayday(today Date, payDay int) int {
	if IsPayday(today, payDay) {
		return 0
	}
	return DaysBetween(today, ResolvePayPeriod(today, payDay).End)
}
