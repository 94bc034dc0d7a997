package payroll

import (
	"time"
)

// =============================================================================
// DATE - Day-granular local calendar date
// =============================================================================

// Date is a calendar day in local wall-clock terms. The underlying time is
// always midnight UTC so that day arithmetic never crosses a DST boundary.
type Date struct {
	Time time.Time
}

// DateLayout is the on-disk and wire format of a Date.
const DateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock part of a local timestamp. The zone is ignored:
// all times are local wall-clock.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) Equal(other Date) bool { return d.Time.Equal(other.Time) }
func (d Date) After(other Date) bool { return d.Time.After(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool { return d.Time.IsZero() }
func (d Date) String() string { return d.Time.Format(DateLayout) }

// MarshalText keeps dates in ISO form inside JSON payloads.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CALENDAR UTILITIES
// =============================================================================

// DaysInMonth returns the length of a Gregorian month. Month values outside
// 1..12 roll over into the neighbouring year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween counts whole days from one date to another (negative if to is earlier).
func DaysBetween(from, to Date) int { return int(to.Time.Sub(from.Time).Hours() / 24) }

// =============================================================================
// WORK DAYS
// =============================================================================

// WeekdaySet holds day-of-week codes, 0 = Sunday ... 6 = Saturday.
// This matches time.Weekday numbering, not ISO.
type WeekdaySet []int

// DefaultWorkDays is Monday through Friday.
func DefaultWorkDays() WeekdaySet { return WeekdaySet{1, 2, 3, 4, 5} }

func (s WeekdaySet) Contains(wd time.Weekday) bool {
	for _, d := range s {
		if d == int(wd) {
			return true
		}
	}
	return false
}

// CountWorkDays counts dates in [from, to) whose weekday is in days.
func CountWorkDays(from, to Date, days WeekdaySet) int {
	count := 0
	for current := from; current.Before(to); current = current.AddDays(1) {
		if days.Contains(current.Weekday()) {
			count++
		}
	}
	return count
}
