package payroll

import (
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" to minutes since midnight. Anything that does
// not split into two integer parts counts as 0, and an unparsable half counts
// as 0 on its own, so "9:xx" is 540.
func ParseClock(clock string) int {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		hours = 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 {
		minutes = 0
	}
	return hours*60 + minutes
}

// ValidClock reports whether s is a well-formed "HH:MM" in 00:00..23:59.
func ValidClock(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	return err == nil && m >= 0 && m <= 59
}

// =============================================================================
// SHIFT - One start/end window attributed to a single calendar day
// =============================================================================

// Shift is a work window in minutes since midnight. For an overnight shift
// End is already pushed past 1440 so End-Start is the real duration.
type Shift struct {
	Start int
	End   int

	// RawEnd is the end clock before normalisation, used for effective-day attribution.
	RawEnd int
}

// NewShift builds a shift from two clocks. An end strictly before the start
// wraps into the next day. Equal clocks give a zero-length shift.
func NewShift(start, end string) Shift {
	s := ParseClock(start)
	raw := ParseClock(end)
	e := raw
	if raw < s {
		e += minutesPerDay
	}
	return Shift{Start: s, End: e, RawEnd: raw}
}

// Overnight reports whether the shift crosses midnight.
func (s Shift) Overnight() bool { return s.RawEnd < s.Start }

// Minutes is the shift duration.
func (s Shift) Minutes() int { return s.End - s.Start }

// Hours is the shift duration in fractional hours.
func (s Shift) Hours() float64 { return float64(s.Minutes()) / 60 }

// ScheduleOverride replaces today's start and end clocks.
type ScheduleOverride struct {
	Start string `json:"workStartTime"`
	End   string `json:"workEndTime"`
}
