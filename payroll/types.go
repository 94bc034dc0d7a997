/*
Package payroll provides the pure salary-tick calculation.

PURPOSE:
  Given a compensation configuration and a local timestamp, this package
  derives how much money has been earned today and since the last pay day,
  and which part of the work day the worker is in. Nothing here performs
  I/O or keeps state between calls; the ticker package drives it once per
  second.

KEY CONCEPTS IN THIS FILE (types.go):
  - Config:     Compensation settings as the calculator sees them
  - WorkStatus: before-work / working / completed / day-off
  - Snapshot:   Immutable result of one tick

DESIGN PRINCIPLES:
  1. Wall-clock driven: every value is recomputed from "now", never
     advanced from the previous tick, so scheduler jitter cannot accumulate.
  2. Month clamping: a pay day of 31 silently becomes the last day of
     shorter months.
  3. Overnight shifts belong to the day they started.

USAGE:
  snap, err := payroll.Calculate(payroll.TickInput{
      Config: cfg,
      Now:    time.Now(),
  })
  if payroll.IsSkip(err) {
      // keep showing the previous snapshot
  }

SEE ALSO:
  - period.go: Pay period resolution
  - calculator.go: The tick computation
  - format.go: Tray title formatting
*/
package payroll

import "time"

// =============================================================================
// CONFIG - Compensation settings consumed per tick
// =============================================================================

type SalaryType string

const (
	SalaryMonthly SalaryType = "monthly"
	SalaryYearly  SalaryType = "yearly"
)

// Config is read-only to the calculator. Validation happens when settings
// are written, so zero or out-of-range values must be tolerated here.
type Config struct {
	SalaryType    SalaryType
	SalaryAmount  int64
	PayDay        int
	WorkDays      WeekdaySet
	WorkStartTime string
	WorkEndTime   string
}

// MonthlySalary converts a yearly amount to its monthly share.
func (c Config) MonthlySalary() float64 {
	if c.SalaryType == SalaryYearly {
		return float64(c.SalaryAmount) / 12
	}
	return float64(c.SalaryAmount)
}

// =============================================================================
// WORK STATUS
// =============================================================================

type WorkStatus string

const (
	StatusBeforeWork WorkStatus = "before-work"
	StatusWorking    WorkStatus = "working"
	StatusCompleted  WorkStatus = "completed"
	StatusDayOff     WorkStatus = "day-off"
)

// =============================================================================
// SNAPSHOT - Result of one tick
// =============================================================================

// Snapshot is never mutated; each tick replaces it. The JSON shape is what
// listeners of the "salary-tick" event receive.
type Snapshot struct {
	DailyRate           float64    `json:"dailyRate"`
	HourlyRate          float64    `json:"hourlyRate"`
	PerSecond           float64    `json:"perSecond"`
	AccumulatedEarnings float64    `json:"accumulatedEarnings"`
	TodayEarnings       float64    `json:"todayEarnings"`
	WorkStatus          WorkStatus `json:"workStatus"`
	IsWorkDay           bool       `json:"isWorkDay"`
	WorkedDays          int        `json:"workedDays"`

	Period PayPeriod `json:"period"`
	AsOf   time.Time `json:"asOf"`
}

// IsWorking is the flag that drives the tray animation.
func (s Snapshot) IsWorking() bool { return s.WorkStatus == StatusWorking }
