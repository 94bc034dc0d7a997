/*
Package settings holds the user's compensation configuration record.

PURPOSE:
  The settings record is written by the settings screen and read by the
  ticker. Validation happens here, at write time; the calculator never
  re-validates and must tolerate whatever it is given.

JSON FORMAT (user-settings.json):
  {
    "salaryType": "monthly",          // "monthly" | "yearly"
    "salaryAmount": 3000000,          // whole currency units
    "payDay": 25,                     // 1-31, clamped to month length
    "workDays": [1, 2, 3, 4, 5],      // 0 = Sunday ... 6 = Saturday
    "workStartTime": "09:00",
    "workEndTime": "18:00",
    "onboardingCompleted": true,
    "menubarDisplayMode": "daily",    // "none" | "daily" | "accumulated"
    "menubarIconTheme": "light"       // "light" | "dark"
  }

  Missing optional fields take the defaults shown above. Unknown fields are
  ignored.

SEE ALSO:
  - store.go: File-backed persistence
  - store/sqlite/sqlite.go: Database-backed persistence
  - payroll/types.go: The calculator's view of this record
*/
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/warp/salary-ticker/payroll"
)

// =============================================================================
// ENUMS
// =============================================================================

// DisplayMode selects what the menubar label shows.
type DisplayMode string

const (
	DisplayNone        DisplayMode = "none"
	DisplayDaily       DisplayMode = "daily"
	DisplayAccumulated DisplayMode = "accumulated"
)

func (m DisplayMode) Valid() bool {
	switch m {
	case DisplayNone, DisplayDaily, DisplayAccumulated:
		return true
	}
	return false
}

// IconTheme selects the tray icon frame set.
type IconTheme string

const (
	IconLight IconTheme = "light"
	IconDark  IconTheme = "dark"
)

func (t IconTheme) Valid() bool { return t == IconLight || t == IconDark }

// =============================================================================
// USER SETTINGS
// =============================================================================

const (
	DefaultPayDay    = 25
	DefaultWorkStart = "09:00"
	DefaultWorkEnd   = "18:00"
)

type UserSettings struct {
	SalaryType          payroll.SalaryType `json:"salaryType"`
	SalaryAmount        int64              `json:"salaryAmount"`
	PayDay              int                `json:"payDay"`
	WorkDays            payroll.WeekdaySet `json:"workDays"`
	WorkStartTime       string             `json:"workStartTime"`
	WorkEndTime         string             `json:"workEndTime"`
	OnboardingCompleted bool               `json:"onboardingCompleted"`
	MenubarDisplayMode  DisplayMode        `json:"menubarDisplayMode"`
	MenubarIconTheme    IconTheme          `json:"menubarIconTheme"`
}

// Default is the record before onboarding.
func Default() UserSettings {
	return UserSettings{
		SalaryType:         payroll.SalaryMonthly,
		PayDay:             DefaultPayDay,
		WorkDays:           payroll.DefaultWorkDays(),
		WorkStartTime:      DefaultWorkStart,
		WorkEndTime:        DefaultWorkEnd,
		MenubarDisplayMode: DisplayDaily,
		MenubarIconTheme:   IconLight,
	}
}

// Parse decodes a settings document, filling defaults for missing fields.
// An explicit empty workDays array stays empty.
func Parse(data []byte) (UserSettings, error) {
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return UserSettings{}, fmt.Errorf("parse settings: %w", err)
	}
	if s.SalaryType == "" {
		s.SalaryType = payroll.SalaryMonthly
	}
	if s.WorkStartTime == "" {
		s.WorkStartTime = DefaultWorkStart
	}
	if s.WorkEndTime == "" {
		s.WorkEndTime = DefaultWorkEnd
	}
	if s.MenubarDisplayMode == "" {
		s.MenubarDisplayMode = DisplayDaily
	}
	if s.MenubarIconTheme == "" {
		s.MenubarIconTheme = IconLight
	}
	return s, nil
}

// Validate enforces the write-time invariants.
func (s UserSettings) Validate() error {
	if s.SalaryType != payroll.SalaryMonthly && s.SalaryType != payroll.SalaryYearly {
		return invalid("salaryType", "must be 'monthly' or 'yearly'")
	}
	if s.SalaryAmount <= 0 {
		return invalid("salaryAmount", "must be greater than 0")
	}
	if s.PayDay < 1 || s.PayDay > 31 {
		return invalid("payDay", "must be between 1 and 31")
	}
	for _, d := range s.WorkDays {
		if d < 0 || d > 6 {
			return invalid("workDays", fmt.Sprintf("invalid weekday %d (0=Sunday ... 6=Saturday)", d))
		}
	}
	if !payroll.ValidClock(s.WorkStartTime) {
		return invalid("workStartTime", "must be HH:MM")
	}
	if !payroll.ValidClock(s.WorkEndTime) {
		return invalid("workEndTime", "must be HH:MM")
	}
	if s.WorkStartTime == s.WorkEndTime {
		return invalid("workEndTime", "must differ from workStartTime")
	}
	if !s.MenubarDisplayMode.Valid() {
		return invalid("menubarDisplayMode", "must be 'none', 'daily' or 'accumulated'")
	}
	if !s.MenubarIconTheme.Valid() {
		return invalid("menubarIconTheme", "must be 'light' or 'dark'")
	}
	return nil
}

// PayrollConfig is the calculator's view of the record.
func (s UserSettings) PayrollConfig() payroll.Config {
	return payroll.Config{
		SalaryType:    s.SalaryType,
		SalaryAmount:  s.SalaryAmount,
		PayDay:        s.PayDay,
		WorkDays:      s.WorkDays,
		WorkStartTime: s.WorkStartTime,
		WorkEndTime:   s.WorkEndTime,
	}
}
