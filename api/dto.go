/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Snapshots and settings
  are served as-is; the types here cover everything that is assembled or
  accepted by the handlers only.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/salary-ticker/payroll"
)

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// PayPeriodDTO describes the pay period containing today.
type PayPeriodDTO struct {
	Start           payroll.Date `json:"start"`
	End             payroll.Date `json:"end"`
	PayDay          int          `json:"payDay"`
	Length          int          `json:"length"`
	WorkDays        int          `json:"workDays"`
	WorkedDays      int          `json:"workedDays"`
	IsPayday        bool         `json:"isPayday"`
	DaysUntilPayday int          `json:"daysUntilPayday"`
}

// PeriodDayRow is one line of the pay period CSV export.
type PeriodDayRow struct {
	Date    string `csv:"date"`
	Weekday string `csv:"weekday"`
	WorkDay bool   `csv:"work_day"`
	Payday  bool   `csv:"payday"`
	Worked  bool   `csv:"worked"`
}

// VacationDTO reports today's vacation state.
type VacationDTO struct {
	Date       payroll.Date `json:"date"`
	OnVacation bool         `json:"onVacation"`
}

// ScheduleRequest sets today's one-day schedule.
type ScheduleRequest struct {
	WorkStartTime string `json:"workStartTime"`
	WorkEndTime   string `json:"workEndTime"`
}

// ScheduleDTO reports today's override, if any.
type ScheduleDTO struct {
	Date     payroll.Date              `json:"date"`
	Override *payroll.ScheduleOverride `json:"override"`
}

// AckDTO reports whether today's completion was acknowledged.
type AckDTO struct {
	Date         payroll.Date `json:"date"`
	Acknowledged bool         `json:"acknowledged"`
}
