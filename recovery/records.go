package recovery

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/warp/salary-ticker/payroll"
)

// Document names of the one-day records.
const (
	VacationName      = "vacation-state"
	TodayScheduleName = "today-work-schedule"
	WorkCompletedName = "work-completed-ack"
)

// =============================================================================
// RECORDS - Valid only on the date they carry
// =============================================================================

// Vacation marks Date as paid time off.
type Vacation struct {
	Date string `json:"date"`
}

// TodaySchedule replaces the configured shift on Date.
type TodaySchedule struct {
	Date          string `json:"date"`
	WorkStartTime string `json:"workStartTime"`
	WorkEndTime   string `json:"workEndTime"`
}

// WorkCompletedAck records that the user dismissed the "work completed" screen on Date.
type WorkCompletedAck struct {
	Date string `json:"date"`
}

// =============================================================================
// OVERRIDES - Date-keyed access for the ticker and the API
// =============================================================================

// Overrides reads and writes the one-day records. Reads never fail: a
// missing, unreadable, malformed, null or stale record is simply absent.
type Overrides struct {
	Store Store
}

func NewOverrides(store Store) *Overrides {
	return &Overrides{Store: store}
}

// load decodes name into v. It reports false for anything but a clean decode
// of a non-null document.
func (o *Overrides) load(ctx context.Context, name string, v any) bool {
	data, err := o.Store.Load(ctx, name)
	if err != nil {
		return false
	}
	if string(data) == "null" {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// VacationOn reports whether day is a vacation day.
func (o *Overrides) VacationOn(ctx context.Context, day payroll.Date) bool {
	var v Vacation
	return o.load(ctx, VacationName, &v) && v.Date == day.String()
}

// ScheduleOn returns the override for day, or nil.
func (o *Overrides) ScheduleOn(ctx context.Context, day payroll.Date) *payroll.ScheduleOverride {
	var s TodaySchedule
	if !o.load(ctx, TodayScheduleName, &s) || s.Date != day.String() {
		return nil
	}
	return &payroll.ScheduleOverride{Start: s.WorkStartTime, End: s.WorkEndTime}
}

// AcknowledgedOn reports whether the completion screen was dismissed on day.
func (o *Overrides) AcknowledgedOn(ctx context.Context, day payroll.Date) bool {
	var a WorkCompletedAck
	return o.load(ctx, WorkCompletedName, &a) && a.Date == day.String()
}

// =============================================================================
// WRITERS
// =============================================================================

func (o *Overrides) save(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return o.Store.Save(ctx, name, data)
}

// clear stores JSON null, which every loader treats as absent.
func (o *Overrides) clear(ctx context.Context, name string) error {
	return o.Store.Save(ctx, name, json.RawMessage("null"))
}

func (o *Overrides) SetVacation(ctx context.Context, day payroll.Date) error {
	return o.save(ctx, VacationName, Vacation{Date: day.String()})
}

func (o *Overrides) ClearVacation(ctx context.Context) error {
	return o.clear(ctx, VacationName)
}

// SetTodaySchedule rejects malformed clocks and zero-length shifts.
func (o *Overrides) SetTodaySchedule(ctx context.Context, day payroll.Date, start, end string) error {
	if !payroll.ValidClock(start) || !payroll.ValidClock(end) {
		return &Error{Kind: KindValidation, Name: TodayScheduleName, Message: "times must be HH:MM"}
	}
	if start == end {
		return &Error{Kind: KindValidation, Name: TodayScheduleName, Message: "start and end must differ"}
	}
	return o.save(ctx, TodayScheduleName, TodaySchedule{
		Date:          day.String(),
		WorkStartTime: start,
		WorkEndTime:   end,
	})
}

func (o *Overrides) ClearTodaySchedule(ctx context.Context) error {
	return o.clear(ctx, TodayScheduleName)
}

func (o *Overrides) Acknowledge(ctx context.Context, day payroll.Date) error {
	return o.save(ctx, WorkCompletedName, WorkCompletedAck{Date: day.String()})
}
