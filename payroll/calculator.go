package payroll

import "time"

// TickInput is everything one tick depends on.
type TickInput struct {
	Config     Config
	OnVacation bool
	Override   *ScheduleOverride // today's replacement schedule, nil if none
	Now        time.Time         // local wall-clock
}

// Calculate derives the earnings snapshot for in.Now.
//
// It returns ErrDegenerateShift or a *NoWorkDaysError (ErrNoWorkDays) when no
// meaningful snapshot exists; both are expected outcomes, see IsSkip.
func Calculate(in TickInput) (Snapshot, error) {
	cfg := in.Config

	// 1. Effective shift
	startClock, endClock := cfg.WorkStartTime, cfg.WorkEndTime
	if in.Override != nil {
		startClock, endClock = in.Override.Start, in.Override.End
	}
	shift := NewShift(startClock, endClock)
	shiftHours := shift.Hours()
	if shiftHours <= 0 {
		return Snapshot{}, ErrDegenerateShift
	}

	// 2-3. Monthly base and pay period
	today := DateOf(in.Now)
	period := ResolvePayPeriod(today, cfg.PayDay)
	workDaysInPeriod := CountWorkDays(period.Start, period.End, cfg.WorkDays)
	if workDaysInPeriod == 0 {
		return Snapshot{}, &NoWorkDaysError{Period: period, WorkDays: cfg.WorkDays}
	}

	// 4. Rates
	dailyRate := cfg.MonthlySalary() / float64(workDaysInPeriod)
	hourlyRate := dailyRate / shiftHours
	perSecond := hourlyRate / 3600

	// 5. The post-midnight tail of an overnight shift belongs to yesterday.
	rawMinutes := in.Now.Hour()*60 + in.Now.Minute()
	effectiveDay := today
	if shift.Overnight() && rawMinutes < shift.RawEnd {
		effectiveDay = today.AddDays(-1)
	}

	// 6. An explicit override always makes today a work day.
	isWorkDay := cfg.WorkDays.Contains(effectiveDay.Weekday()) || in.Override != nil

	// 7. Put post-midnight times into the same numeric window as the evening start.
	currentMinutes := rawMinutes
	if shift.Overnight() && rawMinutes < shift.Start {
		currentMinutes += minutesPerDay
	}

	// 8. Status and today's earnings, in priority order
	var todayEarnings float64
	var status WorkStatus
	switch {
	case !isWorkDay:
		todayEarnings, status = 0, StatusDayOff
	case in.OnVacation:
		todayEarnings, status = dailyRate, StatusDayOff
	case currentMinutes < shift.Start:
		todayEarnings, status = 0, StatusBeforeWork
	case currentMinutes >= shift.End:
		todayEarnings, status = dailyRate, StatusCompleted
	default:
		workedSeconds := (currentMinutes-shift.Start)*60 + in.Now.Second()
		todayEarnings, status = perSecond*float64(workedSeconds), StatusWorking
	}

	// 9. Accumulated since the pay day, excluding today
	workedDays := CountWorkDays(period.Start, today, cfg.WorkDays)
	accumulated := float64(workedDays)*dailyRate + todayEarnings

	return Snapshot{
		DailyRate:           dailyRate,
		HourlyRate:          hourlyRate,
		PerSecond:           perSecond,
		AccumulatedEarnings: accumulated,
		TodayEarnings:       todayEarnings,
		WorkStatus:          status,
		IsWorkDay:           isWorkDay,
		WorkedDays:          workedDays,
		Period:              period,
		AsOf:                in.Now,
	}, nil
}
