package ticker

import (
	"github.com/warp/salary-ticker/payroll"
	"github.com/warp/salary-ticker/settings"
)

// DisplayTitle derives the menubar label. On a day off no amount is shown,
// which also hides the paid amount of a vacation day.
func DisplayTitle(mode settings.DisplayMode, snap payroll.Snapshot) (string, bool) {
	if snap.WorkStatus == payroll.StatusDayOff {
		return "", false
	}
	switch mode {
	case settings.DisplayDaily:
		return payroll.FormatTrayTitle(snap.TodayEarnings), true
	case settings.DisplayAccumulated:
		return payroll.FormatTrayTitle(snap.AccumulatedEarnings), true
	default:
		return "", false
	}
}
