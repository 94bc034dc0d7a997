package ticker

import "sync/atomic"

// Signals is the shared state between the ticker loop and the code that
// mutates settings. It replaces process-wide flags: whoever needs to signal
// the loop is handed the same *Signals.
type Signals struct {
	settingsChanged atomic.Bool
}

func NewSignals() *Signals { return &Signals{} }

// NotifySettingsChanged asks the loop to reload settings on its next tick.
// Several calls within one tick collapse into a single reload.
func (s *Signals) NotifySettingsChanged() {
	s.settingsChanged.Store(true)
}

// takeSettingsChanged reports and clears the flag in one step.
func (s *Signals) takeSettingsChanged() bool {
	return s.settingsChanged.Swap(false)
}
