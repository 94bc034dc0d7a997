package ticker

import "github.com/warp/salary-ticker/payroll"

// Sink receives the ticker's side effects.
//
// SetTitle and SetWorking are only called when their value changes.
// Publish is called on every tick that produced a snapshot.
type Sink interface {
	SetTitle(title string, visible bool)
	SetWorking(working bool)
	Publish(snap payroll.Snapshot)
}

// MultiSink fans every call out to each sink in order.
type MultiSink []Sink

func (m MultiSink) SetTitle(title string, visible bool) {
	for _, s := range m {
		s.SetTitle(title, visible)
	}
}

func (m MultiSink) SetWorking(working bool) {
	for _, s := range m {
		s.SetWorking(working)
	}
}

func (m MultiSink) Publish(snap payroll.Snapshot) {
	for _, s := range m {
		s.Publish(snap)
	}
}

type nopSink struct{}

func (nopSink) SetTitle(string, bool) {}
func (nopSink) SetWorking(bool) {}
func (nopSink) Publish(payroll.Snapshot) {}
