package ticker

import (
	"sync"

	"github.com/warp/salary-ticker/payroll"
	"github.com/warp/salary-ticker/settings"
)

// TrayState is what a menubar item currently shows.
type TrayState struct {
	Title     string            `json:"title"`
	Visible   bool              `json:"visible"`
	Working   bool              `json:"working"`
	Animating bool              `json:"animating"`
	Frame     Frame             `json:"frame"`
	Asset     string            `json:"asset"`
	Updates   int               `json:"updates"`
	Snapshot  *payroll.Snapshot `json:"snapshot,omitempty"`
}

// TraySink is a headless menubar item. It keeps the last title and icon
// frame, and runs the Animator while work is in progress.
type TraySink struct {
	anim *Animator

	mu      sync.RWMutex
	state   TrayState
	onFrame func(Frame)
}

func NewTraySink() *TraySink {
	t := &TraySink{}
	t.anim = NewAnimator(t)
	t.state.Frame = Frame{Theme: settings.IconLight, Idle: true}
	return t
}

// Animator exposes the icon animator, mainly for tests and shutdown.
func (t *TraySink) Animator() *Animator { return t.anim }

// OnFrame registers a callback for every icon change.
func (t *TraySink) OnFrame(fn func(Frame)) {
	t.mu.Lock()
	t.onFrame = fn
	t.mu.Unlock()
}

// ApplySettings follows the icon theme of the active settings record.
func (t *TraySink) ApplySettings(s *settings.UserSettings) {
	if s == nil {
		return
	}
	t.anim.SetTheme(s.MenubarIconTheme)
}

func (t *TraySink) SetTitle(title string, visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Title = title
	t.state.Visible = visible
	t.state.Updates++
}

func (t *TraySink) SetWorking(working bool) {
	t.mu.Lock()
	t.state.Working = working
	t.mu.Unlock()

	if working {
		t.anim.Start()
	} else {
		t.anim.Stop()
	}
}

func (t *TraySink) Publish(snap payroll.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Snapshot = &snap
}

func (t *TraySink) SetFrame(f Frame) {
	t.mu.Lock()
	t.state.Frame = f
	fn := t.onFrame
	t.mu.Unlock()

	if fn != nil {
		fn(f)
	}
}

// State returns a copy of what the tray shows right now.
func (t *TraySink) State() TrayState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	st := t.state
	st.Animating = t.anim.Animating()
	st.Asset = st.Frame.Asset()
	return st
}

// Close stops the animation and waits for the frame loop to exit.
func (t *TraySink) Close() {
	t.anim.Stop()
	t.anim.Wait()
}
