package ticker

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/warp/salary-ticker/settings"
)

const (
	// FrameInterval is the delay between two animation frames.
	FrameInterval = 85 * time.Millisecond

	// FrameCount is the number of frames in one animation cycle.
	FrameCount = 14
)

// Frame identifies one tray icon image.
type Frame struct {
	Theme settings.IconTheme `json:"theme"`
	Index int                `json:"index"`
	Idle  bool               `json:"idle"`
}

// Asset is the icon file name for the frame. The dark theme uses the light
// artwork, which is what stays readable on a dark menubar.
func (f Frame) Asset() string {
	suffix := ""
	if f.Theme == settings.IconDark {
		suffix = "-light"
	}
	if f.Idle {
		return fmt.Sprintf("tray-idle%s.png", suffix)
	}
	return fmt.Sprintf("tray-frame%s-%d.png", suffix, f.Index+1)
}

// FrameSink receives icon updates from the Animator.
type FrameSink interface {
	SetFrame(f Frame)
}

// Animator cycles the tray icon while work is in progress.
//
// At most one frame loop runs at a time. Start while animating and Stop while
// idle are no-ops.
type Animator struct {
	Sink     FrameSink
	Interval time.Duration

	animating  atomic.Bool
	generation atomic.Uint64

	mu    sync.Mutex
	theme settings.IconTheme
	wg    sync.WaitGroup
}

func NewAnimator(sink FrameSink) *Animator {
	return &Animator{
		Sink:     sink,
		Interval: FrameInterval,
		theme:    settings.IconLight,
	}
}

// Animating reports whether the frame loop is running.
func (a *Animator) Animating() bool { return a.animating.Load() }

// Theme returns the frame set currently in use.
func (a *Animator) Theme() settings.IconTheme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// SetTheme switches the frame set. While idle the idle frame is redrawn
// right away; a running loop picks the theme up on its next frame.
func (a *Animator) SetTheme(theme settings.IconTheme) {
	if !theme.Valid() {
		theme = settings.IconLight
	}
	a.mu.Lock()
	changed := a.theme != theme
	a.theme = theme
	a.mu.Unlock()

	if changed && !a.animating.Load() {
		a.Sink.SetFrame(Frame{Theme: theme, Idle: true})
	}
}

// Start launches the frame loop unless it is already running.
func (a *Animator) Start() {
	if !a.animating.CompareAndSwap(false, true) {
		return
	}
	gen := a.generation.Add(1)
	a.wg.Add(1)
	go a.loop(gen)
}

// Stop asks the frame loop to end. The loop restores the idle frame before
// it exits.
func (a *Animator) Stop() {
	a.animating.Store(false)
}

// Wait blocks until every frame loop started so far has exited.
func (a *Animator) Wait() {
	a.wg.Wait()
}

func (a *Animator) loop(gen uint64) {
	defer a.wg.Done()

	interval := a.Interval
	if interval <= 0 {
		interval = FrameInterval
	}

	for i := 0; ; i = (i + 1) % FrameCount {
		if !a.animating.Load() || a.generation.Load() != gen {
			break
		}
		a.Sink.SetFrame(Frame{Theme: a.Theme(), Index: i})
		time.Sleep(interval)
	}

	// A newer loop owns the icon now.
	if a.generation.Load() != gen {
		return
	}
	a.Sink.SetFrame(Frame{Theme: a.Theme(), Idle: true})
}
