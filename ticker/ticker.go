/*
ticker.go - The once-per-second salary loop

PURPOSE:
  Drives payroll.Calculate from the wall clock and pushes the result to the
  presentation layer. This is the only stateful piece between the stores and
  the UI.

DESIGN:
  - One tick per Interval (default: 1 second), first tick immediately
  - Settings are cached and only reloaded when Signals says they changed
  - Vacation and schedule overrides are read fresh on every tick
  - Title and working flag are pushed only when they change
  - The snapshot is published on every tick that produced one
  - Skip outcomes (degenerate shift, no work days) leave everything as is

USAGE:
  t := NewTicker(settingsStore, overrides, sink, signals)
  t.Start()
  // ... later
  t.Stop()

SEE ALSO:
  - payroll/calculator.go: The computation itself
  - sink.go: Where side effects go
  - signals.go: Settings-changed flag
*/
package ticker

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/warp/salary-ticker/payroll"
	"github.com/warp/salary-ticker/recovery"
	"github.com/warp/salary-ticker/settings"
)

// DefaultInterval is the tick period.
const DefaultInterval = time.Second

// Ticker recomputes the salary snapshot on a fixed interval.
type Ticker struct {
	Settings  settings.Store
	Overrides *recovery.Overrides
	Sink      Sink
	Signals   *Signals
	Interval  time.Duration

	// Clock returns local wall-clock time. Tests replace it.
	Clock func() time.Time

	// OnSettings, if set, is called after every settings (re)load with the
	// record now in effect (nil when none is stored).
	OnSettings func(*settings.UserSettings)

	current *settings.UserSettings
	loaded  bool

	// Change-diff state. The title starts hidden, the working flag unknown.
	lastTitle   string
	lastVisible bool
	lastWorking *bool
	lastSkip    string

	latest atomic.Pointer[payroll.Snapshot]

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	stepMu sync.Mutex
}

// NewTicker creates a ticker. A nil sink discards side effects; nil signals
// means settings are loaded once and never reloaded.
func NewTicker(store settings.Store, overrides *recovery.Overrides, sink Sink, signals *Signals) *Ticker {
	if sink == nil {
		sink = nopSink{}
	}
	if signals == nil {
		signals = NewSignals()
	}
	return &Ticker{
		Settings:  store,
		Overrides: overrides,
		Sink:      sink,
		Signals:   signals,
		Interval:  DefaultInterval,
		Clock:     time.Now,
	}
}

// ===== LIFECYCLE =====

// Start runs the loop in a background goroutine. Calling Start twice is a no-op.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.Run(ctx)
	}()

	log.Printf("[Ticker] Started with interval: %v", t.Interval)
}

// Stop cancels the loop and waits for the current tick to finish.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.wg.Wait()
		t.cancel = nil
		log.Println("[Ticker] Stopped")
	}
}

// Run ticks until ctx is done. The first tick happens immediately.
func (t *Ticker) Run(ctx context.Context) {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()

	t.Step(ctx)
	for {
		select {
		case <-tk.C:
			t.Step(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Latest returns the most recent snapshot, or nil before the first one.
func (t *Ticker) Latest() *payroll.Snapshot {
	return t.latest.Load()
}

// ===== ONE TICK =====

// Step performs a single tick and reports whether a snapshot was published.
func (t *Ticker) Step(ctx context.Context) bool {
	t.stepMu.Lock()
	defer t.stepMu.Unlock()

	if !t.loaded || t.Signals.takeSettingsChanged() {
		t.reload(ctx)
	}

	s := t.current
	if s == nil || !s.OnboardingCompleted {
		return false
	}

	now := t.Clock()
	today := payroll.DateOf(now)

	in := payroll.TickInput{
		Config: s.PayrollConfig(),
		Now:    now,
	}
	if t.Overrides != nil {
		in.OnVacation = t.Overrides.VacationOn(ctx, today)
		in.Override = t.Overrides.ScheduleOn(ctx, today)
	}

	snap, err := payroll.Calculate(in)
	if err != nil {
		t.logSkip(err)
		return false
	}
	t.lastSkip = ""

	title, visible := DisplayTitle(s.MenubarDisplayMode, snap)
	if title != t.lastTitle || visible != t.lastVisible {
		t.lastTitle, t.lastVisible = title, visible
		t.Sink.SetTitle(title, visible)
	}

	working := snap.IsWorking()
	if t.lastWorking == nil || *t.lastWorking != working {
		t.lastWorking = &working
		t.Sink.SetWorking(working)
	}

	t.latest.Store(&snap)
	t.Sink.Publish(snap)
	return true
}

// reload replaces the cached settings. A missing record makes the loop inert;
// any other failure keeps the previous record.
func (t *Ticker) reload(ctx context.Context) {
	t.loaded = true
	if t.Settings == nil {
		return
	}

	s, err := t.Settings.Load(ctx)
	switch {
	case errors.Is(err, settings.ErrNotFound):
		t.current = nil
	case err != nil:
		log.Printf("[Ticker] Error loading settings, keeping previous: %v", err)
		return
	default:
		t.current = s
	}

	if t.OnSettings != nil {
		t.OnSettings(t.current)
	}
}

func (t *Ticker) logSkip(err error) {
	msg := err.Error()
	if msg == t.lastSkip {
		return
	}
	t.lastSkip = msg
	if payroll.IsSkip(err) {
		log.Printf("[Ticker] Skipping tick: %v", err)
		return
	}
	log.Printf("[Ticker] Error calculating tick: %v", err)
}
