package ticker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/salary-ticker/payroll"
	"github.com/warp/salary-ticker/recovery"
	"github.com/warp/salary-ticker/settings"
	"github.com/warp/salary-ticker/ticker"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// memStore is a settings.Store without validation so tests can feed records
// the file store would refuse.
type memStore struct {
	mu    sync.Mutex
	s     *settings.UserSettings
	err   error
	loads int
}

func (m *memStore) Load(ctx context.Context) (*settings.UserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	if m.s == nil {
		return nil, settings.ErrNotFound
	}
	cp := *m.s
	return &cp, nil
}

func (m *memStore) Save(ctx context.Context, s settings.UserSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = &s
	return nil
}

func (m *memStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}

type titleCall struct {
	Title   string
	Visible bool
}

type recordingSink struct {
	mu        sync.Mutex
	titles    []titleCall
	working   []bool
	published []payroll.Snapshot
}

func (r *recordingSink) SetTitle(title string, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, titleCall{title, visible})
}

func (r *recordingSink) SetWorking(working bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.working = append(r.working, working)
}

func (r *recordingSink) Publish(snap payroll.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, snap)
}

func (r *recordingSink) publishCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.published)
}

func onboarded() settings.UserSettings {
	s := settings.Default()
	s.SalaryAmount = 3_000_000
	s.OnboardingCompleted = true
	s.MenubarDisplayMode = settings.DisplayDaily
	return s
}

// fakeClock hands out a fixed time that tests move forward by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fixture struct {
	store     *memStore
	overrides *recovery.Overrides
	sink      *recordingSink
	signals   *ticker.Signals
	clock     *fakeClock
	ticker    *ticker.Ticker
}

func newFixture(t *testing.T, s *settings.UserSettings) *fixture {
	t.Helper()
	f := &fixture{
		store:     &memStore{s: s},
		overrides: recovery.NewOverrides(recovery.NewFileStore(t.TempDir())),
		sink:      &recordingSink{},
		signals:   ticker.NewSignals(),
		// Monday 2025-02-10 10:00:00
		clock: &fakeClock{now: time.Date(2025, 2, 10, 10, 0, 0, 0, time.Local)},
	}
	f.ticker = ticker.NewTicker(f.store, f.overrides, f.sink, f.signals)
	f.ticker.Clock = f.clock.Now
	return f
}

func ptr[T any](v T) *T { return &v }

// =============================================================================
// STEP
// =============================================================================

func TestStep_PublishesSnapshot(t *testing.T) {
	// GIVEN: onboarded settings, Monday 10:00
	f := newFixture(t, ptr(onboarded()))

	// WHEN: one tick
	ok := f.ticker.Step(context.Background())

	// THEN: title, working flag and snapshot are all pushed
	require.True(t, ok)
	require.Len(t, f.sink.published, 1)
	assert.Equal(t, payroll.StatusWorking, f.sink.published[0].WorkStatus)
	assert.Equal(t, []titleCall{{" 15,873원", true}}, f.sink.titles)
	assert.Equal(t, []bool{true}, f.sink.working)

	latest := f.ticker.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, f.sink.published[0], *latest)
}

func TestStep_TitleAndWorkingOnlyPushedOnChange(t *testing.T) {
	// GIVEN: accumulation hidden, so the title never changes
	s := onboarded()
	s.MenubarDisplayMode = settings.DisplayNone
	f := newFixture(t, &s)
	ctx := context.Background()

	// WHEN: several ticks inside the shift
	for i := 0; i < 5; i++ {
		f.clock.Set(time.Date(2025, 2, 10, 10, 0, i, 0, time.Local))
		require.True(t, f.ticker.Step(ctx))
	}

	// THEN: hidden title never pushed, working pushed once, snapshot every tick
	assert.Empty(t, f.sink.titles)
	assert.Equal(t, []bool{true}, f.sink.working)
	assert.Len(t, f.sink.published, 5)
}

func TestStep_TitleFollowsEarnings(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	ctx := context.Background()

	f.ticker.Step(ctx)
	f.clock.Set(time.Date(2025, 2, 10, 10, 0, 1, 0, time.Local))
	f.ticker.Step(ctx)

	assert.Equal(t, []titleCall{{" 15,873원", true}, {" 15,877원", true}}, f.sink.titles)
}

func TestStep_WorkingFlipsAtShiftEnd(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	ctx := context.Background()

	f.clock.Set(time.Date(2025, 2, 10, 17, 59, 59, 0, time.Local))
	f.ticker.Step(ctx)
	f.clock.Set(time.Date(2025, 2, 10, 18, 0, 0, 0, time.Local))
	f.ticker.Step(ctx)
	f.clock.Set(time.Date(2025, 2, 10, 18, 0, 1, 0, time.Local))
	f.ticker.Step(ctx)

	assert.Equal(t, []bool{true, false}, f.sink.working)
	assert.Equal(t, payroll.StatusCompleted, f.ticker.Latest().WorkStatus)
}

func TestStep_InertWithoutOnboarding(t *testing.T) {
	s := onboarded()
	s.OnboardingCompleted = false
	f := newFixture(t, &s)

	assert.False(t, f.ticker.Step(context.Background()))
	assert.Empty(t, f.sink.published)
	assert.Nil(t, f.ticker.Latest())
}

func TestStep_InertWithoutSettings(t *testing.T) {
	f := newFixture(t, nil)

	assert.False(t, f.ticker.Step(context.Background()))
	assert.Empty(t, f.sink.published)
	assert.Empty(t, f.sink.working)
}

func TestStep_SkipLeavesDisplayUntouched(t *testing.T) {
	// GIVEN: a first good tick
	f := newFixture(t, ptr(onboarded()))
	ctx := context.Background()
	require.True(t, f.ticker.Step(ctx))
	before := *f.ticker.Latest()

	// WHEN: settings change to a record with no work days at all
	broken := onboarded()
	broken.WorkDays = payroll.WeekdaySet{}
	require.NoError(t, f.store.Save(ctx, broken))
	f.signals.NotifySettingsChanged()
	f.clock.Set(time.Date(2025, 2, 10, 10, 0, 5, 0, time.Local))

	// THEN: nothing is pushed and the previous snapshot stays
	assert.False(t, f.ticker.Step(ctx))
	assert.Len(t, f.sink.published, 1)
	assert.Len(t, f.sink.titles, 1)
	assert.Equal(t, before, *f.ticker.Latest())
}

// =============================================================================
// SETTINGS RELOAD
// =============================================================================

func TestStep_ReloadsOnlyWhenSignalled(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	ctx := context.Background()

	f.ticker.Step(ctx)
	f.ticker.Step(ctx)
	assert.Equal(t, 1, f.store.loads, "settings are cached between ticks")

	// Hide the title, but do not signal yet.
	hidden := onboarded()
	hidden.MenubarDisplayMode = settings.DisplayNone
	require.NoError(t, f.store.Save(ctx, hidden))
	f.ticker.Step(ctx)
	assert.True(t, f.sink.titles[len(f.sink.titles)-1].Visible)

	// Two notifications collapse into a single reload.
	f.signals.NotifySettingsChanged()
	f.signals.NotifySettingsChanged()
	f.ticker.Step(ctx)
	f.ticker.Step(ctx)

	assert.Equal(t, 2, f.store.loads)
	assert.Equal(t, titleCall{"", false}, f.sink.titles[len(f.sink.titles)-1])
}

func TestStep_ReloadErrorKeepsPrevious(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	ctx := context.Background()
	require.True(t, f.ticker.Step(ctx))

	f.store.err = errors.New("disk on fire")
	f.signals.NotifySettingsChanged()
	assert.True(t, f.ticker.Step(ctx), "previous settings still in effect")
}

func TestStep_ResetMakesLoopInert(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	ctx := context.Background()
	require.True(t, f.ticker.Step(ctx))

	require.NoError(t, f.store.Reset(ctx))
	f.signals.NotifySettingsChanged()
	assert.False(t, f.ticker.Step(ctx))
}

func TestStep_OnSettingsCallback(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	var seen []*settings.UserSettings
	f.ticker.OnSettings = func(s *settings.UserSettings) { seen = append(seen, s) }

	f.ticker.Step(context.Background())
	require.Len(t, seen, 1)
	require.NotNil(t, seen[0])
	assert.Equal(t, int64(3_000_000), seen[0].SalaryAmount)
}

// =============================================================================
// OVERRIDES - read fresh every tick
// =============================================================================

func TestStep_VacationToday(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	ctx := context.Background()
	require.True(t, f.ticker.Step(ctx))

	today := payroll.NewDate(2025, time.February, 10)
	require.NoError(t, f.overrides.SetVacation(ctx, today))
	require.True(t, f.ticker.Step(ctx))

	snap := f.ticker.Latest()
	assert.Equal(t, payroll.StatusDayOff, snap.WorkStatus)
	assert.InDelta(t, snap.DailyRate, snap.TodayEarnings, 1e-6)
	assert.Equal(t, []bool{true, false}, f.sink.working)
	assert.Equal(t, titleCall{"", false}, f.sink.titles[len(f.sink.titles)-1])

	// Clearing it brings the shift back on the very next tick.
	require.NoError(t, f.overrides.ClearVacation(ctx))
	require.True(t, f.ticker.Step(ctx))
	assert.Equal(t, payroll.StatusWorking, f.ticker.Latest().WorkStatus)
}

func TestStep_ScheduleOverrideOnSaturday(t *testing.T) {
	// GIVEN: Saturday, normally a day off
	f := newFixture(t, ptr(onboarded()))
	ctx := context.Background()
	f.clock.Set(time.Date(2025, 2, 15, 11, 0, 0, 0, time.Local))

	require.True(t, f.ticker.Step(ctx))
	assert.Equal(t, payroll.StatusDayOff, f.ticker.Latest().WorkStatus)

	// WHEN: a one-day schedule is set for today
	require.NoError(t, f.overrides.SetTodaySchedule(ctx, payroll.NewDate(2025, time.February, 15), "10:00", "14:00"))
	require.True(t, f.ticker.Step(ctx))

	// THEN: today counts as a work day with the override's hours
	snap := f.ticker.Latest()
	assert.True(t, snap.IsWorkDay)
	assert.Equal(t, payroll.StatusWorking, snap.WorkStatus)
	assert.InDelta(t, snap.DailyRate/4, snap.HourlyRate, 1e-6)
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestRun_StopsOnCancel(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	f.ticker.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.ticker.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return f.sink.publishCount() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStartStop(t *testing.T) {
	f := newFixture(t, ptr(onboarded()))
	f.ticker.Interval = 5 * time.Millisecond

	f.ticker.Start()
	f.ticker.Start()
	assert.Eventually(t, func() bool { return f.ticker.Latest() != nil }, time.Second, 5*time.Millisecond)
	f.ticker.Stop()

	n := f.sink.publishCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, f.sink.publishCount(), "no ticks after Stop")
	f.ticker.Stop()
}

// =============================================================================
// DISPLAY TITLE
// =============================================================================

func TestDisplayTitle(t *testing.T) {
	snap := payroll.Snapshot{
		TodayEarnings:       15_873.9,
		AccumulatedEarnings: 1_443_650.4,
		WorkStatus:          payroll.StatusWorking,
	}

	tests := []struct {
		name        string
		mode        settings.DisplayMode
		status      payroll.WorkStatus
		wantTitle   string
		wantVisible bool
	}{
		{"daily", settings.DisplayDaily, payroll.StatusWorking, " 15,873원", true},
		{"accumulated", settings.DisplayAccumulated, payroll.StatusWorking, " 1,443,650원", true},
		{"none", settings.DisplayNone, payroll.StatusWorking, "", false},
		{"unknown mode", settings.DisplayMode("weekly"), payroll.StatusWorking, "", false},
		{"day off hides", settings.DisplayDaily, payroll.StatusDayOff, "", false},
		{"before work shows", settings.DisplayAccumulated, payroll.StatusBeforeWork, " 1,443,650원", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := snap
			s.WorkStatus = tt.status
			title, visible := ticker.DisplayTitle(tt.mode, s)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantVisible, visible)
		})
	}
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := ticker.MultiSink{a, b}

	m.SetTitle("x", true)
	m.SetWorking(true)
	m.Publish(payroll.Snapshot{WorkedDays: 3})

	for _, r := range []*recordingSink{a, b} {
		assert.Equal(t, []titleCall{{"x", true}}, r.titles)
		assert.Equal(t, []bool{true}, r.working)
		assert.Len(t, r.published, 1)
	}
}
