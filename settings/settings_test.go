package settings_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/salary-ticker/payroll"
	"github.com/warp/salary-ticker/settings"
)

func validSettings() settings.UserSettings {
	s := settings.Default()
	s.SalaryAmount = 3_000_000
	s.OnboardingCompleted = true
	return s
}

// =============================================================================
// PARSING
// =============================================================================

func TestParse_AppliesDefaults(t *testing.T) {
	s, err := settings.Parse([]byte(`{"salaryAmount": 3000000, "payDay": 10, "onboardingCompleted": true}`))
	require.NoError(t, err)

	assert.Equal(t, payroll.SalaryMonthly, s.SalaryType)
	assert.Equal(t, int64(3_000_000), s.SalaryAmount)
	assert.Equal(t, 10, s.PayDay)
	assert.Equal(t, payroll.WeekdaySet{1, 2, 3, 4, 5}, s.WorkDays)
	assert.Equal(t, "09:00", s.WorkStartTime)
	assert.Equal(t, "18:00", s.WorkEndTime)
	assert.Equal(t, settings.DisplayDaily, s.MenubarDisplayMode)
	assert.Equal(t, settings.IconLight, s.MenubarIconTheme)
	assert.True(t, s.OnboardingCompleted)
}

func TestParse_ExplicitEmptyWorkDaysStayEmpty(t *testing.T) {
	s, err := settings.Parse([]byte(`{"workDays": []}`))
	require.NoError(t, err)
	assert.Empty(t, s.WorkDays)
}

func TestParse_AllFields(t *testing.T) {
	doc := `{
		"salaryType": "yearly",
		"salaryAmount": 48000000,
		"payDay": 31,
		"workDays": [0, 6],
		"workStartTime": "22:00",
		"workEndTime": "06:00",
		"onboardingCompleted": true,
		"menubarDisplayMode": "accumulated",
		"menubarIconTheme": "dark"
	}`
	s, err := settings.Parse([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	cfg := s.PayrollConfig()
	assert.Equal(t, payroll.SalaryYearly, cfg.SalaryType)
	assert.Equal(t, 4_000_000.0, cfg.MonthlySalary())
	assert.Equal(t, 31, cfg.PayDay)
	assert.Equal(t, payroll.WeekdaySet{0, 6}, cfg.WorkDays)
	assert.Equal(t, "22:00", cfg.WorkStartTime)
	assert.Equal(t, "06:00", cfg.WorkEndTime)
	assert.Equal(t, settings.DisplayAccumulated, s.MenubarDisplayMode)
	assert.Equal(t, settings.IconDark, s.MenubarIconTheme)
}

func TestParse_Malformed(t *testing.T) {
	_, err := settings.Parse([]byte(`{"salaryAmount": "lots"`))
	assert.Error(t, err)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*settings.UserSettings)
		field  string
	}{
		{"zero salary", func(s *settings.UserSettings) { s.SalaryAmount = 0 }, "salaryAmount"},
		{"pay day 0", func(s *settings.UserSettings) { s.PayDay = 0 }, "payDay"},
		{"pay day 32", func(s *settings.UserSettings) { s.PayDay = 32 }, "payDay"},
		{"weekday 7", func(s *settings.UserSettings) { s.WorkDays = payroll.WeekdaySet{1, 7} }, "workDays"},
		{"bad start", func(s *settings.UserSettings) { s.WorkStartTime = "9am" }, "workStartTime"},
		{"same clocks", func(s *settings.UserSettings) { s.WorkEndTime = s.WorkStartTime }, "workEndTime"},
		{"bad type", func(s *settings.UserSettings) { s.SalaryType = "weekly" }, "salaryType"},
		{"bad mode", func(s *settings.UserSettings) { s.MenubarDisplayMode = "hourly" }, "menubarDisplayMode"},
		{"bad theme", func(s *settings.UserSettings) { s.MenubarIconTheme = "neon" }, "menubarIconTheme"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, settings.ErrInvalidSettings)

			var verr *settings.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	assert.NoError(t, validSettings().Validate())
}

func TestValidate_EmptyWorkDaysAllowed(t *testing.T) {
	s := validSettings()
	s.WorkDays = payroll.WeekdaySet{}
	assert.NoError(t, s.Validate())
}

// =============================================================================
// FILE STORE
// =============================================================================

func TestFileStore_LoadMissing(t *testing.T) {
	store := settings.NewFileStore(t.TempDir())
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, settings.ErrNotFound)
}

func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := settings.NewFileStore(filepath.Join(t.TempDir(), "nested"))

	want := validSettings()
	want.PayDay = 10
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not survive the rename")
}

func TestFileStore_SaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := settings.NewFileStore(t.TempDir())

	bad := validSettings()
	bad.PayDay = 0
	assert.ErrorIs(t, store.Save(ctx, bad), settings.ErrInvalidSettings)

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, settings.ErrNotFound, "nothing written")
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user-settings.json"), []byte("{oops"), 0o600))

	_, err := settings.NewFileStore(dir).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, settings.ErrNotFound)
}

func TestFileStore_Reset(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := settings.NewFileStore(dir)
	require.NoError(t, store.Save(ctx, validSettings()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preferences.json"), []byte(`{}`), 0o600))

	require.NoError(t, store.Reset(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, settings.ErrNotFound)
	_, err = os.Stat(filepath.Join(dir, "preferences.json"))
	assert.True(t, os.IsNotExist(err))

	// Resetting twice is fine
	assert.NoError(t, store.Reset(ctx))
}
