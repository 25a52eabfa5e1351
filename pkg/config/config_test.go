package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stefanpenner/lodestar/pkg/logging"
	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, cfgFile string) (*Config, error) {
	t.Helper()
	v := viper.New()
	require.NoError(t, Init(v, cfgFile))
	return Load(v)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.Equal(t, 6, cfg.Schedule.DefaultMonths)
	assert.Equal(t, "calendar", cfg.Schedule.MonthSpan)
	assert.Equal(t, "structured", cfg.Milestones.Encoding)
	assert.Equal(t, "retain", cfg.Milestones.CompletedAt)
	assert.Equal(t, 7, cfg.Health.RecentDays)
	assert.Empty(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("LODESTAR_DATA_DIR", t.TempDir())

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Schedule.DefaultMonths)
}

func TestLoadFromDataDirFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LODESTAR_DATA_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
schedule:
  default_months: 12
  month_span: thirty_day
milestones:
  completed_at: clear
`), 0644))

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Schedule.DefaultMonths)
	assert.Equal(t, "thirty_day", cfg.Schedule.MonthSpan)
	assert.Equal(t, "clear", cfg.Milestones.CompletedAt)
	assert.Equal(t, "structured", cfg.Milestones.Encoding)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("health:\n  recent_days: 3\n"), 0644))
	t.Setenv("LODESTAR_HEALTH_RECENT_DAYS", "14")
	t.Setenv("LODESTAR_MILESTONES_ENCODING", "delimited")

	cfg, err := load(t, path)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Health.RecentDays)
	assert.Equal(t, "delimited", cfg.Milestones.Encoding)
}

func TestExplicitFileMustExist(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Schedule.DefaultMonths = 0
	cfg.Schedule.MonthSpan = "weekly"
	cfg.Milestones.Encoding = "csv"
	cfg.Milestones.CompletedAt = "forget"
	cfg.Health.RecentDays = 0

	errs := cfg.Validate()
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		"log.level",
		"schedule.default_months",
		"schedule.month_span",
		"milestones.encoding",
		"milestones.completed_at",
		"health.recent_days",
	}, fields)
	assert.Contains(t, errs.Error(), "6 invalid config values")
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("LODESTAR_DATA_DIR", t.TempDir())
	t.Setenv("LODESTAR_SCHEDULE_MONTH_SPAN", "weekly")

	_, err := load(t, "")
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "schedule.month_span", verrs[0].Field)
}

func TestNewEngine(t *testing.T) {
	cfg := Default()
	cfg.Schedule.DefaultMonths = 9

	e := cfg.NewEngine(nil, logging.NopLogger())
	require.NotNil(t, e.Builder)
	require.NotNil(t, e.Syncer)
	require.NotNil(t, e.Analyzer)
	assert.Equal(t, filepath.Join(cfg.DataDir, "tasks.db"), cfg.TasksDB())

	g := &store.Goal{ID: "someday", Created: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Version: 1}
	assert.Len(t, plan.Months(e.Builder.Structure(g)), 9)
}
