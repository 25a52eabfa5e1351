// Package config loads lodestar settings from defaults, an optional YAML file,
// LODESTAR_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"github.com/stefanpenner/lodestar/pkg/logging"
	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
	"github.com/stefanpenner/lodestar/pkg/tasks"
)

// EnvPrefix is prepended to every environment override,
// e.g. LODESTAR_SCHEDULE_DEFAULT_MONTHS for schedule.default_months.
const EnvPrefix = "LODESTAR"

// FileName is the config file looked up in the data directory.
const FileName = "config.yaml"

// Config represents the complete lodestar configuration
type Config struct {
	DataDir    string           `mapstructure:"data_dir"`
	Log        LogConfig        `mapstructure:"log"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
	Milestones MilestonesConfig `mapstructure:"milestones"`
	Health     HealthConfig     `mapstructure:"health"`
}

// LogConfig controls the JSON log file.
type LogConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
}

// ScheduleConfig controls how goals are laid out in months.
type ScheduleConfig struct {
	// DefaultMonths is the window for goals without a target date
	DefaultMonths int `mapstructure:"default_months"`
	// MonthSpan is "calendar" or "thirty_day"
	MonthSpan string `mapstructure:"month_span"`
}

// MilestonesConfig controls how schedules are written back to goal files.
type MilestonesConfig struct {
	// Encoding is "structured" or "delimited"
	Encoding string `mapstructure:"encoding"`
	// CompletedAt is "retain" or "clear"
	CompletedAt string `mapstructure:"completed_at"`
}

// HealthConfig controls health analysis.
type HealthConfig struct {
	// RecentDays is how long a completed task counts towards momentum
	RecentDays int `mapstructure:"recent_days"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: store.DefaultDataDir(),
		Log:     LogConfig{Level: logging.LevelInfo},
		Schedule: ScheduleConfig{
			DefaultMonths: plan.DefaultMonths,
			MonthSpan:     string(plan.SpanCalendar),
		},
		Milestones: MilestonesConfig{
			Encoding:    string(plan.EncodingStructured),
			CompletedAt: string(plan.RetainCompletedAt),
		},
		Health: HealthConfig{RecentDays: 7},
	}
}

// SetDefaults registers every default on v so that env overrides of unset
// keys are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("schedule.default_months", d.Schedule.DefaultMonths)
	v.SetDefault("schedule.month_span", d.Schedule.MonthSpan)
	v.SetDefault("milestones.encoding", d.Milestones.Encoding)
	v.SetDefault("milestones.completed_at", d.Milestones.CompletedAt)
	v.SetDefault("health.recent_days", d.Health.RecentDays)
}

// Init prepares v: defaults, environment binding and the config file
// location. An explicit file must exist; otherwise config.yaml in the data
// directory is optional.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigFile(filepath.Join(v.GetString("data_dir"), FileName))
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}

// Load unmarshals v and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// ValidationError represents a single invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d invalid config values:", len(e))
	for _, err := range e {
		sb.WriteString("\n  " + err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the accepted log.level values.
func ValidLogLevels() []string {
	return []string{logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError}
}

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	if c.DataDir == "" {
		errs = append(errs, ValidationError{"data_dir", c.DataDir, "must not be empty"})
	}
	if !slices.Contains(ValidLogLevels(), strings.ToUpper(c.Log.Level)) {
		errs = append(errs, ValidationError{"log.level", c.Log.Level,
			"must be one of " + strings.Join(ValidLogLevels(), ", ")})
	}
	if c.Schedule.DefaultMonths < 1 {
		errs = append(errs, ValidationError{"schedule.default_months", c.Schedule.DefaultMonths, "must be at least 1"})
	}
	if _, err := plan.ParseMonthSpan(c.Schedule.MonthSpan); err != nil {
		errs = append(errs, ValidationError{"schedule.month_span", c.Schedule.MonthSpan, "must be calendar or thirty_day"})
	}
	if _, err := plan.ParseEncoding(c.Milestones.Encoding); err != nil {
		errs = append(errs, ValidationError{"milestones.encoding", c.Milestones.Encoding, "must be structured or delimited"})
	}
	if _, err := plan.ParseCompletedAtPolicy(c.Milestones.CompletedAt); err != nil {
		errs = append(errs, ValidationError{"milestones.completed_at", c.Milestones.CompletedAt, "must be retain or clear"})
	}
	if c.Health.RecentDays < 1 {
		errs = append(errs, ValidationError{"health.recent_days", c.Health.RecentDays, "must be at least 1"})
	}
	return errs
}

// NewEngine builds the schedule engine described by c. c must be valid.
func (c *Config) NewEngine(goals plan.GoalWriter, log *logging.Logger) *plan.Engine {
	span, _ := plan.ParseMonthSpan(c.Schedule.MonthSpan)
	enc, _ := plan.ParseEncoding(c.Milestones.Encoding)
	policy, _ := plan.ParseCompletedAtPolicy(c.Milestones.CompletedAt)

	b := plan.NewBuilder(
		plan.WithDefaultMonths(c.Schedule.DefaultMonths),
		plan.WithMonthSpan(span),
		plan.WithBuilderLogger(log),
	)
	return plan.NewEngine(goals, b,
		[]plan.SyncerOption{
			plan.WithEncoding(enc),
			plan.WithCompletedAtPolicy(policy),
			plan.WithSyncLogger(log),
		},
		[]plan.AnalyzerOption{plan.WithRecentDays(c.Health.RecentDays)},
	)
}

// TasksDB is the SQLite database holding linked tasks.
func (c *Config) TasksDB() string {
	return filepath.Join(c.DataDir, tasks.DBFileName)
}
