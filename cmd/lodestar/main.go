package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stefanpenner/lodestar/pkg/config"
	"github.com/stefanpenner/lodestar/pkg/logging"
	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
	"github.com/stefanpenner/lodestar/pkg/tasks"
)

var Version = "dev"

func main() {
	a := newApp(os.Stdout)
	err := a.rootCmd().Execute()
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what every command needs. It is filled in by setup, after flags
// are parsed.
type app struct {
	v       *viper.Viper
	out     io.Writer
	cfgFile string
	jsonOut bool

	cfg    *config.Config
	log    *logging.Logger
	store  *store.Store
	tasks  *tasks.SQLiteStore
	engine *plan.Engine
}

func newApp(out io.Writer) *app {
	return &app{v: viper.New(), out: out}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lodestar",
		Short: "Plan long-term goals month by month",
		Long: `Lodestar breaks a goal with a target date into quarters and months of
sub-goals, tracks completion bottom-up and reports how the goal is doing.

Run without a command to open the terminal UI.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
		RunE:              a.runTUI,
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is <data dir>/"+config.FileName+")")
	flags.String("dir", "", "data directory (default is "+store.DefaultDataDir()+")")
	flags.BoolVar(&a.jsonOut, "json", false, "print JSON")
	_ = a.v.BindPFlag("data_dir", flags.Lookup("dir"))

	root.AddCommand(
		a.goalCmd(),
		a.subgoalCmd(),
		a.healthCmd(),
		a.taskCmd(),
		a.searchCmd(),
		a.initCmd(),
		a.syncCmd(),
	)
	return root
}

func (a *app) setup() error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logging.NewLogger(cfg.DataDir, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.store, err = store.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}
	a.tasks, err = tasks.NewSQLiteStore(cfg.TasksDB())
	if err != nil {
		return err
	}
	a.engine = cfg.NewEngine(a.store, a.log)
	a.log.Debug("lodestar started", "data_dir", cfg.DataDir, "version", Version)
	return nil
}

func (a *app) close() {
	if a.tasks != nil {
		a.tasks.Close()
	}
	if a.log != nil {
		a.log.Close()
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) outputJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadGoal loads id and primes the engine's schedule cache with it.
func (a *app) loadGoal(id string) (*store.Goal, []plan.QuarterBlock, error) {
	g, err := a.store.LoadGoal(id)
	if err != nil {
		return nil, nil, err
	}
	return g, a.engine.Builder.Structure(g), nil
}
