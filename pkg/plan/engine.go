package plan

import (
	"errors"
	"fmt"

	"github.com/stefanpenner/lodestar/pkg/store"
	"github.com/stefanpenner/lodestar/pkg/tasks"
)

// ErrGoalLocked is returned when editing a paused or abandoned goal.
var ErrGoalLocked = errors.New("goal is not accepting edits")

// Engine runs a schedule edit and its write-back as one step.
type Engine struct {
	Builder  *Builder
	Syncer   *Syncer
	Analyzer *Analyzer
}

// NewEngine wires a Builder, Syncer and Analyzer around goals.
func NewEngine(goals GoalWriter, b *Builder, syncOpts []SyncerOption, analyzerOpts []AnalyzerOption) *Engine {
	return &Engine{
		Builder:  b,
		Syncer:   NewSyncer(b, goals, syncOpts...),
		Analyzer: NewAnalyzer(b, analyzerOpts...),
	}
}

// Toggle flips one sub-goal of g and writes the result back.
func (e *Engine) Toggle(g *store.Goal, subGoalID string) (*store.Goal, error) {
	if err := checkEditable(g); err != nil {
		return nil, err
	}
	e.Builder.Structure(g)
	quarters, err := e.Builder.ToggleSubGoal(g.ID, subGoalID)
	if err != nil {
		return nil, err
	}
	return e.Syncer.Sync(g, quarters)
}

// Add schedules a new sub-goal in month and writes the result back.
func (e *Engine) Add(g *store.Goal, month, title string) (*store.Goal, SubGoal, error) {
	if err := checkEditable(g); err != nil {
		return nil, SubGoal{}, err
	}
	e.Builder.Structure(g)
	quarters, sg, err := e.Builder.AddSubGoal(g.ID, month, title)
	if err != nil {
		return nil, SubGoal{}, err
	}
	updated, err := e.Syncer.Sync(g, quarters)
	if err != nil {
		return nil, sg, err
	}
	return updated, sg, nil
}

// Health reports on g and its linked tasks.
func (e *Engine) Health(g *store.Goal, linked []tasks.Task) Report {
	return e.Analyzer.Analyze(g, linked)
}

func checkEditable(g *store.Goal) error {
	if !g.AcceptsEdits() {
		return fmt.Errorf("goal %s is %s: %w", g.ID, g.Status, ErrGoalLocked)
	}
	return nil
}
