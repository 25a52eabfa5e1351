package plan

import (
	"testing"
	"time"

	"github.com/stefanpenner/lodestar/pkg/store"
	"github.com/stefanpenner/lodestar/pkg/tasks"
	"github.com/stretchr/testify/assert"
)

func doneTask(at time.Time) tasks.Task {
	return tasks.Task{Status: tasks.StatusDone, CompletedAt: &at}
}

func evaluate(g *store.Goal, linked ...tasks.Task) Report {
	return Evaluate(newTestBuilder().Structure(g), linked, fixedNow, DefaultRecentWindow)
}

func completeAll(g *store.Goal, n int) *store.Goal {
	for i := 0; i < n && i < len(g.Milestones); i++ {
		g.Milestones[i].Completed = true
	}
	return g
}

// earlyDaysGoal has one of four milestones done, spread over four months.
func earlyDaysGoal() *store.Goal {
	return halfYearGoal(
		store.Milestone{ID: "a", Month: "2024-01", Title: "one", Completed: true},
		store.Milestone{ID: "b", Month: "2024-02", Title: "two"},
		store.Milestone{ID: "c", Month: "2024-03", Title: "three"},
		store.Milestone{ID: "d", Month: "2024-05", Title: "four"},
	)
}

func TestEvaluateEmptyGoal(t *testing.T) {
	r := evaluate(halfYearGoal())
	assert.Equal(t, 0, r.Progress)
	assert.Equal(t, 0, r.Consistency)
	assert.Equal(t, 0, r.TimeInvested)
	assert.Equal(t, 0, r.Momentum)
	assert.Contains(t, r.Insight, "breaking this goal down")
}

func TestEvaluateNoSchedule(t *testing.T) {
	r := Evaluate(nil, nil, fixedNow, DefaultRecentWindow)
	assert.Equal(t, Report{Insight: Insight(Report{})}, r)
}

func TestEvaluateMomentum(t *testing.T) {
	g := completeAll(fourMilestoneGoal(), 4)

	r := evaluate(g)
	assert.Equal(t, 100, r.Progress)
	assert.Equal(t, 67, r.Consistency)
	assert.Equal(t, 60, r.TimeInvested)
	assert.Equal(t, 70, r.Momentum)

	r = evaluate(g, doneTask(fixedNow.Add(-48*time.Hour)))
	assert.Equal(t, 1, r.RecentCompletions)
	assert.Equal(t, 85, r.Momentum)
	assert.Contains(t, r.Insight, "Great momentum")
}

func TestEvaluateMomentumCapped(t *testing.T) {
	recent := doneTask(fixedNow.Add(-time.Hour))
	r := evaluate(fourMilestoneGoal(), recent, recent, recent, recent, recent, recent, recent)
	assert.Equal(t, 100, r.Momentum)
}

func TestEvaluateRecentWindow(t *testing.T) {
	g := fourMilestoneGoal()
	stale := doneTask(fixedNow.Add(-8 * 24 * time.Hour))
	noStamp := tasks.Task{Status: tasks.StatusDone}
	open := tasks.Task{Status: tasks.StatusInProgress, CompletedAt: &fixedNow}
	fresh := doneTask(fixedNow.Add(-6 * 24 * time.Hour))

	r := evaluate(g, stale, noStamp, open, fresh)
	assert.Equal(t, 1, r.RecentCompletions)
}

func TestEvaluateTimeInvested(t *testing.T) {
	g := halfYearGoal(
		store.Milestone{ID: "a", Month: "2024-01", Title: "one"},
		store.Milestone{ID: "b", Month: "2024-02", Title: "two"},
	)

	r := evaluate(g,
		tasks.Task{TimeEstimate: 60, TimeSpent: 30},
		tasks.Task{TimeEstimate: 40, TimeSpent: 20},
	)
	assert.Equal(t, 0, r.Progress)
	assert.Equal(t, 33, r.Consistency)
	assert.Equal(t, 50, r.TimeInvested)
	assert.Equal(t, 10, r.Momentum)
	assert.Contains(t, r.Insight, "paying off")

	r = evaluate(g, tasks.Task{TimeEstimate: 100, TimeSpent: 300})
	assert.Equal(t, 100, r.TimeInvested)

	// spent time without any estimate falls back to progress
	r = evaluate(g, tasks.Task{TimeSpent: 300})
	assert.Equal(t, 0, r.TimeInvested)
}

func TestInsightChain(t *testing.T) {
	tests := []struct {
		name string
		goal *store.Goal
		want string
	}{
		{"sparse schedule", halfYearGoal(store.Milestone{ID: "a", Month: "2024-01", Title: "one"}), "breaking this goal down"},
		{"past halfway", completeAll(fourMilestoneGoal(), 3), "halfway"},
		{"early days", earlyDaysGoal(), "Consistency beats intensity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, evaluate(tt.goal).Insight, tt.want)
		})
	}
}

func TestInsightFirstMatchWins(t *testing.T) {
	// high momentum wins over low consistency
	assert.Contains(t, Insight(Report{Momentum: 80, Consistency: 10}), "Great momentum")
	// low consistency wins over time invested
	assert.Contains(t, Insight(Report{Consistency: 10, TimeInvested: 90, Progress: 60}), "breaking this goal down")
	// time invested wins over halfway
	assert.Contains(t, Insight(Report{Consistency: 50, TimeInvested: 90, Progress: 60}), "paying off")
	// nothing stands out
	assert.Contains(t, Insight(Report{Consistency: 50, Progress: 20, TimeInvested: 10}), "Consistency beats intensity")
}

func TestEvaluateEarlyDays(t *testing.T) {
	r := evaluate(earlyDaysGoal())
	assert.Equal(t, 25, r.Progress)
	assert.Equal(t, 67, r.Consistency)
	assert.Equal(t, 15, r.TimeInvested)
	assert.Equal(t, 33, r.Momentum)
}

func TestAnalyzerUsesUnsyncedEdits(t *testing.T) {
	b := newTestBuilder()
	g := fourMilestoneGoal()
	a := NewAnalyzer(b, WithAnalyzerClock(func() time.Time { return fixedNow }), WithRecentDays(1))

	assert.Equal(t, 75, a.Analyze(g, nil).Progress)

	_, err := b.ToggleSubGoal(g.ID, "d")
	assert.NoError(t, err)
	r := a.Analyze(g, []tasks.Task{doneTask(fixedNow.Add(-48 * time.Hour))})
	assert.Equal(t, 100, r.Progress)
	assert.Equal(t, 0, r.RecentCompletions)
}
