package plan

import (
	"time"

	"github.com/stefanpenner/lodestar/pkg/store"
	"github.com/stefanpenner/lodestar/pkg/tasks"
)

// DefaultRecentWindow is how far back a completed linked task still counts
// towards momentum.
const DefaultRecentWindow = 7 * 24 * time.Hour

// Report summarizes how a goal is going. Every score is 0–100.
type Report struct {
	Consistency       int    `json:"consistency"`
	TimeInvested      int    `json:"time_invested"`
	Momentum          int    `json:"momentum"`
	Progress          int    `json:"progress"`
	RecentCompletions int    `json:"recent_completions"`
	Insight           string `json:"insight"`
}

// Analyzer computes health reports from a goal's schedule and linked tasks.
type Analyzer struct {
	builder *Builder
	now     func() time.Time
	window  time.Duration
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithAnalyzerClock overrides time.Now for the recent-completion window.
func WithAnalyzerClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) { a.now = now }
}

// WithRecentDays sets the recent-completion window in days.
func WithRecentDays(days int) AnalyzerOption {
	return func(a *Analyzer) {
		if days > 0 {
			a.window = time.Duration(days) * 24 * time.Hour
		}
	}
}

// NewAnalyzer creates an Analyzer reading schedules from b.
func NewAnalyzer(b *Builder, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{builder: b, now: time.Now, window: DefaultRecentWindow}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze reports on g using its current (possibly unsynced) schedule.
func (a *Analyzer) Analyze(g *store.Goal, linked []tasks.Task) Report {
	return Evaluate(a.builder.Structure(g), linked, a.now(), a.window)
}

// Evaluate computes a report for quarters. Tasks completed within window
// before now count as recent.
func Evaluate(quarters []QuarterBlock, linked []tasks.Task, now time.Time, window time.Duration) Report {
	var r Report
	r.Progress = GoalProgress(quarters)

	months := Months(quarters)
	planned := 0
	for _, m := range months {
		if len(m.SubGoals) > 0 {
			planned++
		}
	}
	r.Consistency = roundRatio(planned, len(months))

	var spent, estimate int
	cutoff := now.Add(-window)
	for _, t := range linked {
		spent += t.TimeSpent
		estimate += t.TimeEstimate
		if t.IsDone() && t.CompletedAt != nil && t.CompletedAt.After(cutoff) {
			r.RecentCompletions++
		}
	}

	if estimate > 0 {
		r.TimeInvested = min(100, roundRatio(spent, estimate))
	} else {
		// round(progress * 0.6)
		r.TimeInvested = (r.Progress*6 + 5) / 10
	}

	// round(progress*0.5 + recent*15 + consistency*0.3)
	r.Momentum = min(100, (r.Progress*5+r.RecentCompletions*150+r.Consistency*3+5)/10)

	r.Insight = Insight(r)
	return r
}

// Insight picks the one piece of advice that fits r best.
func Insight(r Report) string {
	switch {
	case r.Momentum > 70:
		return "Great momentum! Keep the streak going and you will hit your target date."
	case r.Consistency < 30:
		return "Most months have nothing planned yet. Try breaking this goal down into smaller monthly milestones."
	case r.TimeInvested > r.Progress:
		return "Your time investment is paying off. Progress should follow the hours you have put in."
	case r.Progress > 50:
		return "You're past the halfway point. Stay focused on the remaining milestones."
	default:
		return "Consistency beats intensity. Complete one small milestone each week to build momentum."
	}
}
