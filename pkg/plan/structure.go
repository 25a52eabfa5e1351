package plan

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stefanpenner/lodestar/pkg/logging"
	"github.com/stefanpenner/lodestar/pkg/store"
)

var (
	ErrGoalNotLoaded   = errors.New("goal schedule not loaded")
	ErrSubGoalNotFound = errors.New("sub-goal not found")
	ErrMonthNotFound   = errors.New("month not in schedule")
	ErrBlankTitle      = errors.New("sub-goal title is blank")
)

// cacheEntry is one goal's in-session schedule. A dirty entry holds edits that
// have not been written back; version is the goal version it was built from or
// last synced to.
type cacheEntry struct {
	quarters []QuarterBlock
	version  int
	dirty    bool
}

// Builder materializes goals into schedules and caches them per goal id.
//
// Cached schedules are write-through: edits mark the entry dirty and the
// Syncer marks it clean again at the version it wrote. A clean entry is
// rebuilt when the stored goal's version moves past it; a dirty entry is
// returned unchanged so in-session edits are never clobbered.
type Builder struct {
	mu            sync.Mutex
	entries       map[string]*cacheEntry
	defaultMonths int
	span          MonthSpan
	now           func() time.Time
	newID         func() string
	logger        *logging.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithDefaultMonths sets the window length for goals without a target date.
func WithDefaultMonths(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.defaultMonths = n
		}
	}
}

// WithMonthSpan sets how target dates are converted to month counts.
func WithMonthSpan(span MonthSpan) BuilderOption {
	return func(b *Builder) { b.span = span }
}

// WithBuilderClock overrides time.Now for completion timestamps.
func WithBuilderClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithIDGenerator overrides the sub-goal id generator.
func WithIDGenerator(newID func() string) BuilderOption {
	return func(b *Builder) { b.newID = newID }
}

// WithBuilderLogger sets the logger used for recovered data problems and no-op edits.
func WithBuilderLogger(l *logging.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder with an empty cache.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		entries:       make(map[string]*cacheEntry),
		defaultMonths: DefaultMonths,
		span:          SpanCalendar,
		now:           time.Now,
		newID:         uuid.NewString,
		logger:        logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Structure returns the schedule for g, building it from g.Milestones on first
// access and serving the cached copy afterwards.
func (b *Builder) Structure(g *store.Goal) []QuarterBlock {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.entries[g.ID]; ok && (e.dirty || e.version >= g.Version) {
		return e.quarters
	}

	quarters := b.materialize(g)
	b.entries[g.ID] = &cacheEntry{quarters: quarters, version: g.Version}
	return quarters
}

// Invalidate drops the cached schedule for goalID, discarding unsynced edits.
func (b *Builder) Invalidate(goalID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, goalID)
}

// IsDirty reports whether goalID has edits that were not written back.
func (b *Builder) IsDirty(goalID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[goalID]
	return ok && e.dirty
}

func (b *Builder) cachedVersion(goalID string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[goalID]
	if !ok {
		return 0, false
	}
	return e.version, true
}

// markSynced records a successful write-back in the same entry the edit came from.
func (b *Builder) markSynced(goalID string, quarters []QuarterBlock, version int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[goalID] = &cacheEntry{quarters: quarters, version: version}
}

// ToggleSubGoal flips the completion of one sub-goal and returns the new
// schedule. The previous schedule value is left untouched.
func (b *Builder) ToggleSubGoal(goalID, subGoalID string) ([]QuarterBlock, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[goalID]
	if !ok {
		return nil, fmt.Errorf("goal %s: %w", goalID, ErrGoalNotLoaded)
	}

	for qi, q := range e.quarters {
		for mi, m := range q.Months {
			for si, sg := range m.SubGoals {
				if sg.ID != subGoalID {
					continue
				}
				subGoals := append([]SubGoal(nil), m.SubGoals...)
				sg.Completed = !sg.Completed
				if sg.Completed {
					now := b.now()
					sg.CompletedAt = &now
				}
				subGoals[si] = sg

				e.quarters = replaceMonth(e.quarters, qi, mi, subGoals)
				e.dirty = true
				return e.quarters, nil
			}
		}
	}

	b.logger.WithGoal(goalID).Warn("toggle ignored, unknown sub-goal", "sub_goal_id", subGoalID)
	return e.quarters, fmt.Errorf("sub-goal %s in goal %s: %w", subGoalID, goalID, ErrSubGoalNotFound)
}

// AddSubGoal appends a new sub-goal with a fresh id to month and returns the
// new schedule along with the created sub-goal.
func (b *Builder) AddSubGoal(goalID, month, title string) ([]QuarterBlock, SubGoal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[goalID]
	if !ok {
		return nil, SubGoal{}, fmt.Errorf("goal %s: %w", goalID, ErrGoalNotLoaded)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return e.quarters, SubGoal{}, ErrBlankTitle
	}

	for qi, q := range e.quarters {
		for mi, m := range q.Months {
			if m.Month != month {
				continue
			}
			sg := SubGoal{ID: b.newID(), Title: title}
			subGoals := make([]SubGoal, 0, len(m.SubGoals)+1)
			subGoals = append(append(subGoals, m.SubGoals...), sg)

			e.quarters = replaceMonth(e.quarters, qi, mi, subGoals)
			e.dirty = true
			return e.quarters, sg, nil
		}
	}

	b.logger.WithGoal(goalID).Warn("add ignored, month outside schedule", "month", month)
	return e.quarters, SubGoal{}, fmt.Errorf("month %s in goal %s: %w", month, goalID, ErrMonthNotFound)
}

// materialize builds a fresh schedule and places every milestone in it.
func (b *Builder) materialize(g *store.Goal) []QuarterBlock {
	log := b.logger.WithGoal(g.ID)
	start := g.Created
	if start.IsZero() {
		// an unstamped goal would otherwise schedule from year one
		start = b.now()
		log.Warn("goal has no created date, scheduling from now")
	}
	quarters := GenerateQuarters(start, TotalMonths(start, g.TargetDate, b.defaultMonths, b.span))

	type slot struct{ q, m int }
	index := make(map[string]slot)
	var keys []string
	for qi, q := range quarters {
		for mi, m := range q.Months {
			index[m.Month] = slot{qi, mi}
			keys = append(keys, m.Month)
		}
	}
	firstKey, lastKey := keys[0], keys[len(keys)-1]

	for _, ms := range g.Milestones {
		month, title := ms.Month, ms.Title
		if month == "" {
			month, title, _ = DecodeMilestone(ms.Title)
		} else if !ValidMonthKey(month) {
			month = ""
		}

		pos, found := index[month]
		switch {
		case month == "":
			log.Debug("legacy milestone placed in first month", "milestone_id", ms.ID)
			pos = index[firstKey]
		case !found && month < firstKey:
			log.Warn("milestone before schedule window, clamped", "milestone_id", ms.ID, "month", month)
			pos = index[firstKey]
		case !found:
			log.Warn("milestone after schedule window, clamped", "milestone_id", ms.ID, "month", month)
			pos = index[lastKey]
		}

		id := ms.ID
		if id == "" {
			id = b.newID()
			log.Warn("milestone without id, assigned one", "milestone_id", id)
		}

		mb := &quarters[pos.q].Months[pos.m]
		mb.SubGoals = append(mb.SubGoals, SubGoal{
			ID:          id,
			Title:       title,
			Completed:   ms.Completed,
			CompletedAt: ms.CompletedAt,
		})
	}
	return quarters
}

// replaceMonth returns a copy of quarters where only quarter qi and its month
// mi are new values; every other block is shared.
func replaceMonth(quarters []QuarterBlock, qi, mi int, subGoals []SubGoal) []QuarterBlock {
	next := append([]QuarterBlock(nil), quarters...)
	months := append([]MonthBlock(nil), quarters[qi].Months...)
	months[mi].SubGoals = subGoals
	next[qi].Months = months
	return next
}
