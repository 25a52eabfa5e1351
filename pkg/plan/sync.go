package plan

import (
	"fmt"
	"time"

	"github.com/stefanpenner/lodestar/pkg/logging"
	"github.com/stefanpenner/lodestar/pkg/store"
)

// GoalWriter persists synchronization results. *store.Store implements it.
type GoalWriter interface {
	UpdateGoal(id string, u store.GoalUpdate) (*store.Goal, error)
}

// Encoding selects how a sub-goal's month is persisted on its milestone.
type Encoding string

const (
	// EncodingStructured stores the month in Milestone.Month and the plain title.
	EncodingStructured Encoding = "structured"
	// EncodingDelimited stores "YYYY-MM|title" in Milestone.Title, the format
	// older clients read.
	EncodingDelimited Encoding = "delimited"
)

// ParseEncoding validates a configured encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingStructured, EncodingDelimited:
		return Encoding(s), nil
	}
	return "", fmt.Errorf("invalid milestone encoding %q (use structured or delimited)", s)
}

// CompletedAtPolicy decides what happens to completion timestamps when a
// sub-goal or goal becomes incomplete again.
type CompletedAtPolicy string

const (
	// RetainCompletedAt keeps the last completion time.
	RetainCompletedAt CompletedAtPolicy = "retain"
	// ClearCompletedAt removes it.
	ClearCompletedAt CompletedAtPolicy = "clear"
)

// ParseCompletedAtPolicy validates a configured policy name.
func ParseCompletedAtPolicy(s string) (CompletedAtPolicy, error) {
	switch CompletedAtPolicy(s) {
	case RetainCompletedAt, ClearCompletedAt:
		return CompletedAtPolicy(s), nil
	}
	return "", fmt.Errorf("invalid completed_at policy %q (use retain or clear)", s)
}

// Syncer writes edited schedules back to the goal store.
type Syncer struct {
	builder  *Builder
	goals    GoalWriter
	now      func() time.Time
	encoding Encoding
	policy   CompletedAtPolicy
	logger   *logging.Logger
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithEncoding sets the milestone encoding.
func WithEncoding(e Encoding) SyncerOption {
	return func(s *Syncer) { s.encoding = e }
}

// WithCompletedAtPolicy sets the un-completion policy.
func WithCompletedAtPolicy(p CompletedAtPolicy) SyncerOption {
	return func(s *Syncer) { s.policy = p }
}

// WithSyncClock overrides time.Now for goal completion timestamps.
func WithSyncClock(now func() time.Time) SyncerOption {
	return func(s *Syncer) { s.now = now }
}

// WithSyncLogger sets the Syncer's logger.
func WithSyncLogger(l *logging.Logger) SyncerOption {
	return func(s *Syncer) { s.logger = l }
}

// NewSyncer creates a Syncer that refreshes builder's cache after each write.
func NewSyncer(builder *Builder, goals GoalWriter, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		builder:  builder,
		goals:    goals,
		now:      time.Now,
		encoding: EncodingStructured,
		policy:   RetainCompletedAt,
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync flattens quarters into milestones and writes them, with the derived
// progress and status, to goal g. The goal becomes completed exactly when every
// sub-goal is done and at least one exists; otherwise it is written as active.
//
// Callers must not sync goals whose AcceptsEdits is false: the write would
// replace a paused or abandoned status. Engine enforces this.
//
// The write carries the version the cached schedule was built from, so a goal
// changed elsewhere in the meantime is rejected with store.ErrStaleWrite and
// the cache entry stays dirty.
func (s *Syncer) Sync(g *store.Goal, quarters []QuarterBlock) (*store.Goal, error) {
	log := s.logger.WithGoal(g.ID)

	milestones := s.Flatten(quarters)
	progress := GoalProgress(quarters)
	complete := progress == 100 && len(milestones) > 0

	u := store.GoalUpdate{
		Milestones:      milestones,
		Progress:        progress,
		Status:          store.StatusActive,
		ExpectedVersion: g.Version,
	}
	if v, ok := s.builder.cachedVersion(g.ID); ok {
		u.ExpectedVersion = v
	}
	if complete {
		now := s.now()
		u.Status = store.StatusCompleted
		u.CompletedAt = &now
	} else if s.policy == ClearCompletedAt {
		u.ClearCompletedAt = true
	}

	updated, err := s.goals.UpdateGoal(g.ID, u)
	if err != nil {
		log.Error("sync failed", "error", err)
		return nil, fmt.Errorf("syncing goal %s: %w", g.ID, err)
	}

	s.builder.markSynced(g.ID, quarters, updated.Version)
	log.Info("goal synced", "progress", progress, "status", string(u.Status), "milestones", len(milestones))
	return updated, nil
}

// Flatten converts a schedule to its persisted milestone list, preserving
// sub-goal ids and order.
func (s *Syncer) Flatten(quarters []QuarterBlock) []store.Milestone {
	milestones := []store.Milestone{}
	for _, m := range Months(quarters) {
		for _, sg := range m.SubGoals {
			ms := store.Milestone{
				ID:          sg.ID,
				Month:       m.Month,
				Title:       sg.Title,
				TargetDate:  m.Month + "-15",
				Completed:   sg.Completed,
				CompletedAt: sg.CompletedAt,
			}
			if s.encoding == EncodingDelimited {
				ms.Month = ""
				ms.Title = EncodeMilestone(m.Month, sg.Title)
			}
			if !sg.Completed && s.policy == ClearCompletedAt {
				ms.CompletedAt = nil
			}
			milestones = append(milestones, ms)
		}
	}
	return milestones
}
