package store

import (
	"errors"
	"fmt"
	"time"
)

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	StatusActive    GoalStatus = "active"
	StatusCompleted GoalStatus = "completed"
	StatusPaused    GoalStatus = "paused"
	StatusAbandoned GoalStatus = "abandoned"
	StatusAtRisk    GoalStatus = "at_risk"
	StatusFailing   GoalStatus = "failing"
)

// ParseStatus converts user input into a GoalStatus.
func ParseStatus(s string) (GoalStatus, error) {
	switch st := GoalStatus(s); st {
	case StatusActive, StatusCompleted, StatusPaused, StatusAbandoned, StatusAtRisk, StatusFailing:
		return st, nil
	}
	return "", fmt.Errorf("invalid status: %s (use active, completed, paused, abandoned, at_risk or failing)", s)
}

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrGoalExists   = errors.New("goal already exists")
	// ErrStaleWrite is returned by UpdateGoal when the goal changed on disk
	// after the caller read it.
	ErrStaleWrite = errors.New("goal was modified since it was read")
)

// Milestone is the persisted unit behind a scheduled sub-goal.
//
// Month holds the owning "YYYY-MM" key. Older records leave it empty and carry
// the key inside Title as "YYYY-MM|text", or carry no key at all.
type Milestone struct {
	ID          string     `yaml:"id"`
	Month       string     `yaml:"month,omitempty"`
	Title       string     `yaml:"title"`
	TargetDate  string     `yaml:"target_date,omitempty"`
	Completed   bool       `yaml:"completed"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty"`
}

// Goal represents a goal loaded from a goal.md file.
type Goal struct {
	// Frontmatter fields
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Status      GoalStatus  `yaml:"status"`
	Created     time.Time   `yaml:"created"`
	Updated     time.Time   `yaml:"updated"`
	TargetDate  *time.Time  `yaml:"target_date,omitempty"`
	Progress    int         `yaml:"progress"`
	CompletedAt *time.Time  `yaml:"completed_at,omitempty"`
	Version     int         `yaml:"version"`
	Tags        []string    `yaml:"tags,omitempty"`
	Milestones  []Milestone `yaml:"milestones,omitempty"`

	// Parsed from markdown body
	Body string `yaml:"-"`

	// Filesystem metadata (not serialized to YAML)
	FilePath string `yaml:"-"` // absolute path to goal.md
}

// IsComplete returns true if the goal is marked completed.
func (g *Goal) IsComplete() bool {
	return g.Status == StatusCompleted
}

// AcceptsEdits reports whether schedule edits may be synced back to the goal.
// Syncing rewrites status to active or completed, so paused and abandoned
// goals are left alone until they are resumed.
func (g *Goal) AcceptsEdits() bool {
	return g.Status != StatusPaused && g.Status != StatusAbandoned
}

// GoalUpdate is the partial write produced by schedule synchronization.
type GoalUpdate struct {
	Milestones  []Milestone
	Progress    int
	Status      GoalStatus
	CompletedAt *time.Time // set when non-nil
	// ClearCompletedAt removes the goal's completion timestamp.
	ClearCompletedAt bool
	// ExpectedVersion must match the stored version for the write to apply.
	ExpectedVersion int
}
