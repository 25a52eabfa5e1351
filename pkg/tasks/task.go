// Package tasks stores the work items that can be linked to a goal and feed
// its time-investment and momentum numbers.
package tasks

import (
	"errors"
	"fmt"
	"time"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ParseStatus converts user input into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusTodo, StatusInProgress, StatusDone:
		return st, nil
	}
	return "", fmt.Errorf("invalid task status: %s (use todo, in_progress or done)", s)
}

// ErrTaskNotFound is returned when a task id does not exist.
var ErrTaskNotFound = errors.New("task not found")

// Task is a unit of work, optionally linked to a goal. Times are in minutes.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	LinkedGoalID string     `json:"linked_goal_id,omitempty"`
	Status       Status     `json:"status"`
	TimeEstimate int        `json:"time_estimate"`
	TimeSpent    int        `json:"time_spent"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// IsDone reports whether the task is completed.
func (t Task) IsDone() bool { return t.Status == StatusDone }

// Store persists and retrieves tasks.
type Store interface {
	Create(t *Task) (string, error)
	Get(id string) (*Task, error)
	Update(t *Task) error
	List(filter Filter) ([]*Task, error)
	Delete(id string) error
}

// Filter controls which tasks are returned by List.
type Filter struct {
	LinkedGoalID string
	Status       *Status
	Limit        int
}
