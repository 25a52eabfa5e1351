package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Store manages the filesystem-backed goal data.
type Store struct {
	Root string // e.g., ~/.local/share/lodestar
}

// NewStore creates a Store rooted at the given directory.
// It creates the directory structure if it doesn't exist.
func NewStore(root string) (*Store, error) {
	goalsDir := filepath.Join(root, "goals")
	if err := os.MkdirAll(goalsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating goals directory: %w", err)
	}
	return &Store{Root: root}, nil
}

// GoalsDir returns the path to the goals directory.
func (s *Store) GoalsDir() string {
	return filepath.Join(s.Root, "goals")
}

func (s *Store) goalFile(id string) string {
	return filepath.Join(s.GoalsDir(), id, "goal.md")
}

// LoadGoal reads a single goal by id.
func (s *Store) LoadGoal(id string) (*Goal, error) {
	filePath := s.goalFile(id)
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("goal %s: %w", id, ErrGoalNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading goal %s: %w", id, err)
	}

	var modTime time.Time
	if info, err := os.Stat(filePath); err == nil {
		modTime = info.ModTime()
	}

	goal, err := parseGoalFile(string(data), modTime)
	if err != nil {
		return nil, fmt.Errorf("parsing goal %s: %w", id, err)
	}

	// The directory name is authoritative for the id
	goal.ID = id
	goal.FilePath = filePath
	return goal, nil
}

// ListGoals loads every goal, oldest first.
func (s *Store) ListGoals() ([]*Goal, error) {
	entries, err := os.ReadDir(s.GoalsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading goals directory: %w", err)
	}

	var goals []*Goal
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		goal, err := s.LoadGoal(entry.Name())
		if err != nil {
			continue // skip broken goals
		}
		goals = append(goals, goal)
	}

	sort.SliceStable(goals, func(i, j int) bool {
		if goals[i].Created.Equal(goals[j].Created) {
			return goals[i].ID < goals[j].ID
		}
		return goals[i].Created.Before(goals[j].Created)
	})
	return goals, nil
}

// SaveGoal writes a goal to disk as-is, without a version check.
func (s *Store) SaveGoal(g *Goal) error {
	g.Updated = time.Now()

	dir := filepath.Join(s.GoalsDir(), g.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating goal directory: %w", err)
	}

	content, err := SerializeFrontmatter(g)
	if err != nil {
		return fmt.Errorf("serializing goal: %w", err)
	}

	filePath := s.goalFile(g.ID)
	g.FilePath = filePath
	return writeFileAtomic(filePath, []byte(content))
}

// CreateGoal creates a new active goal. The id is a slug of the title.
// A nil target leaves the decomposition window at its default length.
func (s *Store) CreateGoal(title string, target *time.Time) (*Goal, error) {
	title = strings.TrimSpace(title)
	id := Slugify(title)
	if id == "" {
		return nil, fmt.Errorf("goal title %q has no usable characters", title)
	}

	if _, err := os.Stat(filepath.Join(s.GoalsDir(), id)); err == nil {
		return nil, fmt.Errorf("goal %s: %w", id, ErrGoalExists)
	}

	now := time.Now()
	goal := &Goal{
		ID:         id,
		Title:      title,
		Status:     StatusActive,
		Created:    now,
		Updated:    now,
		TargetDate: target,
		Version:    1,
	}

	if err := s.SaveGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateGoal applies a synchronization write to the stored goal. The write is
// rejected with ErrStaleWrite when the stored version differs from
// u.ExpectedVersion; on success the version is incremented.
func (s *Store) UpdateGoal(id string, u GoalUpdate) (*Goal, error) {
	goal, err := s.LoadGoal(id)
	if err != nil {
		return nil, err
	}
	if goal.Version != u.ExpectedVersion {
		return nil, fmt.Errorf("goal %s at version %d, write expected %d: %w",
			id, goal.Version, u.ExpectedVersion, ErrStaleWrite)
	}

	goal.Milestones = u.Milestones
	goal.Progress = u.Progress
	goal.Status = u.Status
	switch {
	case u.CompletedAt != nil:
		goal.CompletedAt = u.CompletedAt
	case u.ClearCompletedAt:
		goal.CompletedAt = nil
	}
	goal.Version++

	if err := s.SaveGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// SetStatus sets a goal's status directly. This is how paused, abandoned,
// at_risk and failing are entered; synchronization only writes active and
// completed.
func (s *Store) SetStatus(id string, status GoalStatus) (*Goal, error) {
	goal, err := s.LoadGoal(id)
	if err != nil {
		return nil, err
	}

	goal.Status = status
	goal.Version++
	if err := s.SaveGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes a goal directory, milestones included.
func (s *Store) DeleteGoal(id string) error {
	dir := filepath.Join(s.GoalsDir(), id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("goal %s: %w", id, ErrGoalNotFound)
	}
	return os.RemoveAll(dir)
}

// AddNote appends a note entry under today's date header in the goal's body.
func (s *Store) AddNote(id, text string) (*Goal, error) {
	goal, err := s.LoadGoal(id)
	if err != nil {
		return nil, err
	}

	dateHeader := "## " + time.Now().Format("2006-01-02")

	if idx := strings.Index(goal.Body, dateHeader); idx >= 0 {
		afterHeader := idx + len(dateHeader)
		nlIdx := strings.Index(goal.Body[afterHeader:], "\n")
		if nlIdx == -1 {
			goal.Body += "\n- " + text + "\n"
		} else {
			insertAt := afterHeader + nlIdx + 1
			goal.Body = goal.Body[:insertAt] + "- " + text + "\n" + goal.Body[insertAt:]
		}
	} else {
		if goal.Body != "" && !strings.HasSuffix(goal.Body, "\n") {
			goal.Body += "\n"
		}
		if goal.Body != "" {
			goal.Body += "\n"
		}
		goal.Body += dateHeader + "\n- " + text + "\n"
	}

	goal.Version++
	if err := s.SaveGoal(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// SearchGoals returns goals whose title, notes or milestone titles contain query.
func (s *Store) SearchGoals(query string) ([]*Goal, error) {
	goals, err := s.ListGoals()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var matches []*Goal
	for _, g := range goals {
		if strings.Contains(strings.ToLower(g.Title), query) ||
			strings.Contains(strings.ToLower(g.Body), query) {
			matches = append(matches, g)
			continue
		}
		for _, m := range g.Milestones {
			if strings.Contains(strings.ToLower(m.Title), query) {
				matches = append(matches, g)
				break
			}
		}
	}
	return matches, nil
}

// Slugify lowercases title and joins its alphanumeric runs with dashes.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
