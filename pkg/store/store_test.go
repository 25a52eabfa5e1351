package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestCreateGoal(t *testing.T) {
	s := setupTestStore(t)

	target := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	goal, err := s.CreateGoal("Write a Book!", &target)
	require.NoError(t, err)
	assert.Equal(t, "write-a-book", goal.ID)
	assert.Equal(t, "Write a Book!", goal.Title)
	assert.Equal(t, StatusActive, goal.Status)
	assert.Equal(t, 1, goal.Version)

	_, err = os.Stat(filepath.Join(s.GoalsDir(), "write-a-book", "goal.md"))
	assert.NoError(t, err)

	loaded, err := s.LoadGoal("write-a-book")
	require.NoError(t, err)
	require.NotNil(t, loaded.TargetDate)
	assert.True(t, target.Equal(*loaded.TargetDate))
}

func TestCreateGoalDuplicate(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateGoal("run a marathon", nil)
	require.NoError(t, err)

	_, err = s.CreateGoal("Run a Marathon", nil)
	assert.ErrorIs(t, err, ErrGoalExists)
}

func TestCreateGoalBlankTitle(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateGoal("  !!  ", nil)
	assert.Error(t, err)
}

func TestLoadGoalMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.LoadGoal("nope")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestLoadGoalWithoutCreatedDate(t *testing.T) {
	s := setupTestStore(t)
	dir := filepath.Join(s.GoalsDir(), "learn-piano")
	require.NoError(t, os.MkdirAll(dir, 0755))
	file := filepath.Join(dir, "goal.md")
	require.NoError(t, os.WriteFile(file, []byte("---\ntitle: Learn piano\ntarget_date: 2025-06-01T00:00:00Z\n---\n"), 0644))
	mod := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(file, mod, mod))

	g, err := s.LoadGoal("learn-piano")
	require.NoError(t, err)
	assert.True(t, mod.Equal(g.Created), "created %s", g.Created)
}

func TestListGoals(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateGoal("first", nil)
	require.NoError(t, err)
	_, err = s.CreateGoal("second", nil)
	require.NoError(t, err)

	goals, err := s.ListGoals()
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "first", goals[0].ID)
	assert.Equal(t, "second", goals[1].ID)
}

func TestUpdateGoal(t *testing.T) {
	s := setupTestStore(t)

	goal, err := s.CreateGoal("learn piano", nil)
	require.NoError(t, err)

	done := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	updated, err := s.UpdateGoal(goal.ID, GoalUpdate{
		Milestones: []Milestone{
			{ID: "m1", Month: "2024-02", Title: "scales", TargetDate: "2024-02-15", Completed: true},
		},
		Progress:        100,
		Status:          StatusCompleted,
		CompletedAt:     &done,
		ExpectedVersion: goal.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	reloaded, err := s.LoadGoal(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, reloaded.Progress)
	assert.Equal(t, StatusCompleted, reloaded.Status)
	require.NotNil(t, reloaded.CompletedAt)
	assert.True(t, done.Equal(*reloaded.CompletedAt))
	require.Len(t, reloaded.Milestones, 1)
	assert.Equal(t, "scales", reloaded.Milestones[0].Title)
}

func TestUpdateGoalStaleWrite(t *testing.T) {
	s := setupTestStore(t)

	goal, err := s.CreateGoal("learn piano", nil)
	require.NoError(t, err)

	// Another writer gets there first
	_, err = s.AddNote(goal.ID, "bought a keyboard")
	require.NoError(t, err)

	_, err = s.UpdateGoal(goal.ID, GoalUpdate{Status: StatusActive, ExpectedVersion: goal.Version})
	assert.ErrorIs(t, err, ErrStaleWrite)
}

func TestUpdateGoalClearCompletedAt(t *testing.T) {
	s := setupTestStore(t)

	goal, err := s.CreateGoal("learn piano", nil)
	require.NoError(t, err)

	done := time.Now()
	goal, err = s.UpdateGoal(goal.ID, GoalUpdate{Status: StatusCompleted, Progress: 100, CompletedAt: &done, ExpectedVersion: goal.Version})
	require.NoError(t, err)

	goal, err = s.UpdateGoal(goal.ID, GoalUpdate{Status: StatusActive, ClearCompletedAt: true, ExpectedVersion: goal.Version})
	require.NoError(t, err)
	assert.Nil(t, goal.CompletedAt)
}

func TestSetStatus(t *testing.T) {
	s := setupTestStore(t)

	goal, err := s.CreateGoal("test", nil)
	require.NoError(t, err)
	assert.True(t, goal.AcceptsEdits())

	goal, err = s.SetStatus("test", StatusPaused)
	require.NoError(t, err)
	assert.False(t, goal.AcceptsEdits())

	goal, err = s.LoadGoal("test")
	require.NoError(t, err)
	assert.Equal(t, StatusPaused, goal.Status)
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("at_risk")
	require.NoError(t, err)
	assert.Equal(t, StatusAtRisk, st)

	_, err = ParseStatus("sleeping")
	assert.Error(t, err)
}

func TestAddNote(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateGoal("test", nil)
	require.NoError(t, err)

	goal, err := s.AddNote("test", "First note")
	require.NoError(t, err)
	assert.Contains(t, goal.Body, "- First note")

	goal, err = s.AddNote("test", "Second note")
	require.NoError(t, err)
	assert.Contains(t, goal.Body, "- First note")
	assert.Contains(t, goal.Body, "- Second note")
}

func TestDeleteGoal(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateGoal("test", nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteGoal("test"))

	_, err = s.LoadGoal("test")
	assert.ErrorIs(t, err, ErrGoalNotFound)

	assert.ErrorIs(t, s.DeleteGoal("test"), ErrGoalNotFound)
}

func TestSearchGoals(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateGoal("project a", nil)
	require.NoError(t, err)
	_, err = s.AddNote("project-a", "Fix the authentication bug")
	require.NoError(t, err)

	b, err := s.CreateGoal("project b", nil)
	require.NoError(t, err)
	_, err = s.UpdateGoal(b.ID, GoalUpdate{
		Milestones:      []Milestone{{ID: "m1", Month: "2024-01", Title: "Write documentation"}},
		Status:          StatusActive,
		ExpectedVersion: b.Version,
	})
	require.NoError(t, err)

	matches, err := s.SearchGoals("authentication")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "project-a", matches[0].ID)

	matches, err = s.SearchGoals("documentation")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "project-b", matches[0].ID)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "write-a-book", Slugify("  Write a Book!  "))
	assert.Equal(t, "q3-2024-launch", Slugify("Q3 / 2024 launch"))
	assert.Equal(t, "", Slugify("!!"))
}
