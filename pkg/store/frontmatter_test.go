package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, g *Goal)
	}{
		{
			name: "goal with milestones and notes",
			input: `---
id: write-a-book
title: "Write a book"
status: active
created: 2024-01-01T09:00:00Z
updated: 2024-01-02T09:00:00Z
target_date: 2024-06-30T00:00:00Z
progress: 50
version: 3
milestones:
  - id: m1
    month: "2024-02"
    title: Draft outline
    target_date: "2024-02-15"
    completed: true
  - id: m2
    title: "2024-03|Chapter one"
    completed: false
---

## 2024-01-02
- picked a title
`,
			check: func(t *testing.T, g *Goal) {
				assert.Equal(t, "Write a book", g.Title)
				assert.Equal(t, StatusActive, g.Status)
				assert.Equal(t, 50, g.Progress)
				assert.Equal(t, 3, g.Version)
				require.NotNil(t, g.TargetDate)
				assert.Equal(t, 2024, g.TargetDate.Year())
				require.Len(t, g.Milestones, 2)
				assert.Equal(t, "2024-02", g.Milestones[0].Month)
				assert.True(t, g.Milestones[0].Completed)
				assert.Equal(t, "", g.Milestones[1].Month)
				assert.Equal(t, "2024-03|Chapter one", g.Milestones[1].Title)
				assert.Contains(t, g.Body, "- picked a title")
			},
		},
		{
			name:  "no frontmatter",
			input: "Just some notes without frontmatter.",
			check: func(t *testing.T, g *Goal) {
				assert.Equal(t, "", g.Title)
				assert.Equal(t, "Just some notes without frontmatter.", g.Body)
				assert.Equal(t, StatusActive, g.Status)
				assert.Equal(t, 1, g.Version)
			},
		},
		{
			name: "hand-written goal",
			input: `---
title: Learn piano
milestones:
  - id: m1
    month: " 2024-02 "
    title: Scales
---
`,
			check: func(t *testing.T, g *Goal) {
				assert.Equal(t, StatusActive, g.Status)
				assert.Equal(t, 1, g.Version)
				assert.Equal(t, "2024-02", g.Milestones[0].Month)
				assert.Empty(t, g.Body)
				assert.WithinDuration(t, time.Now(), g.Created, time.Minute)
			},
		},
		{
			name:  "no created date falls back to updated",
			input: "---\ntitle: Learn piano\nupdated: 2024-03-05T10:00:00Z\n---\n",
			check: func(t *testing.T, g *Goal) {
				assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), g.Created.UTC())
			},
		},
		{
			name:    "unclosed frontmatter",
			input:   "---\ntitle: broken\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseFrontmatter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, g)
		})
	}
}

func TestParseGoalFileUsesModTime(t *testing.T) {
	mod := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

	g, err := parseGoalFile("---\ntitle: Learn piano\n---\n", mod)
	require.NoError(t, err)
	assert.True(t, mod.Equal(g.Created))

	g, err = parseGoalFile("---\ntitle: Learn piano\ncreated: 2024-01-01T00:00:00Z\n---\n", mod)
	require.NoError(t, err)
	assert.Equal(t, 2024, g.Created.Year())
	assert.Equal(t, time.January, g.Created.Month())
}

func TestSerializeFrontmatter(t *testing.T) {
	done := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	target := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	g := &Goal{
		ID:         "write-a-book",
		Title:      "Write a book",
		Status:     StatusActive,
		Created:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		TargetDate: &target,
		Progress:   100,
		Version:    2,
		Milestones: []Milestone{
			{ID: "m1", Month: "2024-02", Title: "Draft outline", TargetDate: "2024-02-15", Completed: true, CompletedAt: &done},
		},
		Body: "## 2024-01-02\n- picked a title\n",
	}

	content, err := SerializeFrontmatter(g)
	require.NoError(t, err)

	parsed, err := ParseFrontmatter(content)
	require.NoError(t, err)
	assert.Equal(t, g.Title, parsed.Title)
	assert.Equal(t, g.Progress, parsed.Progress)
	assert.Equal(t, g.Version, parsed.Version)
	assert.True(t, g.TargetDate.Equal(*parsed.TargetDate))
	require.Len(t, parsed.Milestones, 1)
	assert.Equal(t, "m1", parsed.Milestones[0].ID)
	assert.True(t, done.Equal(*parsed.Milestones[0].CompletedAt))
	assert.Contains(t, parsed.Body, "- picked a title")
}
