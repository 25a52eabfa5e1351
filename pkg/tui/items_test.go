package tui

import (
	"testing"

	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoQuarters is Jan–Mar and Apr 2024 with two sub-goals in February.
func twoQuarters() []plan.QuarterBlock {
	return []plan.QuarterBlock{
		{ID: "q1", Label: "Q1 (Jan – Mar)", Months: []plan.MonthBlock{
			{Month: "2024-01", Label: "Jan 2024"},
			{Month: "2024-02", Label: "Feb 2024", SubGoals: []plan.SubGoal{
				{ID: "a", Title: "Draft outline", Completed: true},
				{ID: "b", Title: "Write chapter one"},
			}},
			{Month: "2024-03", Label: "Mar 2024"},
		}},
		{ID: "q2", Label: "Q2 (Apr – Apr)", Months: []plan.MonthBlock{
			{Month: "2024-04", Label: "Apr 2024"},
		}},
	}
}

func fixedSchedule(quarters []plan.QuarterBlock) ScheduleFunc {
	return func(*store.Goal) []plan.QuarterBlock { return quarters }
}

func itemIDs(items []TreeItem) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFlattenWithStatusGroups(t *testing.T) {
	goals := []*store.Goal{
		{ID: "book", Title: "Write a book", Status: store.StatusActive},
		{ID: "run", Title: "Run a marathon", Status: store.StatusPaused},
		{ID: "piano", Title: "Learn piano", Status: store.StatusCompleted},
		{ID: "spanish", Title: "Learn Spanish", Status: store.StatusAtRisk},
		{ID: "boat", Title: "Build a boat", Status: store.StatusAbandoned},
	}

	items := FlattenWithStatusGroups(goals, fixedSchedule(twoQuarters()), map[string]bool{})

	assert.Equal(t, []string{
		"__header_active", "book", "spanish",
		"__header_paused", "run",
		"__header_done", "piano", "boat",
	}, itemIDs(items))

	assert.True(t, items[0].IsSectionHeader())
	assert.Equal(t, SectionActive, items[0].Name)
	assert.Equal(t, "__header_active", items[1].ParentID)
	assert.Equal(t, 1, items[1].Depth)
	assert.True(t, items[1].HasChildren)
	assert.False(t, items[1].IsExpanded)
	assert.Equal(t, 50, items[1].Progress)
}

func TestFlattenSkipsEmptySections(t *testing.T) {
	goals := []*store.Goal{{ID: "book", Title: "Write a book", Status: store.StatusActive}}

	items := FlattenWithStatusGroups(goals, fixedSchedule(twoQuarters()), nil)

	assert.Equal(t, []string{"__header_active", "book"}, itemIDs(items))
}

func TestFlattenExpandsSchedule(t *testing.T) {
	goals := []*store.Goal{{ID: "book", Title: "Write a book", Status: store.StatusActive}}
	expanded := map[string]bool{
		"book":         true,
		"book/q1":      true,
		"book/2024-02": true,
	}

	items := FlattenWithStatusGroups(goals, fixedSchedule(twoQuarters()), expanded)

	assert.Equal(t, []string{
		"__header_active",
		"book",
		"book/q1",
		"book/2024-01",
		"book/2024-02",
		"book/2024-02/a",
		"book/2024-02/b",
		"book/2024-03",
		"book/q2",
	}, itemIDs(items))

	byID := make(map[string]TreeItem)
	for _, it := range items {
		byID[it.ID] = it
	}

	q1 := byID["book/q1"]
	assert.Equal(t, KindQuarter, q1.Kind)
	assert.Equal(t, "Q1 (Jan – Mar)", q1.Name)
	assert.Equal(t, "2024-01", q1.Month)
	assert.Equal(t, 2, q1.Depth)
	assert.Equal(t, 50, q1.Progress)

	jan := byID["book/2024-01"]
	assert.Equal(t, KindMonth, jan.Kind)
	assert.False(t, jan.HasChildren)
	assert.Equal(t, 0, jan.Progress)

	sg := byID["book/2024-02/a"]
	assert.Equal(t, KindSubGoal, sg.Kind)
	assert.Equal(t, "book/2024-02", sg.ParentID)
	assert.Equal(t, "2024-02", sg.Month)
	assert.Equal(t, 4, sg.Depth)
	assert.True(t, sg.SubGoal.Completed)
	assert.Same(t, goals[0], sg.Goal)

	assert.Equal(t, 0, byID["book/q2"].Progress)
	assert.False(t, byID["book/q2"].IsExpanded)
}

func TestExpandAllIDs(t *testing.T) {
	goals := []*store.Goal{{ID: "book"}}

	ids := ExpandAllIDs(goals, fixedSchedule(twoQuarters()))

	assert.Equal(t, map[string]bool{
		"book":         true,
		"book/q1":      true,
		"book/q2":      true,
		"book/2024-02": true,
	}, ids)
}

func TestFilterVisibleItems(t *testing.T) {
	items := []TreeItem{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	got := FilterVisibleItems(items, map[string]bool{"c": true}, map[string]bool{"a": true})

	assert.Equal(t, []string{"a", "c"}, itemIDs(got))
}

func TestTargetMonth(t *testing.T) {
	quarters := twoQuarters()

	tests := []struct {
		name    string
		item    TreeItem
		current string
		want    string
	}{
		{"month row", TreeItem{Kind: KindMonth, Month: "2024-03"}, "2024-01", "2024-03"},
		{"sub-goal row", TreeItem{Kind: KindSubGoal, Month: "2024-02"}, "2024-01", "2024-02"},
		{"quarter row", TreeItem{Kind: KindQuarter, Month: "2024-04"}, "2024-01", "2024-04"},
		{"goal row in window", TreeItem{Kind: KindGoal}, "2024-03", "2024-03"},
		{"goal row before window", TreeItem{Kind: KindGoal}, "2023-11", "2024-01"},
		{"goal row after window", TreeItem{Kind: KindGoal}, "2024-09", "2024-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetMonth(tt.item, quarters, tt.current))
		})
	}

	assert.Empty(t, TargetMonth(TreeItem{Kind: KindGoal}, nil, "2024-01"))
}

func TestParseGoalInput(t *testing.T) {
	title, target, err := ParseGoalInput("Write a book @2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, "Write a book", title)
	require.NotNil(t, target)
	assert.Equal(t, "2024-06-30", target.Format("2006-01-02"))

	title, target, err = ParseGoalInput("  Learn piano  ")
	require.NoError(t, err)
	assert.Equal(t, "Learn piano", title)
	assert.Nil(t, target)

	_, _, err = ParseGoalInput("Learn piano @next-year")
	assert.Error(t, err)
}

func TestQuarterAndMonthLookup(t *testing.T) {
	quarters := twoQuarters()

	assert.Equal(t, "q2", quarterIDFor(quarters, "2024-04"))
	assert.Empty(t, quarterIDFor(quarters, "2024-05"))
	assert.Equal(t, "Feb 2024", monthLabel(quarters, "2024-02"))
	assert.Equal(t, "2024-05", monthLabel(quarters, "2024-05"))
}

func TestProgressLabel(t *testing.T) {
	assert.Equal(t, "  0%", progressLabel(0))
	assert.Equal(t, " 67%", progressLabel(67))
	assert.Equal(t, "100%", progressLabel(100))
}
