package tui

import (
	"fmt"
	"strings"

	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
)

// ItemKind identifies what a tree row shows.
type ItemKind int

const (
	KindHeader ItemKind = iota
	KindGoal
	KindQuarter
	KindMonth
	KindSubGoal
)

// TreeItem is one row of the flattened goal/schedule tree.
type TreeItem struct {
	ID          string // "goal", "goal/q1", "goal/2024-02", "goal/2024-02/<sub-goal id>"
	ParentID    string
	Name        string
	Kind        ItemKind
	Goal        *store.Goal
	Month       string // set for months and sub-goals
	SubGoal     plan.SubGoal
	Progress    int
	Depth       int
	HasChildren bool
	IsExpanded  bool
}

// IsSectionHeader reports whether the row is a status group header.
func (t TreeItem) IsSectionHeader() bool { return t.Kind == KindHeader }

// ScheduleFunc returns the current schedule of a goal.
type ScheduleFunc func(*store.Goal) []plan.QuarterBlock

// Section names, in display order.
const (
	SectionActive = "ACTIVE"
	SectionPaused = "PAUSED"
	SectionDone   = "DONE"
)

func sectionOf(g *store.Goal) string {
	switch g.Status {
	case store.StatusPaused:
		return SectionPaused
	case store.StatusCompleted, store.StatusAbandoned:
		return SectionDone
	default:
		return SectionActive
	}
}

// FlattenWithStatusGroups groups goals under ACTIVE / PAUSED / DONE headers
// and expands each goal's schedule according to expandedState.
func FlattenWithStatusGroups(goals []*store.Goal, schedule ScheduleFunc, expandedState map[string]bool) []TreeItem {
	groups := make(map[string][]*store.Goal)
	for _, g := range goals {
		s := sectionOf(g)
		groups[s] = append(groups[s], g)
	}

	var result []TreeItem
	for _, section := range []string{SectionActive, SectionPaused, SectionDone} {
		if len(groups[section]) == 0 {
			continue
		}
		headerID := "__header_" + strings.ToLower(section)
		result = append(result, TreeItem{
			ID:   headerID,
			Name: section,
			Kind: KindHeader,
			Goal: &store.Goal{},
		})
		for _, g := range groups[section] {
			flattenGoal(g, schedule(g), headerID, expandedState, &result)
		}
	}
	return result
}

func flattenGoal(g *store.Goal, quarters []plan.QuarterBlock, parentID string, expandedState map[string]bool, result *[]TreeItem) {
	goalItem := TreeItem{
		ID:          g.ID,
		ParentID:    parentID,
		Name:        g.Title,
		Kind:        KindGoal,
		Goal:        g,
		Progress:    plan.GoalProgress(quarters),
		Depth:       1,
		HasChildren: len(quarters) > 0,
		IsExpanded:  expandedState[g.ID],
	}
	*result = append(*result, goalItem)
	if !goalItem.IsExpanded {
		return
	}

	for _, q := range quarters {
		qItem := TreeItem{
			ID:          g.ID + "/" + q.ID,
			ParentID:    g.ID,
			Name:        q.Label,
			Kind:        KindQuarter,
			Goal:        g,
			Month:       q.Months[0].Month,
			Progress:    plan.QuarterProgress(q),
			Depth:       2,
			HasChildren: true,
			IsExpanded:  expandedState[g.ID+"/"+q.ID],
		}
		*result = append(*result, qItem)
		if !qItem.IsExpanded {
			continue
		}

		for _, m := range q.Months {
			mItem := TreeItem{
				ID:          g.ID + "/" + m.Month,
				ParentID:    qItem.ID,
				Name:        m.Label,
				Kind:        KindMonth,
				Goal:        g,
				Month:       m.Month,
				Progress:    plan.MonthProgress(m),
				Depth:       3,
				HasChildren: len(m.SubGoals) > 0,
				IsExpanded:  expandedState[g.ID+"/"+m.Month],
			}
			*result = append(*result, mItem)
			if !mItem.IsExpanded {
				continue
			}

			for _, sg := range m.SubGoals {
				*result = append(*result, TreeItem{
					ID:       mItem.ID + "/" + sg.ID,
					ParentID: mItem.ID,
					Name:     sg.Title,
					Kind:     KindSubGoal,
					Goal:     g,
					Month:    m.Month,
					SubGoal:  sg,
					Depth:    4,
				})
			}
		}
	}
}

// ExpandAllIDs returns the ids of every expandable row of goals.
func ExpandAllIDs(goals []*store.Goal, schedule ScheduleFunc) map[string]bool {
	ids := make(map[string]bool)
	for _, g := range goals {
		ids[g.ID] = true
		for _, q := range schedule(g) {
			ids[g.ID+"/"+q.ID] = true
			for _, m := range q.Months {
				if len(m.SubGoals) > 0 {
					ids[g.ID+"/"+m.Month] = true
				}
			}
		}
	}
	return ids
}

// FilterVisibleItems filters already-flattened visible items to only include
// items whose ID is in matchIDs or ancestorIDs.
func FilterVisibleItems(items []TreeItem, matchIDs, ancestorIDs map[string]bool) []TreeItem {
	var result []TreeItem
	for _, item := range items {
		if matchIDs[item.ID] || ancestorIDs[item.ID] {
			result = append(result, item)
		}
	}
	return result
}

// TargetMonth picks the month an added sub-goal goes to: the row's own month,
// else the current month when it is inside the schedule, else the first month.
func TargetMonth(item TreeItem, quarters []plan.QuarterBlock, current string) string {
	if item.Month != "" {
		return item.Month
	}
	return plan.DefaultMonth(quarters, current)
}

// progressLabel renders a right-aligned percentage.
func progressLabel(pct int) string {
	return fmt.Sprintf("%3d%%", pct)
}
