package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
)

func (a *app) subgoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subgoal",
		Short: "Add and complete the monthly sub-goals of a goal",
	}

	var month string
	add := &cobra.Command{
		Use:   "add <goal-id> <title>",
		Short: "Schedule a sub-goal (this month by default)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.subgoalAdd(args[0], month, strings.Join(args[1:], " "))
		},
	}
	add.Flags().StringVarP(&month, "month", "m", "", "month to schedule in, YYYY-MM")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "toggle <goal-id> <sub-goal-id>",
			Short: "Mark a sub-goal done, or open again",
			Args:  cobra.ExactArgs(2),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.subgoalToggle(args[0], args[1]) },
		},
	)
	return cmd
}

func (a *app) subgoalAdd(goalID, month, title string) error {
	g, quarters, err := a.loadGoal(goalID)
	if err != nil {
		return err
	}
	if month == "" {
		month = plan.DefaultMonth(quarters, plan.MonthKey(time.Now()))
	}

	updated, sg, err := a.engine.Add(g, month, title)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.outputJSON(subgoalResult(updated, month, sg))
	}
	a.printf("Added %s to %s [%s]\n", sg.Title, month, sg.ID)
	return nil
}

func (a *app) subgoalToggle(goalID, subGoalID string) error {
	g, _, err := a.loadGoal(goalID)
	if err != nil {
		return err
	}

	updated, err := a.engine.Toggle(g, subGoalID)
	if err != nil {
		return err
	}

	month, sg := findSubGoal(a.engine.Builder.Structure(updated), subGoalID)
	if a.jsonOut {
		return a.outputJSON(subgoalResult(updated, month, sg))
	}

	mark := "○"
	if sg.Completed {
		mark = "✓"
	}
	a.printf("%s %s (goal %d%%, %s)\n", mark, sg.Title, updated.Progress, updated.Status)
	return nil
}

func findSubGoal(quarters []plan.QuarterBlock, id string) (string, plan.SubGoal) {
	for _, m := range plan.Months(quarters) {
		for _, sg := range m.SubGoals {
			if sg.ID == id {
				return m.Month, sg
			}
		}
	}
	return "", plan.SubGoal{ID: id}
}

func subgoalResult(g *store.Goal, month string, sg plan.SubGoal) map[string]any {
	return map[string]any{
		"goal_id":       g.ID,
		"goal_progress": g.Progress,
		"goal_status":   string(g.Status),
		"month":         month,
		"sub_goal":      sg,
	}
}
