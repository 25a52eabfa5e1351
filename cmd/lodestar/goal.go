package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stefanpenner/lodestar/pkg/plan"
	"github.com/stefanpenner/lodestar/pkg/store"
)

func (a *app) goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Create, inspect and manage goals",
	}

	var target string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.goalAdd(strings.Join(args, " "), target)
		},
	}
	add.Flags().StringVarP(&target, "target", "t", "", "target date, YYYY-MM-DD")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "list",
			Short: "List goals with their progress",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return a.goalList() },
		},
		&cobra.Command{
			Use:   "show <goal-id>",
			Short: "Show a goal and its schedule",
			Args:  cobra.ExactArgs(1),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.goalShow(args[0]) },
		},
		&cobra.Command{
			Use:   "status <goal-id> <status>",
			Short: "Set a goal's status (active, completed, paused, abandoned, at_risk, failing)",
			Args:  cobra.ExactArgs(2),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.goalStatus(args[0], args[1]) },
		},
		&cobra.Command{
			Use:   "note <goal-id> <text>",
			Short: "Append a dated note to a goal",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.goalNote(args[0], strings.Join(args[1:], " "))
			},
		},
		&cobra.Command{
			Use:   "delete <goal-id>",
			Short: "Delete a goal, its milestones and its linked tasks",
			Args:  cobra.ExactArgs(1),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.goalDelete(args[0]) },
		},
	)
	return cmd
}

func (a *app) goalAdd(title, target string) error {
	var targetDate *time.Time
	if target != "" {
		t, err := time.ParseInLocation("2006-01-02", target, time.Local)
		if err != nil {
			return fmt.Errorf("invalid target date %q, use YYYY-MM-DD", target)
		}
		targetDate = &t
	}

	g, err := a.store.CreateGoal(title, targetDate)
	if err != nil {
		return err
	}
	a.log.WithGoal(g.ID).Info("goal created")

	quarters := a.engine.Builder.Structure(g)
	if a.jsonOut {
		return a.outputJSON(goalToMap(g, quarters))
	}
	a.printf("Created: %s (%s), %d months\n", g.Title, g.ID, len(plan.Months(quarters)))
	return nil
}

func (a *app) goalList() error {
	goals, err := a.store.ListGoals()
	if err != nil {
		return err
	}

	if a.jsonOut {
		out := make([]map[string]any, 0, len(goals))
		for _, g := range goals {
			out = append(out, goalToMap(g, nil))
		}
		return a.outputJSON(out)
	}

	if len(goals) == 0 {
		a.printf("No goals yet. Add one with: lodestar goal add <title>\n")
		return nil
	}
	for _, g := range goals {
		a.printf("%s %-24s %4d%%  %-9s %s\n", statusIcon(g), g.ID, g.Progress, g.Status, g.Title)
	}
	return nil
}

func (a *app) goalShow(id string) error {
	g, quarters, err := a.loadGoal(id)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.outputJSON(goalToMap(g, quarters))
	}

	a.printf("%s (%s)\n", g.Title, g.ID)
	a.printf("Status: %s  Progress: %d%%", g.Status, plan.GoalProgress(quarters))
	if g.TargetDate != nil {
		a.printf("  Target: %s", g.TargetDate.Format("2006-01-02"))
	}
	if g.CompletedAt != nil {
		a.printf("  Completed: %s", g.CompletedAt.Format("2006-01-02"))
	}
	a.printf("\n")
	if len(g.Tags) > 0 {
		a.printf("Tags: %s\n", strings.Join(g.Tags, ", "))
	}

	a.printf("\n")
	for _, q := range quarters {
		a.printf("%-22s %4d%%\n", q.Label, plan.QuarterProgress(q))
		for _, m := range q.Months {
			a.printf("  %-20s %4d%%\n", m.Label, plan.MonthProgress(m))
			for _, sg := range m.SubGoals {
				mark := "○"
				if sg.Completed {
					mark = "✓"
				}
				a.printf("    %s %s [%s]\n", mark, sg.Title, sg.ID)
			}
		}
	}

	if g.Body != "" {
		a.printf("\n%s\n", strings.TrimRight(g.Body, "\n"))
	}
	return nil
}

func (a *app) goalStatus(id, status string) error {
	st, err := store.ParseStatus(status)
	if err != nil {
		return err
	}
	g, err := a.store.SetStatus(id, st)
	if err != nil {
		return err
	}
	a.log.WithGoal(g.ID).Info("goal status changed", "status", string(st))

	if a.jsonOut {
		return a.outputJSON(goalToMap(g, nil))
	}
	a.printf("%s → %s\n", g.Title, st)
	return nil
}

func (a *app) goalNote(id, text string) error {
	g, err := a.store.AddNote(id, text)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.outputJSON(goalToMap(g, nil))
	}
	a.printf("Note added to %s\n", g.Title)
	return nil
}

func (a *app) goalDelete(id string) error {
	if err := a.store.DeleteGoal(id); err != nil {
		return err
	}
	if err := a.tasks.DeleteLinked(id); err != nil {
		return fmt.Errorf("goal %s deleted but its tasks were not: %w", id, err)
	}
	a.engine.Builder.Invalidate(id)
	a.log.WithGoal(id).Info("goal deleted")

	if a.jsonOut {
		return a.outputJSON(map[string]string{"deleted": id})
	}
	a.printf("Deleted: %s\n", id)
	return nil
}

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find goals by title, notes or sub-goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := a.store.SearchGoals(strings.Join(args, " "))
			if err != nil {
				return err
			}

			if a.jsonOut {
				out := make([]map[string]any, 0, len(matches))
				for _, g := range matches {
					out = append(out, goalToMap(g, nil))
				}
				return a.outputJSON(out)
			}

			if len(matches) == 0 {
				a.printf("No matches found.\n")
				return nil
			}
			for _, g := range matches {
				a.printf("%s (%s)\n", g.Title, g.ID)
			}
			return nil
		},
	}
}

func statusIcon(g *store.Goal) string {
	switch {
	case g.IsComplete():
		return "✓"
	case g.Status == store.StatusPaused:
		return "‖"
	default:
		return "○"
	}
}

// goalToMap is the JSON form of a goal. The schedule is included when given.
func goalToMap(g *store.Goal, quarters []plan.QuarterBlock) map[string]any {
	m := map[string]any{
		"id":       g.ID,
		"title":    g.Title,
		"status":   string(g.Status),
		"progress": g.Progress,
		"version":  g.Version,
		"tags":     g.Tags,
		"body":     g.Body,
		"path":     g.FilePath,
	}
	if !g.Created.IsZero() {
		m["created"] = g.Created.Format(time.RFC3339)
	}
	if !g.Updated.IsZero() {
		m["updated"] = g.Updated.Format(time.RFC3339)
	}
	if g.TargetDate != nil {
		m["target_date"] = g.TargetDate.Format("2006-01-02")
	}
	if g.CompletedAt != nil {
		m["completed_at"] = g.CompletedAt.Format(time.RFC3339)
	}
	if quarters != nil {
		m["schedule"] = quarters
	}
	return m
}
