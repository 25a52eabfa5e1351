package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stefanpenner/lodestar/pkg/tasks"
)

func (a *app) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Track work linked to goals",
	}

	var goalID string
	var estimate int
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.taskAdd(strings.Join(args, " "), goalID, estimate)
		},
	}
	add.Flags().StringVarP(&goalID, "goal", "g", "", "goal the task counts towards")
	add.Flags().IntVarP(&estimate, "estimate", "e", 0, "time estimate in minutes")

	var listGoal, listStatus string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.taskList(listGoal, listStatus, limit)
		},
	}
	list.Flags().StringVarP(&listGoal, "goal", "g", "", "only tasks linked to this goal")
	list.Flags().StringVarP(&listStatus, "status", "s", "", "only tasks with this status (todo, in_progress, done)")
	list.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of tasks")

	cmd.AddCommand(
		add,
		list,
		&cobra.Command{
			Use:   "log <task-id> <minutes>",
			Short: "Add time spent on a task",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				minutes, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("minutes must be a number, got %q", args[1])
				}
				return a.taskLog(args[0], minutes)
			},
		},
		&cobra.Command{
			Use:   "done <task-id>",
			Short: "Complete a task",
			Args:  cobra.ExactArgs(1),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.taskDone(args[0]) },
		},
	)
	return cmd
}

func (a *app) taskAdd(title, goalID string, estimate int) error {
	if estimate < 0 {
		return fmt.Errorf("estimate must not be negative, got %d", estimate)
	}
	if goalID != "" {
		if _, err := a.store.LoadGoal(goalID); err != nil {
			return err
		}
	}

	t := &tasks.Task{Title: title, LinkedGoalID: goalID, TimeEstimate: estimate}
	if _, err := a.tasks.Create(t); err != nil {
		return err
	}
	a.log.Info("task created", "task_id", t.ID, "goal_id", goalID)

	if a.jsonOut {
		return a.outputJSON(t)
	}
	a.printf("Created task %s\n", t.ID)
	return nil
}

func (a *app) taskList(goalID, status string, limit int) error {
	filter := tasks.Filter{LinkedGoalID: goalID, Limit: limit}
	if status != "" {
		st, err := tasks.ParseStatus(status)
		if err != nil {
			return err
		}
		filter.Status = &st
	}

	list, err := a.tasks.List(filter)
	if err != nil {
		return err
	}

	if a.jsonOut {
		if list == nil {
			list = []*tasks.Task{}
		}
		return a.outputJSON(list)
	}

	if len(list) == 0 {
		a.printf("No tasks.\n")
		return nil
	}
	for _, t := range list {
		a.printf("%s  %-11s %4d/%-4dm  %s", t.ID, t.Status, t.TimeSpent, t.TimeEstimate, t.Title)
		if t.LinkedGoalID != "" {
			a.printf(" (%s)", t.LinkedGoalID)
		}
		a.printf("\n")
	}
	return nil
}

func (a *app) taskLog(id string, minutes int) error {
	t, err := a.tasks.LogTime(id, minutes)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.outputJSON(t)
	}
	a.printf("Logged %dm on %s (%dm total)\n", minutes, t.Title, t.TimeSpent)
	return nil
}

func (a *app) taskDone(id string) error {
	t, err := a.tasks.Complete(id)
	if err != nil {
		return err
	}
	a.log.Info("task completed", "task_id", t.ID, "goal_id", t.LinkedGoalID)

	if a.jsonOut {
		return a.outputJSON(t)
	}
	a.printf("Completed: %s\n", t.Title)
	return nil
}
