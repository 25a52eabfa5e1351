package main

import (
	"github.com/spf13/cobra"
)

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health <goal-id>",
		Short: "Score a goal's consistency, time invested and momentum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := a.loadGoal(args[0])
			if err != nil {
				return err
			}
			linked, err := a.tasks.Linked(g.ID)
			if err != nil {
				return err
			}

			report := a.engine.Health(g, linked)
			if a.jsonOut {
				return a.outputJSON(report)
			}

			a.printf("%s\n", g.Title)
			a.printf("  Progress:       %3d\n", report.Progress)
			a.printf("  Consistency:    %3d\n", report.Consistency)
			a.printf("  Time invested:  %3d\n", report.TimeInvested)
			a.printf("  Momentum:       %3d\n", report.Momentum)
			a.printf("\n%s\n", report.Insight)
			return nil
		},
	}
}
