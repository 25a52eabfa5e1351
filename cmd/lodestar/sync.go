package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	gitsync "github.com/stefanpenner/lodestar/pkg/sync"
	"github.com/stefanpenner/lodestar/pkg/tui"
)

func (a *app) initCmd() *cobra.Command {
	var remote string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Put the data directory under git",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gitsync.NewRepo(a.cfg.DataDir, a.out, a.log).Init(remote)
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "git remote to sync with")
	return cmd
}

func (a *app) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Commit, pull and push the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gitsync.NewRepo(a.cfg.DataDir, a.out, a.log).Sync()
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	m := tui.NewModel(tui.Options{
		Store:  a.store,
		Engine: a.engine,
		Tasks:  a.tasks,
		// git output would corrupt the screen
		Repo:   gitsync.NewRepo(a.cfg.DataDir, io.Discard, a.log),
		Logger: a.log,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	cleanup, err := tui.StartWatcher(a.store.GoalsDir(), p.Send, a.log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}
