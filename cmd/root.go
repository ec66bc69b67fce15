package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "sprintdeck",
	Short: "A kanban task board with live updates and model-assisted planning",
	Long: `Sprintdeck serves a kanban-style task board: a REST API over a
relational store, per-field change history, websocket broadcasts of
every mutation, and an analysis layer backed by an OpenAI-compatible
completion endpoint.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
