// Package cli wires the tasktracker command line.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasktracker",
		Short: "Task tracking REST API",
		Long:  "A small REST API to list, create, update, toggle and delete tasks.",
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
