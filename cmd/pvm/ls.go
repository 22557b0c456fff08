package main

import (
	"fmt"

	"github.com/pvm-php/pvm/internal/installation"
	"github.com/spf13/cobra"
)

// createListCommand creates the ls subcommand
func createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all PHP versions currently installed",
		Args:    cobra.NoArgs,
		RunE:    executeList,
	}
}

func executeList(cmd *cobra.Command, args []string) error {
	ctx, err := loadContext()
	if err != nil {
		return err
	}

	installs, err := installation.List(ctx.VersionPath())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(installs) == 0 {
		fmt.Fprintln(out, "No PHP versions installed.")
		return nil
	}

	table := newTable(out, "VERSION", "PATH")
	for _, inst := range installs {
		table.Append([]string{inst.Version.String(), inst.Path})
	}
	table.Render()
	return nil
}
