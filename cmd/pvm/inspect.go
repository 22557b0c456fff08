package main

import (
	"errors"
	"strings"

	"github.com/pvm-php/pvm/internal/installation"
	"github.com/pvm-php/pvm/internal/strategy"
	"github.com/spf13/cobra"
)

// createInspectCommand creates the inspect subcommand
func createInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <version>",
		Short: "Inspect a PHP installation",
		Args:  cobra.ExactArgs(1),
		RunE:  executeInspect,
	}
}

func executeInspect(cmd *cobra.Command, args []string) error {
	version, err := installation.ParseVersion(args[0])
	if err != nil {
		return err
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}
	strat, err := strategy.For(ctx.Vendor())
	if err != nil {
		return err
	}

	path := installation.Path(ctx.VersionPath(), version)
	inst, err := installation.Find(ctx.VersionPath(), version)
	installed := err == nil
	if err != nil && !errors.Is(err, installation.ErrNotInstalled) {
		return err
	}
	if installed {
		path = inst.Path
	}

	table := newTable(cmd.OutOrStdout())
	table.AppendBulk([][]string{
		{"Version:", version.String()},
		{"Path:", path},
		{"Installed:", yesNo(installed)},
		{"Vendor:", ctx.Vendor().String()},
		{"Package manager:", strat.PackageManager},
		{"Package manager available:", yesNo(strat.Available())},
		{"Build dependencies:", strings.Join(strat.BuildDeps, " ")},
	})
	table.Render()
	return nil
}
