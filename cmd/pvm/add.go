package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pvm-php/pvm/internal/installation"
	"github.com/pvm-php/pvm/internal/strategy"
	"github.com/pvm-php/pvm/internal/utils/logger"
	"github.com/spf13/cobra"
)

// createAddCommand creates the add subcommand
func createAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <version>",
		Short: "Install a PHP version",
		Long: `Install a PHP version from source.

Installing is not implemented yet: the command resolves the host platform
and prints the steps it would take.`,
		Args: cobra.ExactArgs(1),
		RunE: executeAdd,
	}
}

func executeAdd(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	version, err := installation.ParseVersion(args[0])
	if err != nil {
		return err
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}

	inst, err := installation.Find(ctx.VersionPath(), version)
	if err == nil {
		return fmt.Errorf("PHP %s is already installed at %s", version, inst.Path)
	}
	if !errors.Is(err, installation.ErrNotInstalled) {
		return err
	}

	strat, err := strategy.For(ctx.Vendor())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Install PHP %s\n", version)
	table := newTable(out)
	table.AppendBulk([][]string{
		{"  Target:", installation.Path(ctx.VersionPath(), version)},
		{"  Build directory:", filepath.Join(ctx.BuildPath(), "php-"+version.String())},
		{"  Dependencies:", strings.Join(strat.Command(), " ")},
	})
	table.Render()

	if !strat.Available() {
		log.Warnf("%s was not found on PATH; build dependencies cannot be installed", strat.InstallCommand[0])
	}
	log.Warnf("Installing PHP is not implemented yet; nothing was changed")
	return nil
}
