package main

import (
	"fmt"

	"github.com/pvm-php/pvm/internal/installation"
	"github.com/pvm-php/pvm/internal/utils/logger"
	"github.com/spf13/cobra"
)

// createUseCommand creates the use subcommand
func createUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <version>",
		Short: "Activate a PHP version",
		Args:  cobra.ExactArgs(1),
		RunE:  executeUse,
	}
}

func executeUse(cmd *cobra.Command, args []string) error {
	version, err := installation.ParseVersion(args[0])
	if err != nil {
		return err
	}
	ctx, err := loadContext()
	if err != nil {
		return err
	}

	inst, err := installation.Find(ctx.VersionPath(), version)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Activate PHP %s from %s\n", inst.Version, inst.Path)
	logger.Logger().Warnf("Activating PHP is not implemented yet; nothing was changed")
	return nil
}
