package main

import (
	"fmt"

	"github.com/pvm-php/pvm/internal/installation"
	"github.com/pvm-php/pvm/internal/utils/logger"
	"github.com/spf13/cobra"
)

// createRemoveCommand creates the remove subcommand
func createRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <version>",
		Aliases: []string{"rm"},
		Short:   "Remove a PHP installation",
		Args:    cobra.ExactArgs(1),
		RunE:    executeRemove,
	}
}

func executeRemove(cmd *cobra.Command, args []string) error {
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

	fmt.Fprintf(cmd.OutOrStdout(), "Remove a PHP %s installation at %s\n", inst.Version, inst.Path)
	logger.Logger().Warnf("Removing PHP is not implemented yet; nothing was changed")
	return nil
}
