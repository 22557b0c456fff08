package main

import (
	"fmt"

	"github.com/pvm-php/pvm/internal/config"
	"github.com/spf13/cobra"
)

// createConfigCommand creates the config subcommand
func createConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	configCmd.AddCommand(createConfigInitCommand())
	configCmd.AddCommand(createConfigShowCommand())
	return configCmd
}

// createConfigInitCommand creates the config init subcommand
func createConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [config-file]",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new configuration file with default values.

If no path is specified, the config is created in the current directory as pvm.yml

Examples:
  pvm config init
  pvm config init ~/.pvm/config.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: executeConfigInit,
	}
}

func executeConfigInit(cmd *cobra.Command, args []string) error {
	configPath := "pvm.yml"
	if len(args) > 0 {
		configPath = args[0]
	}

	defaultConfig := config.DefaultGlobalConfig()
	if err := defaultConfig.SaveGlobalConfigWithComments(configPath); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file created at: %s\n", configPath)
	fmt.Fprintf(out, "  Root Directory: %s\n", defaultConfig.RootDir)
	fmt.Fprintf(out, "  Log Level: %s\n", defaultConfig.Logging.Level)
	return nil
}

// createConfigShowCommand creates the config show subcommand
func createConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  executeConfigShow,
	}
}

func executeConfigShow(cmd *cobra.Command, args []string) error {
	root, err := config.PvmPath()
	if err != nil {
		return err
	}
	builds, err := config.BuildsPath()
	if err != nil {
		return err
	}
	versions, err := config.VersionsPath()
	if err != nil {
		return err
	}

	source := actualConfigFile
	if source == "" {
		source = "(defaults)"
	}

	table := newTable(cmd.OutOrStdout())
	table.AppendBulk([][]string{
		{"Config file:", source},
		{"Root directory:", root},
		{"Builds directory:", builds},
		{"Versions directory:", versions},
		{"Log level:", config.LogLevel()},
		{"Log file:", config.Global().Logging.File},
	})
	table.Render()
	return nil
}
