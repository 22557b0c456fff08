package main

import (
	"fmt"
	"os"

	"github.com/pvm-php/pvm/internal/appctx"
	"github.com/pvm-php/pvm/internal/config"
	"github.com/pvm-php/pvm/internal/lenaris"
	"github.com/pvm-php/pvm/internal/utils/logger"
	"github.com/pvm-php/pvm/internal/utils/security"
	"github.com/spf13/cobra"
)

// Command-line flags that override config file settings
var (
	configFile string
	logLevel   string
	logFile    string

	// actualConfigFile is the file the configuration was loaded from.
	actualConfigFile string
	loggerCleanup    func()

	// discovery resolves the host vendor; tests replace it.
	discovery lenaris.DiscoveryService = lenaris.SysInfo{}
)

func main() {
	rootCmd := createRootCommand()
	err := rootCmd.Execute()
	if loggerCleanup != nil {
		loggerCleanup()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// createRootCommand creates and configures the root cobra command with all subcommands
func createRootCommand() *cobra.Command {
	cobra.EnableTraverseRunHooks = true

	rootCmd := &cobra.Command{
		Use:   "pvm",
		Short: "A PHP Version Manager",
		Long: `pvm lists, inspects, installs, removes and activates PHP versions.

It detects the host platform (Linux distribution family or macOS) to pick
the package manager used to prepare PHP builds.

Use 'pvm <command> --help' for more information about a command.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Log file path to tee logs (overrides configuration file)")

	rootCmd.AddCommand(createListCommand())
	rootCmd.AddCommand(createInspectCommand())
	rootCmd.AddCommand(createAddCommand())
	rootCmd.AddCommand(createRemoveCommand())
	rootCmd.AddCommand(createUseCommand())
	rootCmd.AddCommand(createVendorCommand())
	rootCmd.AddCommand(createVersionCommand())
	rootCmd.AddCommand(createConfigCommand())
	rootCmd.AddCommand(createInstallCompletionCommand())

	security.AttachRecursive(rootCmd, security.DefaultLimits())
	return rootCmd
}

// initConfig loads the configuration and sets up the logger before any
// subcommand runs.
func initConfig(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = config.FindConfigFile()
	}

	globalConfig, err := config.LoadGlobalConfig(path)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if logLevel != "" {
		globalConfig.Logging.Level = logLevel
	}
	if logFile != "" {
		globalConfig.Logging.File = logFile
	}
	if err := globalConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.SetGlobal(globalConfig)
	actualConfigFile = path

	if loggerCleanup != nil {
		loggerCleanup()
		loggerCleanup = nil
	}
	log, cleanup, err := logger.InitWithConfig(logger.Config{
		Level:    globalConfig.Logging.Level,
		FilePath: globalConfig.Logging.File,
	})
	if err != nil {
		return err
	}
	loggerCleanup = cleanup

	if path != "" {
		log.Debugf("Using configuration from: %s", path)
	}
	return nil
}

// loadContext resolves the host vendor and bootstraps the working
// directories.
func loadContext() (*appctx.Context, error) {
	ctx, err := appctx.Default(config.Global(), discovery)
	if err != nil {
		return nil, err
	}
	if err := ctx.Init(); err != nil {
		return nil, fmt.Errorf("initializing pvm directories: %w", err)
	}
	return ctx, nil
}
