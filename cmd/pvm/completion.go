package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// completionTarget describes where a shell picks up completion scripts.
type completionTarget struct {
	dir      string // relative to the home directory
	file     string
	generate func(root *cobra.Command, w io.Writer) error
}

var completionTargets = map[string]completionTarget{
	"bash": {
		dir:      ".bash_completion.d",
		file:     "pvm.bash",
		generate: func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	},
	"zsh": {
		dir:      ".zsh/completion",
		file:     "_pvm",
		generate: func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	"fish": {
		dir:      ".config/fish/completions",
		file:     "pvm.fish",
		generate: func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	"powershell": {
		dir:      "Documents/WindowsPowerShell",
		file:     "pvm-completion.ps1",
		generate: func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

const systemBashCompletionDir = "/etc/bash_completion.d"

// createInstallCompletionCommand creates the install-completion subcommand
func createInstallCompletionCommand() *cobra.Command {
	installCompletionCmd := &cobra.Command{
		Use:   "install-completion",
		Short: "Install shell completion script",
		Long: `Install shell completion script for Bash, Zsh, Fish, or PowerShell.
Automatically detects your shell and installs the appropriate completion script.

Bash completions go to ~/.bash_completion.d unless PVM_COMPLETION_SCOPE=system
is set and /etc/bash_completion.d is writable.`,
		Args: cobra.NoArgs,
		RunE: executeInstallCompletion,
	}

	installCompletionCmd.Flags().String("shell", "", "Specify shell type (bash, zsh, fish, powershell)")
	installCompletionCmd.Flags().Bool("force", false, "Force overwrite existing completion files")

	return installCompletionCmd
}

func executeInstallCompletion(cmd *cobra.Command, args []string) error {
	shellType, err := cmd.Flags().GetString("shell")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if shellType == "" {
		shellType, err = detectShell()
		if err != nil {
			return err
		}
	}

	target, ok := completionTargets[shellType]
	if !ok {
		return fmt.Errorf("unsupported shell type: %s", shellType)
	}

	var buf bytes.Buffer
	if err := target.generate(cmd.Root(), &buf); err != nil {
		return fmt.Errorf("error generating %s completion: %w", shellType, err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not determine home directory: %w", err)
	}

	completionDir := filepath.Join(homeDir, filepath.FromSlash(target.dir))
	if shellType == "bash" && os.Getenv("PVM_COMPLETION_SCOPE") == "system" && dirWritable(systemBashCompletionDir) {
		completionDir = systemBashCompletionDir
	}
	if err := os.MkdirAll(completionDir, 0700); err != nil {
		return fmt.Errorf("could not create directory %s: %w", completionDir, err)
	}

	targetPath := filepath.Join(completionDir, target.file)
	if _, err := os.Stat(targetPath); err == nil && !force {
		return fmt.Errorf("completion file already exists at %s. Use --force to overwrite", targetPath)
	}
	if err := os.WriteFile(targetPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("could not write completion file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Shell completion installed for %s at %s\n", shellType, targetPath)
	return nil
}

func detectShell() (string, error) {
	shellEnv := os.Getenv("SHELL")
	if shellEnv == "" {
		// Windows has no $SHELL.
		if os.Getenv("PSModulePath") != "" {
			return "powershell", nil
		}
		return "", fmt.Errorf("could not detect shell. Please specify with --shell flag")
	}
	for _, name := range []string{"bash", "zsh", "fish"} {
		if strings.Contains(filepath.Base(shellEnv), name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unsupported shell: %s. Please specify shell with --shell flag", shellEnv)
}

// dirWritable checks if the specified directory is writable by attempting to create and remove a temporary file.
func dirWritable(p string) bool {
	tf, err := os.CreateTemp(p, ".probe-*")
	if err != nil {
		return false
	}
	tf.Close()
	_ = os.Remove(tf.Name())
	return true
}
