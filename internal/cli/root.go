// Package cli provides the command-line interface for chatlens.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/internal/cli/commands"
	"github.com/ccollicutt/chatlens/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	// Check if the first argument might be a plugin command
	if len(os.Args) > 1 {
		potentialCommand := os.Args[1]
		// Skip flags (start with -)
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			// Check if it's a known built-in command
			if !isBuiltinCommand(rootCmd, potentialCommand) {
				// Try to find and execute a plugin
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					// Plugin found - execute it with remaining args
					return plugins.Execute(pluginPath, os.Args[2:])
				}
				// Plugin not found - will fall through to Cobra which will show error
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Check if this was an unknown command that could be a plugin
		if len(os.Args) > 1 {
			potentialCommand := os.Args[1]
			if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
				if !isBuiltinCommand(rootCmd, potentialCommand) {
					// Show helpful plugin error message
					_, _ = fmt.Fprintln(os.Stderr, plugins.FormatNotFoundError(potentialCommand))
					return 2
				}
			}
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatlens",
		Short: "Analyze exported chat logs",
		Long: `Chatlens parses plain-text chat exports into a structured record set
and computes usage statistics and activity patterns.

It understands the header conventions of several export styles (bracketed
and dash-delimited, 12-hour and 24-hour, with and without seconds) and
degrades gracefully on malformed or foreign-format input: a bad line is
skipped, never fatal.

PLUGINS:
  Chatlens supports plugins for extended functionality. Plugins are
  standalone binaries named chatlens-<command> that are automatically
  discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the chatlens binary
    2. ~/.chatlens/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
