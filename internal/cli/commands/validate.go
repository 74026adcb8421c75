package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/config"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a Chatlens configuration file without running analysis.

Checks:
  - YAML syntax
  - Sentinel author and count limits
  - Media marker normalization
  - Webhook URLs, triggers, and timeouts
  - Stopwords file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	// Load and validate config
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Sentinel author: %s\n", cfg.SentinelAuthor)
	fmt.Printf("  Media markers:   %d\n", len(cfg.MediaMarkers))
	fmt.Printf("  Top authors:     %d\n", cfg.TopAuthors)
	fmt.Printf("  Common words:    %d\n", cfg.CommonWords)
	fmt.Printf("  Top emoji:       %d\n", cfg.TopEmoji)
	fmt.Printf("  Webhooks:        %d\n", len(cfg.Webhooks))

	// List webhooks
	for i, wh := range cfg.Webhooks {
		name := wh.Name
		if name == "" {
			name = wh.URL
		}
		fmt.Printf("\nWebhook %d: %s\n", i+1, name)
		fmt.Printf("  Trigger: %s\n", wh.Trigger)
		fmt.Printf("  Timeout: %s\n", wh.Timeout)
	}

	// Check the stopwords file exists (warning only)
	if cfg.StopwordsFile != "" {
		if _, err := os.Stat(cfg.StopwordsFile); err != nil {
			fmt.Printf("\nWarning: stopwords file not accessible: %v\n", err)
		} else if words, err := stats.LoadStopwords(cfg.StopwordsFile); err != nil {
			fmt.Printf("\nWarning: cannot read stopwords file: %v\n", err)
		} else {
			fmt.Printf("\nStopwords loaded: %d\n", len(words))
		}
	}

	return nil
}
