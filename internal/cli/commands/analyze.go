package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/config"
	"github.com/ccollicutt/chatlens/pkg/decode"
	"github.com/ccollicutt/chatlens/pkg/grammar"
	"github.com/ccollicutt/chatlens/pkg/output"
	"github.com/ccollicutt/chatlens/pkg/parser"
	"github.com/ccollicutt/chatlens/pkg/stats"
	"github.com/ccollicutt/chatlens/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Output  string
	Config  string
	User    string
	Top     int
	Verbose bool
	Quiet   bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <chat-file>",
		Short: "Parse a chat export and report usage statistics",
		Long: `Parse a plain-text chat export into records and compute statistics.

Reports:
  - Message, word, media, and link counts
  - Busiest authors with percentage shares
  - Monthly and daily timelines, weekday/month activity, hour heatmap
  - Most common words (stopword list configurable) and top emoji

Exit codes:
  0 - Export parsed, report produced
  1 - No data parsed (no line matched a known header grammar)
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (optional; defaults used when omitted)")
	cmd.Flags().StringVarP(&opts.User, "user", "u", "", "Restrict analysis to one author (default: Overall)")
	cmd.Flags().IntVar(&opts.Top, "top", 0, "Override leaderboard size")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include full frequency tables in text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_data", "When to fire webhook (on_data|always|never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	chatFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return err
	}
	if opts.Top > 0 {
		cfg.TopAuthors = opts.Top
	}

	start := time.Now()

	decoded, err := decode.File(chatFile)
	if err != nil {
		return fmt.Errorf("reading chat file: %w", err)
	}
	if decoded.Degraded {
		fmt.Fprintf(os.Stderr, "Warning: input decoded with lossy fallback (%s); some characters may be wrong\n", decoded.Encoding)
	}

	stopwords, err := stats.LoadStopwords(cfg.StopwordsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: stopword list %s unreadable: %v\n", cfg.StopwordsFile, err)
	}

	asm := parser.New(parser.WithSentinelAuthor(cfg.SentinelAuthor))
	table := asm.Table(decoded.Text)

	analyzer := stats.NewAnalyzer(
		stats.WithSentinelAuthor(cfg.SentinelAuthor),
		stats.WithMediaMarkers(cfg.MediaMarkers),
		stats.WithStopwords(stopwords),
	)

	report := output.NewReport(analyzer, table, cfg, opts.User, output.Metadata{
		Source:     chatFile,
		Encoding:   decoded.Encoding,
		Degraded:   decoded.Degraded,
		Grammar:    detectGrammarName(decoded.Text),
		AnalyzedAt: start,
		Duration:   time.Since(start),
	})

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail analysis)
	sendWebhooks(ctx, cfg, opts, report)

	if !report.HasData() {
		ExitCode = 1
	}

	return nil
}

// loadConfig loads the given config file, or defaults when none given.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("default config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// detectGrammarName names the grammar the export's first header uses,
// for report metadata. Empty when nothing matched.
func detectGrammarName(text string) string {
	result := grammar.NewDetector().DetectFromLines(sampleLines(text, 100))
	if best := result.BestMatch(); best != nil {
		return best.Grammar.Name
	}
	return ""
}

func createFormatter(opts *AnalyzeOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail analysis.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *AnalyzeOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasData()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnData
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire.
func shouldFireWebhook(trigger config.WebhookTrigger, hasData bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnData:
		return hasData
	default:
		// Default to on_data
		return hasData
	}
}
