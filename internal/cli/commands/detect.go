package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/decode"
	"github.com/ccollicutt/chatlens/pkg/grammar"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output     string
	SampleSize int
	ShowAll    bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <chat-file>",
		Short: "Detect the header grammar of a chat export",
		Long: `Analyze a chat export to identify which header grammar it uses.

Samples lines from the file and tests against the known header styles.
Reports the detected grammar with a confidence score.

Supports:
  - Dash-delimited exports (12-hour and 24-hour clock)
  - Bracket-delimited exports (optional seconds, optional AM/PM)
  - System/notification line variants without an author

Example:
  chatlens detect chat.txt
  chatlens detect --sample 500 chat.txt
  chatlens detect --all -o json chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matching grammars, not just the best match")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	chatFile := args[0]

	if _, err := os.Stat(chatFile); os.IsNotExist(err) {
		return fmt.Errorf("chat file not found: %s", chatFile)
	}

	// Decode first so grammar matching sees clean text even for
	// non-UTF-8 exports.
	decoded, err := decode.File(chatFile)
	if err != nil {
		return fmt.Errorf("reading chat file: %w", err)
	}

	d := grammar.NewDetector(grammar.WithSampleSize(opts.SampleSize))
	result := d.DetectFromLines(sampleLines(decoded.Text, opts.SampleSize))

	switch opts.Output {
	case "json":
		return outputDetectJSON(result, chatFile, decoded, opts)
	default:
		return outputDetectText(result, chatFile, decoded, opts)
	}
}

// sampleLines returns up to n non-blank lines from text.
func sampleLines(text string, n int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(line, "\r"))
		if len(lines) >= n {
			break
		}
	}
	return lines
}

func outputDetectText(result *grammar.DetectionResult, chatFile string, decoded decode.Result, opts *DetectOptions) error {
	fmt.Println("=== Header Grammar Detection ===")
	fmt.Println()
	fmt.Printf("File: %s\n", chatFile)
	fmt.Printf("Encoding: %s\n", decoded.Encoding)
	fmt.Printf("Lines sampled: %d\n", result.SampledLines)
	fmt.Printf("Lines with headers: %d\n", result.ParsedLines)
	fmt.Println()

	if !result.HasMatch() {
		fmt.Println("No header grammar detected.")
		fmt.Println()
		fmt.Println("Tip: The export may use an uncommon header style.")
		fmt.Println("Check the first few lines manually, or run 'chatlens diagnose'.")
		return nil
	}

	best := result.BestMatch()
	fmt.Printf("Detected Grammar: %s\n", best.Grammar.Name)
	fmt.Printf("Confidence: %.1f%% (%d of %d lines)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Printf("Sample: %s\n", best.SampleLine)
	fmt.Printf("Parsed time: %s\n", best.ParsedTime.Format("2006-01-02 15:04:05"))

	if result.AmbiguityNote != "" {
		fmt.Println()
		fmt.Printf("Note: %s\n", result.AmbiguityNote)
	}

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Println()
		fmt.Println("Other matches:")
		for _, m := range result.Matches[1:] {
			fmt.Printf("  %s (%.1f%%, %d lines)\n",
				m.Grammar.Name, m.Confidence*100, m.MatchCount)
		}
	}

	return nil
}

func outputDetectJSON(result *grammar.DetectionResult, chatFile string, decoded decode.Result, opts *DetectOptions) error {
	type jsonMatch struct {
		Grammar    string  `json:"grammar"`
		Pattern    string  `json:"pattern"`
		Confidence float64 `json:"confidence"`
		MatchCount int     `json:"match_count"`
		SampleLine string  `json:"sample_line"`
	}

	payload := struct {
		File          string      `json:"file"`
		Encoding      string      `json:"encoding"`
		SampledLines  int         `json:"sampled_lines"`
		ParsedLines   int         `json:"parsed_lines"`
		Matches       []jsonMatch `json:"matches"`
		AmbiguityNote string      `json:"ambiguity_note,omitempty"`
	}{
		File:         chatFile,
		Encoding:     decoded.Encoding,
		SampledLines: result.SampledLines,
		ParsedLines:  result.ParsedLines,
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}
	for _, m := range matches {
		payload.Matches = append(payload.Matches, jsonMatch{
			Grammar:    m.Grammar.Name,
			Pattern:    m.Grammar.PatternStr,
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
		})
	}
	payload.AmbiguityNote = result.AmbiguityNote

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
