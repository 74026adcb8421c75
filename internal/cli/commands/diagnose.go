package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/pkg/decode"
	"github.com/ccollicutt/chatlens/pkg/grammar"
	"github.com/ccollicutt/chatlens/pkg/parser"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
	Preview int
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <chat-file>",
		Short: "Diagnose why an export fails to parse",
		Long: `Diagnose common problems with a chat export.

This command checks the export for common problems:
- File existence and accessibility
- Character encoding (with lossy-decode warning)
- Header grammar detection against the first lines
- A parse dry-run with record and drop counts

The first non-blank lines are shown so the header format can be
verified by eye when no grammar matches.

Example:
  chatlens diagnose chat.txt
  chatlens diagnose -v chat.txt  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")
	cmd.Flags().IntVar(&opts.Preview, "preview", 15, "Number of leading non-blank lines to preview")

	return cmd
}

func runDiagnose(chatFile string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	// 1. Check file existence
	result := checkFileExists(chatFile)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(results, opts)
		return nil
	}

	// 2. Decode
	decoded, result := checkEncoding(chatFile)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(results, opts)
		return nil
	}

	// 3. Preview leading lines
	results = append(results, checkPreview(decoded.Text, opts))

	// 4. Grammar detection
	results = append(results, checkGrammar(decoded.Text))

	// 5. Parse dry-run
	results = append(results, checkParse(decoded.Text))

	printDiagnostics(results, opts)
	return nil
}

func checkFileExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Chat File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Chat file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Export the chat as plain text (without media) and try again",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access chat file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Chat file is empty"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkEncoding(path string) (decode.Result, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Encoding",
	}

	decoded, err := decode.File(path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read file: %v", err)
		return decode.Result{}, result
	}

	if decoded.Degraded {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Decoded as %s with lossy replacement", decoded.Encoding)
		result.Suggests = []string{
			"Some characters may have been replaced; re-export as UTF-8 if possible",
		}
		return decoded, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Decoded as %s", decoded.Encoding)
	return decoded, result
}

func checkPreview(text string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "First Lines",
	}

	lines := sampleLines(text, opts.Preview)
	if len(lines) == 0 {
		result.Status = "warning"
		result.Message = "No non-blank lines in file"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Showing first %d non-blank line(s)", len(lines))
	for _, line := range lines {
		result.Details = append(result.Details, truncate(line, 80))
	}
	return result
}

func checkGrammar(text string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Header Grammar",
	}

	detection := grammar.NewDetector().DetectFromLines(sampleLines(text, 100))
	if !detection.HasMatch() {
		result.Status = "error"
		result.Message = "No known header grammar matches this file"
		result.Suggests = []string{
			"Verify the preview above shows lines like '12/08/2025, 22:15 - Name: Message'",
			"Exports from other messaging apps are not supported",
		}
		return result
	}

	best := detection.BestMatch()
	pct := best.Confidence * 100

	result.Message = fmt.Sprintf("Detected %s (%.1f%% of sampled lines)", best.Grammar.Name, pct)
	result.Details = []string{
		fmt.Sprintf("Pattern: %s", best.Grammar.PatternStr),
		fmt.Sprintf("Sample: %s", truncate(best.SampleLine, 80)),
	}

	switch {
	case pct < 10:
		result.Status = "warning"
		result.Suggests = []string{
			"Very few lines look like headers; most of the file may be in another format",
		}
	default:
		result.Status = "ok"
	}

	if detection.AmbiguityNote != "" {
		result.Details = append(result.Details, detection.AmbiguityNote)
	}

	return result
}

func checkParse(text string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Parse Dry-Run",
	}

	table := parser.New().Table(text)
	if table.Empty() {
		result.Status = "error"
		result.Message = "Parse produced zero records"
		result.Suggests = []string{
			"No header line resolved to a timestamp; the date format may be unusual",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Parsed %d record(s)", table.Len())
	first := table.Rows[0]
	last := table.Rows[len(table.Rows)-1]
	result.Details = []string{
		fmt.Sprintf("First: %s  %s", first.Timestamp.Format("2006-01-02 15:04:05"), truncate(first.Author, 40)),
		fmt.Sprintf("Last:  %s  %s", last.Timestamp.Format("2006-01-02 15:04:05"), truncate(last.Author, 40)),
	}
	return result
}

func printDiagnostics(results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Println("=== Chatlens Export Diagnostics ===")
	fmt.Println()

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Printf("[%s] %s\n", icon, r.Check)
		fmt.Printf("    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" || r.Check == "First Lines" {
			for _, d := range r.Details {
				fmt.Printf("      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Printf("      Hint: %s\n", s)
		}

		fmt.Println()
	}

	// Summary
	fmt.Println("---")
	fmt.Printf("Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Println("\nFix the errors above before running analysis.")
	} else if warnCount > 0 {
		fmt.Println("\nExport is usable but has warnings.")
	} else {
		fmt.Println("\nExport looks good!")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
