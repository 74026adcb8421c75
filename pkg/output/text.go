package output

import (
	"context"
	"fmt"
	"io"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if !report.HasData() {
		return f.formatEmpty(report, w)
	}
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

// formatEmpty renders the explicit no-data state rather than an empty
// report, and points the operator at the diagnose command.
func (f *TextFormatter) formatEmpty(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "No data parsed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "No line matched a known chat header grammar. Check that the file")
	fmt.Fprintln(w, "is a plain-text chat export (without media), or run:")
	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "  chatlens diagnose %s\n", report.Metadata.Source)
	} else {
		fmt.Fprintln(w, "  chatlens diagnose <chat-file>")
	}
	return nil
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "chatlens: %d messages, %d words, %d media, %d links, %d authors\n",
		report.Summary.Messages,
		report.Summary.Words,
		report.Summary.Media,
		report.Summary.Links,
		report.Summary.Authors)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Chat Analysis Report ===")
	fmt.Fprintln(w)

	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "Source:   %s\n", report.Metadata.Source)
	}
	if report.Metadata.Grammar != "" {
		fmt.Fprintf(w, "Grammar:  %s\n", report.Metadata.Grammar)
	}
	fmt.Fprintf(w, "Analysis: %s\n", report.Metadata.Author)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Messages: %d\n", report.Summary.Messages)
	fmt.Fprintf(w, "Words:    %d\n", report.Summary.Words)
	fmt.Fprintf(w, "Media:    %d\n", report.Summary.Media)
	fmt.Fprintf(w, "Links:    %d\n", report.Summary.Links)
	fmt.Fprintf(w, "Authors:  %d\n", report.Summary.Authors)
	if !report.Summary.First.IsZero() {
		fmt.Fprintf(w, "Range:    %s to %s\n",
			report.Summary.First.Format("2006-01-02 15:04"),
			report.Summary.Last.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)

	if len(report.Authors) > 0 {
		fmt.Fprintln(w, "Busiest:")
		for i, ac := range report.Authors {
			fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, ac.Author, ac.Count)
		}
		fmt.Fprintln(w)
	}

	if len(report.Weekdays) > 0 {
		fmt.Fprintf(w, "Busiest day:   %s (%d messages)\n",
			report.Weekdays[0].Label, report.Weekdays[0].Count)
	}
	if len(report.Months) > 0 {
		fmt.Fprintf(w, "Busiest month: %s (%d messages)\n",
			report.Months[0].Label, report.Months[0].Count)
	}

	if f.opts.Verbose {
		f.formatVerbose(report, w)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d, duration: %s\n",
		report.Metadata.Records, report.Metadata.Duration.Round(1e6))

	return nil
}

func (f *TextFormatter) formatVerbose(report *Report, w io.Writer) {
	if len(report.Monthly) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Monthly timeline:")
		for _, mb := range report.Monthly {
			fmt.Fprintf(w, "  %-16s %d\n", mb.Label, mb.Count)
		}
	}

	if len(report.Words) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Common words:")
		for _, wc := range report.Words {
			fmt.Fprintf(w, "  %-16s %d\n", wc.Word, wc.Count)
		}
	}

	if len(report.Emoji) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top emoji:")
		for _, ec := range report.Emoji {
			fmt.Fprintf(w, "  %-4s %d\n", ec.Emoji, ec.Count)
		}
	}
}
