// Package output provides formatting and output generation for chat
// analysis results.
package output

import (
	"time"

	"github.com/ccollicutt/chatlens/pkg/config"
	"github.com/ccollicutt/chatlens/pkg/records"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// Report is the complete analysis output for one export.
type Report struct {
	// Summary provides the headline counts.
	Summary stats.Overview `json:"summary"`

	// Authors is the message-count leaderboard (Overall view only).
	Authors []stats.AuthorCount `json:"authors,omitempty"`

	// AuthorShares is the full percentage-share table (Overall view only).
	AuthorShares []stats.AuthorShare `json:"author_shares,omitempty"`

	// Monthly and Daily are the chronological activity timelines.
	Monthly []stats.MonthBucket `json:"monthly,omitempty"`
	Daily   []stats.DayBucket   `json:"daily,omitempty"`

	// Weekdays and Months are busiest-first activity maps.
	Weekdays []stats.LabelCount `json:"weekdays,omitempty"`
	Months   []stats.LabelCount `json:"months,omitempty"`

	// Heatmap is the weekday-by-hour activity grid.
	Heatmap *stats.Heatmap `json:"heatmap,omitempty"`

	// Words and Emoji are the frequency tables.
	Words []stats.WordCount  `json:"words,omitempty"`
	Emoji []stats.EmojiCount `json:"emoji,omitempty"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Source is the analyzed file path or upload name.
	Source string `json:"source,omitempty"`

	// Encoding is the character encoding that decoded the input.
	Encoding string `json:"encoding,omitempty"`

	// Degraded is true when decoding was lossy.
	Degraded bool `json:"degraded,omitempty"`

	// Grammar names the detected header grammar, if any.
	Grammar string `json:"grammar,omitempty"`

	// Author is the author filter applied, or "Overall".
	Author string `json:"author,omitempty"`

	// Records is the number of parsed records.
	Records int `json:"records"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// HasData returns true if any records were parsed.
func (r *Report) HasData() bool {
	return r.Metadata.Records > 0
}

// NewReport computes every report section from the record table.
func NewReport(a *stats.Analyzer, table *records.Table, cfg *config.Config, author string, meta Metadata) *Report {
	if author == "" {
		author = stats.Overall
	}

	meta.Author = author
	meta.Records = table.Len()

	report := &Report{
		Summary:  a.FetchOverview(table, author),
		Metadata: meta,
	}

	if table.Empty() {
		return report
	}

	if author == stats.Overall {
		report.Authors, report.AuthorShares = a.BusiestAuthors(table, cfg.TopAuthors)
	}

	report.Monthly = a.MonthlyTimeline(table, author)
	report.Daily = a.DailyTimeline(table, author)
	report.Weekdays = a.WeekdayActivity(table, author)
	report.Months = a.MonthActivity(table, author)
	report.Heatmap = a.HourlyHeatmap(table, author)
	report.Words = a.CommonWords(table, author, cfg.CommonWords)
	report.Emoji = a.TopEmoji(table, author, cfg.TopEmoji)

	return report
}
