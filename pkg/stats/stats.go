// Package stats computes usage statistics over the normalized record
// table. All functions read the table without mutating it and return
// empty/zeroed results for an empty table.
package stats

import (
	"regexp"
	"strings"
	"time"

	"mvdan.cc/xurls/v2"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// Overall selects the whole table instead of a single author.
const Overall = "Overall"

// Analyzer holds the knobs shared by the aggregation functions.
type Analyzer struct {
	sentinel     string
	mediaMarkers []string
	stopwords    map[string]struct{}
	urls         *regexp.Regexp
	emoji        EmojiFinder
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithSentinelAuthor sets the author name identifying system entries.
func WithSentinelAuthor(s string) AnalyzerOption {
	return func(a *Analyzer) {
		if s != "" {
			a.sentinel = s
		}
	}
}

// WithMediaMarkers replaces the media placeholder list.
func WithMediaMarkers(markers []string) AnalyzerOption {
	return func(a *Analyzer) {
		if len(markers) > 0 {
			a.mediaMarkers = markers
		}
	}
}

// WithStopwords sets the excluded word set for word-frequency tables.
func WithStopwords(words map[string]struct{}) AnalyzerOption {
	return func(a *Analyzer) {
		if words != nil {
			a.stopwords = words
		}
	}
}

// WithEmojiFinder substitutes the emoji detection capability.
func WithEmojiFinder(f EmojiFinder) AnalyzerOption {
	return func(a *Analyzer) {
		if f != nil {
			a.emoji = f
		}
	}
}

// NewAnalyzer creates an Analyzer with default markers, no stopwords,
// strict URL matching, and library-backed emoji detection.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		sentinel:     "group_notification",
		mediaMarkers: DefaultMediaMarkers(),
		stopwords:    map[string]struct{}{},
		urls:         xurls.Strict(),
		emoji:        NewEmojiFinder(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Overview is the headline statistics block.
type Overview struct {
	Messages int       `json:"messages"`
	Words    int       `json:"words"`
	Media    int       `json:"media"`
	Links    int       `json:"links"`
	Authors  int       `json:"authors"`
	First    time.Time `json:"first,omitempty"`
	Last     time.Time `json:"last,omitempty"`
}

// FetchOverview computes message, word, media, and link counts for the
// given author ("" or Overall for the whole table).
func (a *Analyzer) FetchOverview(t *records.Table, author string) Overview {
	view := a.filtered(t, author)
	ov := Overview{Authors: len(t.Authors(a.sentinel))}

	for _, row := range view.Rows {
		msg := row.Message

		if strings.TrimSpace(msg) != "" {
			ov.Messages++
		}

		if a.isMedia(msg) {
			ov.Media++
		} else {
			ov.Words += len(strings.Fields(msg))
		}

		ov.Links += len(a.urls.FindAllString(msg, -1))

		if ov.First.IsZero() || row.Timestamp.Before(ov.First) {
			ov.First = row.Timestamp
		}
		if row.Timestamp.After(ov.Last) {
			ov.Last = row.Timestamp
		}
	}

	return ov
}

// filtered returns the rows for one author, or the whole table when
// author is blank or Overall. Views are copies; the table is shared.
func (a *Analyzer) filtered(t *records.Table, author string) *records.Table {
	if author == "" || author == Overall {
		return t
	}
	return t.ByAuthor(author)
}

// isMedia reports whether a message is a media placeholder ("<Media
// omitted>" and friends), case-insensitively.
func (a *Analyzer) isMedia(msg string) bool {
	s := strings.ToLower(strings.TrimSpace(msg))
	if s == "" {
		return false
	}
	for _, marker := range a.mediaMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// DefaultMediaMarkers lists the export placeholders substituted for
// attachments when a chat is exported without media. All lowercase;
// matching is done on lowercased text.
func DefaultMediaMarkers() []string {
	return []string{
		"<media omitted>", "<image omitted>", "<video omitted>",
		"<document omitted>", "<audio omitted>", "<sticker omitted>",
		"media omitted", "image omitted", "video omitted", "sticker omitted",
		"document omitted", "audio omitted", "gif omitted",
	}
}
