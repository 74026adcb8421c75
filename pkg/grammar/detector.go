package grammar

import (
	"sort"
	"strings"
	"time"

	"github.com/ccollicutt/chatlens/pkg/timeparse"
)

// DetectionResult holds the result of analyzing a chat export sample.
type DetectionResult struct {
	Matches       []GrammarMatch // Grammars that matched, sorted by confidence descending
	SampledLines  int            // Number of lines sampled
	ParsedLines   int            // Number of lines matching the best grammar
	AmbiguityNote string         // Warning about date ordering if applicable
}

// GrammarMatch represents a grammar that matched with its confidence score.
type GrammarMatch struct {
	Grammar    *Grammar
	Confidence float64   // 0.0 to 1.0 (fraction of sampled lines matched)
	MatchCount int       // Number of lines that matched
	SampleLine string    // Example line that matched
	ParsedTime time.Time // Resolved timestamp from the sample line
}

// Detector analyzes chat exports to identify the header grammar in use.
type Detector struct {
	grammars   []*Grammar
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the maximum number of lines considered (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithGrammars replaces the default grammar set.
func WithGrammars(grammars []*Grammar) Option {
	return func(d *Detector) {
		if len(grammars) > 0 {
			d.grammars = grammars
		}
	}
}

// NewDetector creates a Detector over the default grammars.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		grammars:   DefaultGrammars(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromLines analyzes a slice of export lines, considering at
// most the configured sample size. Callers decode the export first so
// detection sees clean text regardless of the source encoding.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	if len(lines) > d.sampleSize {
		lines = lines[:d.sampleSize]
	}

	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	type grammarStats struct {
		grammar    *Grammar
		matchCount int
		sampleLine string
		parsedTime time.Time
	}

	stats := make(map[string]*grammarStats)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, g := range d.grammars {
			sub := g.Pattern.FindStringSubmatch(line)
			if sub == nil {
				continue
			}

			dateStr := sub[g.Pattern.SubexpIndex(groupDate)]
			timeStr := sub[g.Pattern.SubexpIndex(groupTime)]
			parsed, err := timeparse.Normalize(dateStr, timeStr, g.DateLayout, g.TimeLayout)
			if err != nil {
				continue
			}

			key := g.Name
			if stats[key] == nil {
				stats[key] = &grammarStats{
					grammar:    g,
					sampleLine: line,
					parsedTime: parsed,
				}
			}
			stats[key].matchCount++
			// A line counts once, for the highest-priority grammar.
			break
		}
	}

	for _, s := range stats {
		result.Matches = append(result.Matches, GrammarMatch{
			Grammar:    s.grammar,
			Confidence: float64(s.matchCount) / float64(len(lines)),
			MatchCount: s.matchCount,
			SampleLine: s.sampleLine,
			ParsedTime: s.parsedTime,
		})
	}

	// Sort by confidence descending, then by pattern length (more specific first)
	sort.Slice(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return len(result.Matches[i].Grammar.PatternStr) > len(result.Matches[j].Grammar.PatternStr)
	})

	if len(result.Matches) > 0 {
		result.ParsedLines = result.Matches[0].MatchCount
	}

	if len(result.Matches) > 0 && result.Matches[0].Grammar.Ambiguous {
		result.AmbiguityNote = "This grammar has date ordering ambiguity (DD/MM vs MM/DD). " +
			"Day-first order is assumed; month-first is used as a per-line fallback."
	}

	return result
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *GrammarMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one grammar matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
