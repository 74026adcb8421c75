// Package parser provides the line-by-line message assembler that
// turns decoded chat export text into ordered records.
package parser

import (
	"strings"
	"time"

	"github.com/ccollicutt/chatlens/pkg/grammar"
	"github.com/ccollicutt/chatlens/pkg/records"
	"github.com/ccollicutt/chatlens/pkg/timeparse"
)

// DefaultSentinelAuthor identifies system/notification entries that
// carry no human author.
const DefaultSentinelAuthor = "group_notification"

// Assembler scans export text line by line, delimiting messages at
// recognized header lines and accumulating continuation lines into the
// current message body. An Assembler holds no state between calls;
// each Parse owns its accumulator exclusively.
type Assembler struct {
	matcher  *grammar.Matcher
	sentinel string
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithSentinelAuthor overrides the author assigned to header lines
// with no identifiable sender.
func WithSentinelAuthor(s string) AssemblerOption {
	return func(a *Assembler) {
		if s != "" {
			a.sentinel = s
		}
	}
}

// WithGrammars replaces the default header grammar set.
func WithGrammars(grammars []*grammar.Grammar) AssemblerOption {
	return func(a *Assembler) {
		if len(grammars) > 0 {
			a.matcher = grammar.NewMatcher(grammars)
		}
	}
}

// New creates an Assembler over the default grammars.
func New(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		matcher:  grammar.NewMatcher(),
		sentinel: DefaultSentinelAuthor,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// pending is the single mutable accumulator of a scan. A nil pending
// is the initial state: lines seen before any header are discarded. A
// pending with a zero timestamp came from a header whose date/time
// could not be resolved; it accumulates but is never emitted.
type pending struct {
	ts     timestamp
	author string
	body   []string
}

// timestamp wraps the resolved instant so the zero value is an
// explicit "unresolved" marker.
type timestamp struct {
	at       time.Time
	resolved bool
}

// Parse splits text into records. The scan is total: malformed lines
// are absorbed (treated as continuations or dropped), never fatal.
// Input with no recognizable header yields zero records.
func (a *Assembler) Parse(text string) []records.Record {
	var out []records.Record
	var cur *pending

	flush := func() {
		if cur == nil || !cur.ts.resolved {
			return
		}
		out = append(out, records.Record{
			Timestamp: cur.ts.at,
			Author:    cur.author,
			Body:      strings.TrimSpace(strings.Join(cur.body, "\n")),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := a.matcher.Detect(line)
		if m == nil {
			// Continuation line. Before the first header there is no
			// message to attach to; such preamble is dropped.
			if cur != nil {
				cur.body = append(cur.body, line)
			}
			continue
		}

		flush()
		cur = a.seed(m)
	}

	flush()
	return out
}

// Table runs Parse and builds the derived-field table in one step.
func (a *Assembler) Table(text string) *records.Table {
	return records.Build(a.Parse(text))
}

// seed starts a new pending message from a recognized header.
func (a *Assembler) seed(m *grammar.Match) *pending {
	p := &pending{author: a.resolveAuthor(m)}

	if m.Message != "" {
		p.body = append(p.body, m.Message)
	}

	ts, err := timeparse.Normalize(m.Date, m.Time, m.Grammar.DateLayout, m.Grammar.TimeLayout)
	if err != nil {
		// Unresolvable timestamp: the record will be dropped at flush,
		// but the header still delimits, so continuations attach here
		// rather than to the previous message.
		return p
	}

	p.ts = timestamp{at: ts, resolved: true}
	return p
}

// resolveAuthor maps an absent or blank author capture to the sentinel.
func (a *Assembler) resolveAuthor(m *grammar.Match) string {
	if !m.Grammar.HasAuthor {
		return a.sentinel
	}
	author := strings.TrimSpace(m.Author)
	if author == "" {
		return a.sentinel
	}
	return author
}
