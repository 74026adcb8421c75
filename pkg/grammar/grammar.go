// Package grammar provides header-line recognition for chat exports.
// The known header styles are data, not code: adding a new export
// format means appending a Grammar entry, not changing control flow.
package grammar

// Match is the result of recognizing a header line: the winning
// grammar plus its captured substrings.
type Match struct {
	Grammar *Grammar

	// Date and Time are the raw captured substrings, not yet parsed.
	Date string
	Time string

	// Author is the captured sender name; empty when the grammar has
	// no author capture (system lines).
	Author string

	// Message is the inline message fragment on the header line, if any.
	Message string
}

// Matcher evaluates lines against an ordered grammar set.
type Matcher struct {
	grammars []*Grammar
}

// NewMatcher creates a Matcher. With no argument the default grammar
// set is used.
func NewMatcher(grammars ...[]*Grammar) *Matcher {
	if len(grammars) > 0 && len(grammars[0]) > 0 {
		return &Matcher{grammars: grammars[0]}
	}
	return &Matcher{grammars: DefaultGrammars()}
}

// Grammars returns the matcher's grammar set in priority order.
func (m *Matcher) Grammars() []*Grammar {
	return m.grammars
}

// Detect reports whether line starts a new message. Grammars are tried
// in priority order; the first structural match wins. Returns nil when
// no grammar matches; such lines are continuation lines, never records.
func (m *Matcher) Detect(line string) *Match {
	for _, g := range m.grammars {
		sub := g.Pattern.FindStringSubmatch(line)
		if sub == nil {
			continue
		}
		match := &Match{Grammar: g}
		if i := g.Pattern.SubexpIndex(groupDate); i >= 0 {
			match.Date = sub[i]
		}
		if i := g.Pattern.SubexpIndex(groupTime); i >= 0 {
			match.Time = sub[i]
		}
		if i := g.Pattern.SubexpIndex(groupAuthor); i >= 0 {
			match.Author = sub[i]
		}
		if i := g.Pattern.SubexpIndex(groupMsg); i >= 0 {
			match.Message = sub[i]
		}
		return match
	}
	return nil
}
