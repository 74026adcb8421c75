package grammar

import "regexp"

// Grammar describes one known export header style: a structural pattern
// plus the date/time format hints needed to resolve its timestamps.
type Grammar struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled regex (set during init)
	PatternStr string         // Pattern string for diagnostics
	DateLayout string         // Go time layout for the date capture
	TimeLayout string         // Go time layout for the time capture; empty means infer per line
	HasAuthor  bool           // False for system/notification header styles
	Ambiguous  bool           // True if the date capture has day/month ordering ambiguity
	Examples   []string       // Example header lines
}

// Capture group names shared by all grammars. Author and msg may be
// absent from a pattern; date and time are mandatory.
const (
	groupDate   = "date"
	groupTime   = "time"
	groupAuthor = "author"
	groupMsg    = "msg"
)

// DefaultGrammars returns the built-in header grammars in priority
// order. Order is significant and fixed: grammars requiring an AM/PM
// marker come before their 24-hour twins so the marker is never
// swallowed into the message body, and authored grammars come before
// the authorless system-line variants.
func DefaultGrammars() []*Grammar {
	grammars := []*Grammar{
		// Android export, 12-hour clock: "12/08/2025, 10:15 pm - Name: Message"
		{
			Name:       "Android 12-hour",
			PatternStr: `^(?P<date>\d{1,2}/\d{1,2}/\d{2,4}), (?P<time>\d{1,2}:\d{2}\s?[APap][Mm]) - (?P<author>[^:]+): (?P<msg>.*)$`,
			DateLayout: "2/1/2006",
			TimeLayout: "3:04 PM",
			HasAuthor:  true,
			Ambiguous:  true,
			Examples:   []string{"12/08/2025, 10:15 pm - Alice: Hello"},
		},
		// Android export, 24-hour clock: "12/08/2025, 22:15 - Name: Message"
		{
			Name:       "Android 24-hour",
			PatternStr: `^(?P<date>\d{1,2}/\d{1,2}/\d{2,4}), (?P<time>\d{1,2}:\d{2}) - (?P<author>[^:]+): (?P<msg>.*)$`,
			DateLayout: "2/1/2006",
			TimeLayout: "15:04",
			HasAuthor:  true,
			Ambiguous:  true,
			Examples:   []string{"12/08/2025, 22:15 - Alice: Hello"},
		},
		// iOS export, 12-hour clock, optional seconds:
		// "[12/08/2025, 10:15:03 PM] Name: Message"
		{
			Name:       "iOS bracketed 12-hour",
			PatternStr: `^\[(?P<date>\d{1,2}/\d{1,2}/\d{2,4}), (?P<time>\d{1,2}:\d{2}(?::\d{2})?\s?[APap][Mm])\] (?P<author>[^:]+): (?P<msg>.*)$`,
			DateLayout: "2/1/2006",
			TimeLayout: "", // with or without seconds; inferred per line
			HasAuthor:  true,
			Ambiguous:  true,
			Examples:   []string{"[12/08/2025, 10:15:03 PM] Bob: Hi"},
		},
		// iOS export, 24-hour clock, optional seconds:
		// "[12/08/2025, 22:15] Name: Message"
		{
			Name:       "iOS bracketed 24-hour",
			PatternStr: `^\[(?P<date>\d{1,2}/\d{1,2}/\d{2,4}), (?P<time>\d{1,2}:\d{2}(?::\d{2})?)\] (?P<author>[^:]+): (?P<msg>.*)$`,
			DateLayout: "2/1/2006",
			TimeLayout: "",
			HasAuthor:  true,
			Ambiguous:  true,
			Examples:   []string{"[12/08/2025, 22:15:03] Bob: Hi"},
		},
		// Android system/notification line, 12-hour clock (no author):
		// "12/08/2025, 10:15 pm - Alice added Bob"
		{
			Name:       "Android 12-hour system",
			PatternStr: `^(?P<date>\d{1,2}/\d{1,2}/\d{2,4}), (?P<time>\d{1,2}:\d{2}\s?[APap][Mm]) - (?P<msg>.*)$`,
			DateLayout: "2/1/2006",
			TimeLayout: "3:04 PM",
			Ambiguous:  true,
			Examples:   []string{"12/08/2025, 10:15 pm - Alice added Bob"},
		},
		// Android system/notification line, 24-hour clock (no author):
		// "12/08/2025, 22:15 - Messages and calls are end-to-end encrypted"
		{
			Name:       "Android 24-hour system",
			PatternStr: `^(?P<date>\d{1,2}/\d{1,2}/\d{2,4}), (?P<time>\d{1,2}:\d{2}) - (?P<msg>.*)$`,
			DateLayout: "2/1/2006",
			TimeLayout: "15:04",
			Ambiguous:  true,
			Examples:   []string{"12/08/2025, 22:15 - Alice left"},
		},
		// iOS system/notification line (no author):
		// "[12/08/2025, 22:15:03] Alice changed the group name"
		{
			Name:       "iOS bracketed system",
			PatternStr: `^\[(?P<date>\d{1,2}/\d{1,2}/\d{2,4}), (?P<time>\d{1,2}:\d{2}(?::\d{2})?(?:\s?[APap][Mm])?)\] (?P<msg>.*)$`,
			DateLayout: "2/1/2006",
			TimeLayout: "",
			Ambiguous:  true,
			Examples:   []string{"[12/08/2025, 22:15:03] Alice changed the group name"},
		},
	}

	// Compile all patterns
	for _, g := range grammars {
		g.Pattern = regexp.MustCompile(g.PatternStr)
	}

	return grammars
}
