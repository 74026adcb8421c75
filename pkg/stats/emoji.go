package stats

import (
	"regexp"
	"sort"

	"github.com/forPelevin/gomoji"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// EmojiFinder extracts the emoji occurring in a piece of text. It is a
// capability interface: the default implementation is library-backed,
// with a regex fallback for environments that want no dependency on
// the emoji catalog.
type EmojiFinder interface {
	Find(s string) []string
}

// NewEmojiFinder returns the catalog-backed finder.
func NewEmojiFinder() EmojiFinder {
	return gomojiFinder{}
}

// NewFallbackEmojiFinder returns the Unicode-range regex finder. It
// trades classification accuracy for independence from the catalog.
func NewFallbackEmojiFinder() EmojiFinder {
	return regexFinder{re: emojiRE}
}

type gomojiFinder struct{}

func (gomojiFinder) Find(s string) []string {
	found := gomoji.FindAll(s)
	out := make([]string, 0, len(found))
	for _, e := range found {
		out = append(out, e.Character)
	}
	return out
}

// emojiRE covers the common emoji blocks: flags, pictographs,
// emoticons, transport, supplemental symbols, misc symbols, dingbats.
var emojiRE = regexp.MustCompile(`[\x{1F1E6}-\x{1F1FF}]|[\x{1F300}-\x{1F5FF}]|[\x{1F600}-\x{1F64F}]|[\x{1F680}-\x{1F6FF}]|[\x{1F700}-\x{1F77F}]|[\x{1F780}-\x{1F7FF}]|[\x{1F800}-\x{1F8FF}]|[\x{1F900}-\x{1F9FF}]|[\x{1FA00}-\x{1FAFF}]|[\x{2600}-\x{26FF}]|[\x{2700}-\x{27BF}]`)

type regexFinder struct {
	re *regexp.Regexp
}

func (f regexFinder) Find(s string) []string {
	return f.re.FindAllString(s, -1)
}

// EmojiCount pairs an emoji with its frequency.
type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

// TopEmoji returns the n most frequent emoji for the given author.
// Ties break by code point for determinism.
func (a *Analyzer) TopEmoji(t *records.Table, author string, n int) []EmojiCount {
	view := a.filtered(t, author)

	counts := make(map[string]int)
	for _, row := range view.Rows {
		for _, e := range a.emoji.Find(row.Message) {
			counts[e]++
		}
	}

	out := make([]EmojiCount, 0, len(counts))
	for e, count := range counts {
		out = append(out, EmojiCount{Emoji: e, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Emoji < out[j].Emoji
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
