package stats

import (
	"os"
	"sort"
	"strings"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// WordCount pairs a word with its frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// CommonWords returns the n most frequent lowercase words, excluding
// stopwords, media placeholders, and system entries. Ties break
// alphabetically for determinism.
func (a *Analyzer) CommonWords(t *records.Table, author string, n int) []WordCount {
	view := a.filtered(t, author)

	counts := make(map[string]int)
	for _, row := range view.Rows {
		if row.Author == a.sentinel || a.isMedia(row.Message) {
			continue
		}
		for _, word := range strings.Fields(strings.ToLower(row.Message)) {
			if _, stop := a.stopwords[word]; stop {
				continue
			}
			counts[word]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// LoadStopwords reads a whitespace-separated stopword file into a set.
// A missing file yields an empty set and no error, so analysis can run
// without one.
func LoadStopwords(path string) (map[string]struct{}, error) {
	words := make(map[string]struct{})
	if path == "" {
		return words, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		if os.IsNotExist(err) {
			return words, nil
		}
		return words, err
	}

	for _, w := range strings.Fields(string(data)) {
		words[strings.ToLower(w)] = struct{}{}
	}
	return words, nil
}
