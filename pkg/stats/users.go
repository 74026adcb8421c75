package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// AuthorCount pairs an author with their message count.
type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// AuthorShare pairs an author with their percentage of all messages.
type AuthorShare struct {
	Author  string  `json:"author"`
	Percent float64 `json:"percent"`
}

// BusiestAuthors returns the top-n authors by message count and the
// full percentage-share table. System entries and blank authors are
// excluded. Ties break alphabetically for determinism.
func (a *Analyzer) BusiestAuthors(t *records.Table, n int) ([]AuthorCount, []AuthorShare) {
	counts := make(map[string]int)
	total := 0
	for _, row := range t.Rows {
		author := strings.TrimSpace(row.Author)
		if author == "" || author == a.sentinel {
			continue
		}
		counts[author]++
		total++
	}

	ranked := make([]AuthorCount, 0, len(counts))
	for author, count := range counts {
		ranked = append(ranked, AuthorCount{Author: author, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Author < ranked[j].Author
	})

	shares := make([]AuthorShare, 0, len(ranked))
	for _, ac := range ranked {
		pct := float64(ac.Count) / float64(max(1, total)) * 100
		shares = append(shares, AuthorShare{
			Author:  ac.Author,
			Percent: math.Round(pct*100) / 100,
		})
	}

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, shares
}
