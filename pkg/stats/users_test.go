package stats

import (
	"testing"
	"time"

	"github.com/ccollicutt/chatlens/pkg/records"
)

func TestAnalyzer_BusiestAuthors(t *testing.T) {
	ts := time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC)
	table := records.Build([]records.Record{
		{Timestamp: ts, Author: "Alice", Body: "a"},
		{Timestamp: ts, Author: "Alice", Body: "b"},
		{Timestamp: ts, Author: "Alice", Body: "c"},
		{Timestamp: ts, Author: "Bob", Body: "d"},
		{Timestamp: ts, Author: "group_notification", Body: "e"},
	})

	ranked, shares := NewAnalyzer().BusiestAuthors(table, 5)

	if len(ranked) != 2 {
		t.Fatalf("Got %d ranked authors, want 2", len(ranked))
	}
	if ranked[0].Author != "Alice" || ranked[0].Count != 3 {
		t.Errorf("ranked[0] = %+v, want Alice/3", ranked[0])
	}
	if ranked[1].Author != "Bob" || ranked[1].Count != 1 {
		t.Errorf("ranked[1] = %+v, want Bob/1", ranked[1])
	}

	if len(shares) != 2 {
		t.Fatalf("Got %d shares, want 2", len(shares))
	}
	if shares[0].Percent != 75.0 {
		t.Errorf("shares[0].Percent = %v, want 75", shares[0].Percent)
	}
	if shares[1].Percent != 25.0 {
		t.Errorf("shares[1].Percent = %v, want 25", shares[1].Percent)
	}
}

func TestAnalyzer_BusiestAuthors_Rounding(t *testing.T) {
	ts := time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC)
	recs := []records.Record{
		{Timestamp: ts, Author: "Alice", Body: "a"},
		{Timestamp: ts, Author: "Bob", Body: "b"},
		{Timestamp: ts, Author: "Carol", Body: "c"},
	}
	table := records.Build(recs)

	_, shares := NewAnalyzer().BusiestAuthors(table, 0)

	// 1/3 rounds to two decimal places.
	for _, s := range shares {
		if s.Percent != 33.33 {
			t.Errorf("Percent = %v, want 33.33", s.Percent)
		}
	}
}

func TestAnalyzer_BusiestAuthors_TieOrder(t *testing.T) {
	ts := time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC)
	table := records.Build([]records.Record{
		{Timestamp: ts, Author: "Zed", Body: "a"},
		{Timestamp: ts, Author: "Amy", Body: "b"},
	})

	ranked, _ := NewAnalyzer().BusiestAuthors(table, 5)

	if ranked[0].Author != "Amy" || ranked[1].Author != "Zed" {
		t.Errorf("tie order = [%s %s], want alphabetical", ranked[0].Author, ranked[1].Author)
	}
}

func TestAnalyzer_BusiestAuthors_TopN(t *testing.T) {
	ts := time.Date(2025, 8, 11, 9, 0, 0, 0, time.UTC)
	table := records.Build([]records.Record{
		{Timestamp: ts, Author: "Alice", Body: "a"},
		{Timestamp: ts, Author: "Alice", Body: "b"},
		{Timestamp: ts, Author: "Bob", Body: "c"},
		{Timestamp: ts, Author: "Carol", Body: "d"},
	})

	ranked, shares := NewAnalyzer().BusiestAuthors(table, 2)

	if len(ranked) != 2 {
		t.Errorf("Got %d ranked, want 2 (truncated)", len(ranked))
	}
	// The share table is never truncated.
	if len(shares) != 3 {
		t.Errorf("Got %d shares, want 3", len(shares))
	}
}

func TestAnalyzer_BusiestAuthors_Empty(t *testing.T) {
	ranked, shares := NewAnalyzer().BusiestAuthors(records.Build(nil), 5)
	if len(ranked) != 0 || len(shares) != 0 {
		t.Errorf("Got %d/%d entries for empty table, want 0/0", len(ranked), len(shares))
	}
}
