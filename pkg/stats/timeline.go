package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/ccollicutt/chatlens/pkg/records"
)

// MonthBucket is one month of activity.
type MonthBucket struct {
	Year     int    `json:"year"`
	MonthNum int    `json:"month_num"`
	Month    string `json:"month"`
	Label    string `json:"label"` // e.g. "August-2025"
	Count    int    `json:"count"`
}

// DayBucket is one calendar day of activity.
type DayBucket struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// LabelCount is a generic labelled count, sorted busiest-first.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Heatmap is a weekday-by-hour activity grid. Rows follow time.Weekday
// order (Sunday first); columns are hours 0-23.
type Heatmap struct {
	Days   [7]string  `json:"days"`
	Counts [7][24]int `json:"counts"`
	Total  int        `json:"total"`
}

// MonthlyTimeline groups messages by (year, month), chronologically.
func (a *Analyzer) MonthlyTimeline(t *records.Table, author string) []MonthBucket {
	view := a.filtered(t, author)

	counts := make(map[[2]int]int)
	for _, row := range view.Rows {
		counts[[2]int{row.Year, row.MonthNum}]++
	}

	out := make([]MonthBucket, 0, len(counts))
	for key, count := range counts {
		month := time.Month(key[1]).String()
		out = append(out, MonthBucket{
			Year:     key[0],
			MonthNum: key[1],
			Month:    month,
			Label:    fmt.Sprintf("%s-%d", month, key[0]),
			Count:    count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].MonthNum < out[j].MonthNum
	})
	return out
}

// DailyTimeline groups messages by calendar day, chronologically.
func (a *Analyzer) DailyTimeline(t *records.Table, author string) []DayBucket {
	view := a.filtered(t, author)

	counts := make(map[time.Time]int)
	for _, row := range view.Rows {
		counts[row.DateOnly]++
	}

	out := make([]DayBucket, 0, len(counts))
	for day, count := range counts {
		out = append(out, DayBucket{Date: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// WeekdayActivity counts messages per weekday name, busiest first.
func (a *Analyzer) WeekdayActivity(t *records.Table, author string) []LabelCount {
	view := a.filtered(t, author)
	counts := make(map[string]int)
	for _, row := range view.Rows {
		counts[row.DayName]++
	}
	return rankLabels(counts)
}

// MonthActivity counts messages per month name, busiest first.
func (a *Analyzer) MonthActivity(t *records.Table, author string) []LabelCount {
	view := a.filtered(t, author)
	counts := make(map[string]int)
	for _, row := range view.Rows {
		counts[row.Month]++
	}
	return rankLabels(counts)
}

// HourlyHeatmap pivots messages into a weekday-by-hour grid.
func (a *Analyzer) HourlyHeatmap(t *records.Table, author string) *Heatmap {
	view := a.filtered(t, author)

	hm := &Heatmap{}
	for i := 0; i < 7; i++ {
		hm.Days[i] = time.Weekday(i).String()
	}

	for _, row := range view.Rows {
		hm.Counts[int(row.Timestamp.Weekday())][row.Timestamp.Hour()]++
		hm.Total++
	}
	return hm
}

// rankLabels sorts labelled counts descending, ties alphabetically.
func rankLabels(counts map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
