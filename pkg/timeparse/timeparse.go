// Package timeparse resolves the ambiguous date/time substrings
// captured from chat export headers into absolute instants.
//
// Ambiguity is handled as an explicit ordered list of parse strategies
// tried first-success-wins: day-first date order before month-first,
// and a 2-digit-year layout variant when the year segment is short.
// Two-digit years follow the stdlib rule for the "06" layout: 69-99
// map to 1969-1999, 00-68 map to 2000-2068.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrUnresolvable reports that a structurally valid header could not
// be resolved to an instant under any fallback ordering. Callers drop
// the record and continue; this is never fatal to a scan.
var ErrUnresolvable = errors.New("timestamp unresolvable")

// InferLayout is the sentinel layout hint meaning the time format must
// be classified per line from the captured substring.
const InferLayout = ""

// Time-of-day layouts, selected by seconds presence and AM/PM marker.
const (
	layout24h    = "15:04"
	layout24hSec = "15:04:05"
	layout12h    = "3:04 PM"
	layout12hSec = "3:04:05 PM"
)

var meridiemRE = regexp.MustCompile(`(?i)\s*([ap])\.?m\.?\s*$`)

// Normalize resolves raw date and time substrings plus format hints to
// a single absolute instant in UTC. timeLayout may be InferLayout.
func Normalize(dateStr, timeStr, dateLayout, timeLayout string) (time.Time, error) {
	if timeLayout == InferLayout {
		timeLayout = ClassifyTime(timeStr)
	}

	tod, err := time.Parse(timeLayout, canonicalTime(timeStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q as %q: %w", timeStr, timeLayout, ErrUnresolvable)
	}

	day, err := parseDate(dateStr, dateLayout)
	if err != nil {
		return time.Time{}, err
	}

	// Seconds default to zero when the layout has no seconds component.
	return time.Date(day.Year(), day.Month(), day.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC), nil
}

// ClassifyTime picks a concrete time-of-day layout from the structural
// features of the captured substring: a seconds component (three
// colon-separated groups) and an AM/PM marker.
func ClassifyTime(timeStr string) string {
	hasSeconds := strings.Count(timeStr, ":") >= 2
	hasMeridiem := meridiemRE.MatchString(timeStr)

	switch {
	case hasSeconds && hasMeridiem:
		return layout12hSec
	case hasSeconds:
		return layout24hSec
	case hasMeridiem:
		return layout12h
	default:
		return layout24h
	}
}

// canonicalTime rewrites an AM/PM suffix to the single uppercase
// spaced form the layouts expect ("10:15pm" -> "10:15 PM") and pads a
// single-digit hour, which the 24-hour layouts require.
func canonicalTime(s string) string {
	base := strings.TrimSpace(s)
	suffix := ""
	if m := meridiemRE.FindStringSubmatch(s); m != nil {
		base = strings.TrimSpace(s[:len(s)-len(m[0])])
		suffix = " " + strings.ToUpper(m[1]) + "M"
	}
	if strings.Index(base, ":") == 1 {
		base = "0" + base
	}
	return base + suffix
}

// parseDate tries the hint layout first, then the swapped day/month
// order; each uses the 2-digit-year variant when the year segment has
// fewer than four digits.
func parseDate(dateStr, layout string) (time.Time, error) {
	if shortYear(dateStr) {
		layout = strings.Replace(layout, "2006", "06", 1)
	}
	return firstMatch(dateStr, []string{layout, swapDayMonth(layout)})
}

// firstMatch tries each layout in order and returns the first parse
// that succeeds.
func firstMatch(value string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q under %v: %w", value, layouts, ErrUnresolvable)
}

// shortYear reports whether the final date segment has fewer than four
// digits, i.e. a 2-digit year.
func shortYear(dateStr string) bool {
	seg := dateStr
	if i := strings.LastIndex(dateStr, "/"); i >= 0 {
		seg = dateStr[i+1:]
	}
	return len(seg) < 4
}

// swapDayMonth exchanges the day and month tokens of a numeric date
// layout. Tokens are swapped per slash-separated segment so the year
// token is never touched.
func swapDayMonth(layout string) string {
	parts := strings.Split(layout, "/")
	for i, p := range parts {
		switch p {
		case "2":
			parts[i] = "1"
		case "1":
			parts[i] = "2"
		case "02":
			parts[i] = "01"
		case "01":
			parts[i] = "02"
		}
	}
	return strings.Join(parts, "/")
}
