package grammar

import (
	"testing"
	"time"
)

func TestDetector_DetectFromLines(t *testing.T) {
	lines := []string{
		"12/08/2025, 22:15 - Alice: Hello",
		"12/08/2025, 22:16 - Bob: Hi there",
		"a continuation line",
		"12/08/2025, 22:17 - Alice: Bye",
	}

	result := NewDetector().DetectFromLines(lines)

	if !result.HasMatch() {
		t.Fatal("HasMatch() = false, want true")
	}

	best := result.BestMatch()
	if best.Grammar.Name != "Android 24-hour" {
		t.Errorf("BestMatch grammar = %q, want %q", best.Grammar.Name, "Android 24-hour")
	}
	if best.MatchCount != 3 {
		t.Errorf("MatchCount = %d, want 3", best.MatchCount)
	}
	if best.Confidence != 0.75 {
		t.Errorf("Confidence = %v, want 0.75", best.Confidence)
	}
	if best.SampleLine != "12/08/2025, 22:15 - Alice: Hello" {
		t.Errorf("SampleLine = %q", best.SampleLine)
	}
	wantTime := time.Date(2025, 8, 12, 22, 15, 0, 0, time.UTC)
	if !best.ParsedTime.Equal(wantTime) {
		t.Errorf("ParsedTime = %v, want %v", best.ParsedTime, wantTime)
	}
	if result.SampledLines != 4 {
		t.Errorf("SampledLines = %d, want 4", result.SampledLines)
	}
	if result.ParsedLines != 3 {
		t.Errorf("ParsedLines = %d, want 3", result.ParsedLines)
	}
}

func TestDetector_DetectFromLines_NoMatch(t *testing.T) {
	lines := []string{
		"INFO starting service",
		"WARN disk nearly full",
	}

	result := NewDetector().DetectFromLines(lines)

	if result.HasMatch() {
		t.Errorf("HasMatch() = true, want false")
	}
	if result.BestMatch() != nil {
		t.Errorf("BestMatch() = %v, want nil", result.BestMatch())
	}
}

func TestDetector_DetectFromLines_Empty(t *testing.T) {
	result := NewDetector().DetectFromLines(nil)

	if result.HasMatch() {
		t.Error("HasMatch() = true for empty input")
	}
	if result.SampledLines != 0 {
		t.Errorf("SampledLines = %d, want 0", result.SampledLines)
	}
}

func TestDetector_DetectFromLines_UnresolvableNotCounted(t *testing.T) {
	// Structurally valid headers whose dates cannot resolve must not
	// contribute confidence.
	lines := []string{
		"31/02/2025, 22:15 - Alice: impossible date",
		"12/08/2025, 22:15 - Bob: fine",
	}

	result := NewDetector().DetectFromLines(lines)

	if !result.HasMatch() {
		t.Fatal("HasMatch() = false, want true")
	}
	if got := result.BestMatch().MatchCount; got != 1 {
		t.Errorf("MatchCount = %d, want 1", got)
	}
}

func TestDetector_DetectFromLines_AmbiguityNote(t *testing.T) {
	result := NewDetector().DetectFromLines([]string{
		"12/08/2025, 22:15 - Alice: Hello",
	})

	if result.AmbiguityNote == "" {
		t.Error("AmbiguityNote empty, want date ordering warning")
	}
}

func TestDetector_WithSampleSize(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "12/08/2025, 22:15 - Alice: Hello"
	}

	result := NewDetector(WithSampleSize(10)).DetectFromLines(lines)

	if result.SampledLines != 10 {
		t.Errorf("SampledLines = %d, want 10", result.SampledLines)
	}
	if got := result.BestMatch().MatchCount; got != 10 {
		t.Errorf("MatchCount = %d, want 10", got)
	}
}
