package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout while fn runs and returns what was
// written. The command formatters print straight to stdout.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}
	return buf.String(), runErr
}

func TestRunDetect_TextOutput(t *testing.T) {
	chatPath := writeChat(t, `12/08/2025, 22:15 - Alice: See you tomorrow
12/08/2025, 22:16 - Bob: Sounds good
12/08/2025, 22:17 - Alice: ok
`)

	out, err := captureStdout(t, func() error {
		cmd := NewDetectCommand()
		cmd.SetArgs([]string{chatPath})
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	checks := []string{
		"Detected Grammar: Android 24-hour",
		"Confidence: 100.0% (3 of 3 lines)",
		"Lines sampled: 3",
		"Encoding: utf-8",
		"date ordering ambiguity",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("output missing %q\noutput:\n%s", check, out)
		}
	}
}

func TestRunDetect_JSONOutput(t *testing.T) {
	chatPath := writeChat(t, `1/8/2025, 22:15 - Alice: Hello
[12/08/2025, 10:15:03 PM] Bob: Hi
1/8/2025, 22:16 - Alice: bye
`)

	out, err := captureStdout(t, func() error {
		cmd := NewDetectCommand()
		cmd.SetArgs([]string{chatPath, "-o", "json", "--all"})
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var payload struct {
		File         string `json:"file"`
		Encoding     string `json:"encoding"`
		SampledLines int    `json:"sampled_lines"`
		ParsedLines  int    `json:"parsed_lines"`
		Matches      []struct {
			Grammar    string  `json:"grammar"`
			Confidence float64 `json:"confidence"`
			MatchCount int     `json:"match_count"`
		} `json:"matches"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v\noutput:\n%s", err, out)
	}

	if payload.SampledLines != 3 {
		t.Errorf("sampled_lines = %d, want 3", payload.SampledLines)
	}
	if payload.ParsedLines != 2 {
		t.Errorf("parsed_lines = %d, want 2", payload.ParsedLines)
	}
	if len(payload.Matches) != 2 {
		t.Fatalf("Got %d matches, want 2", len(payload.Matches))
	}
	if payload.Matches[0].Grammar != "Android 24-hour" {
		t.Errorf("matches[0].grammar = %q, want %q", payload.Matches[0].Grammar, "Android 24-hour")
	}
	if payload.Matches[0].MatchCount != 2 {
		t.Errorf("matches[0].match_count = %d, want 2", payload.Matches[0].MatchCount)
	}
	if payload.Matches[1].Grammar != "iOS bracketed 12-hour" {
		t.Errorf("matches[1].grammar = %q, want %q", payload.Matches[1].Grammar, "iOS bracketed 12-hour")
	}
}

func TestRunDetect_JSONBestMatchOnly(t *testing.T) {
	chatPath := writeChat(t, `12/08/2025, 22:15 - Alice: Hello
[12/08/2025, 10:15:03 PM] Bob: Hi
12/08/2025, 22:16 - Alice: bye
`)

	out, err := captureStdout(t, func() error {
		cmd := NewDetectCommand()
		cmd.SetArgs([]string{chatPath, "-o", "json"})
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var payload struct {
		Matches []struct {
			Grammar string `json:"grammar"`
		} `json:"matches"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(payload.Matches) != 1 {
		t.Errorf("Got %d matches without --all, want 1", len(payload.Matches))
	}
}

func TestRunDetect_NoMatch(t *testing.T) {
	chatPath := writeChat(t, "just some prose\nwithout any headers\n")

	out, err := captureStdout(t, func() error {
		cmd := NewDetectCommand()
		cmd.SetArgs([]string{chatPath})
		return cmd.Execute()
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out, "No header grammar detected.") {
		t.Errorf("output missing no-match notice\noutput:\n%s", out)
	}
	if !strings.Contains(out, "chatlens diagnose") {
		t.Errorf("output missing diagnose hint\noutput:\n%s", out)
	}
}

func TestRunDetect_MissingFile(t *testing.T) {
	cmd := NewDetectCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.txt")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want error for missing file")
	}
}
