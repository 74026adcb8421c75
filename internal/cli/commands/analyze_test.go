package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func writeChat(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAnalyze_Success(t *testing.T) {
	ExitCode = 0
	chatPath := writeChat(t, `12/08/2025, 22:15 - Alice: See you tomorrow
12/08/2025, 22:16 - Bob: Sounds good
`)

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{chatPath, "--output", "json", "--quiet"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

func TestRunAnalyze_NoData(t *testing.T) {
	ExitCode = 0
	chatPath := writeChat(t, "no chat headers in this file\n")

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{chatPath, "--quiet"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1 when nothing parsed", ExitCode)
	}
}

func TestRunAnalyze_MissingFile(t *testing.T) {
	ExitCode = 0

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.txt")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want error for missing file")
	}
}

func TestRunAnalyze_WithConfig(t *testing.T) {
	ExitCode = 0
	chatPath := writeChat(t, "12/08/2025, 22:15 - system_user joined\n12/08/2025, 22:16 - Alice: hi\n")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := "sentinel_author: system\ntop_authors: 2\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{chatPath, "--config", configPath, "--output", "json", "--quiet"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

func TestRunAnalyze_BadOutputFormat(t *testing.T) {
	ExitCode = 0
	chatPath := writeChat(t, "12/08/2025, 22:15 - Alice: hi\n")

	cmd := NewAnalyzeCommand()
	cmd.SetArgs([]string{chatPath, "--output", "yaml"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want error for unknown format")
	}
}
