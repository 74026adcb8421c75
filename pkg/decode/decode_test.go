package decode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDecode_UTF8(t *testing.T) {
	got := Decode([]byte("hello, été"))

	if got.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", got.Encoding)
	}
	if got.Text != "hello, été" {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Degraded {
		t.Error("Degraded = true for valid UTF-8")
	}
}

func TestDecode_UTF8BOMStripped(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	got := Decode(raw)

	if got.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", got.Encoding)
	}
	if got.Text != "hello" {
		t.Errorf("Text = %q, want %q (BOM stripped)", got.Text, "hello")
	}
}

func TestDecode_UTF16LE(t *testing.T) {
	// "hi" as UTF-16LE with BOM
	raw := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	got := Decode(raw)

	if got.Encoding != "utf-16" {
		t.Errorf("Encoding = %q, want utf-16", got.Encoding)
	}
	if got.Text != "hi" {
		t.Errorf("Text = %q, want %q", got.Text, "hi")
	}
	if got.Degraded {
		t.Error("Degraded = true for BOM-marked UTF-16")
	}
}

func TestDecode_UTF16BE(t *testing.T) {
	raw := []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}
	got := Decode(raw)

	if got.Encoding != "utf-16" {
		t.Errorf("Encoding = %q, want utf-16", got.Encoding)
	}
	if got.Text != "hi" {
		t.Errorf("Text = %q, want %q", got.Text, "hi")
	}
}

func TestDecode_Windows1252(t *testing.T) {
	// 0x93/0x94 are curly quotes in Windows-1252 and invalid UTF-8.
	raw := []byte{0x93, 'o', 'k', 0x94}
	got := Decode(raw)

	if got.Encoding != "windows-1252" {
		t.Errorf("Encoding = %q, want windows-1252", got.Encoding)
	}
	if got.Text != "“ok”" {
		t.Errorf("Text = %q, want %q", got.Text, "“ok”")
	}
	if got.Degraded {
		t.Error("Degraded = true for clean Windows-1252")
	}
}

func TestDecode_FallbackDegraded(t *testing.T) {
	// 0x81 is undefined in Windows-1252 and invalid as UTF-8, so only
	// the ISO-8859-1 last resort accepts it.
	raw := []byte{'a', 0x81, 'b'}
	got := Decode(raw)

	if got.Encoding != "iso-8859-1" {
		t.Errorf("Encoding = %q, want iso-8859-1", got.Encoding)
	}
	if !got.Degraded {
		t.Error("Degraded = false, want true")
	}
	if !utf8.ValidString(got.Text) {
		t.Error("Text is not valid UTF-8")
	}
	if !strings.Contains(got.Text, "a") || !strings.Contains(got.Text, "b") {
		t.Errorf("Text = %q, surrounding characters lost", got.Text)
	}
}

func TestDecode_Empty(t *testing.T) {
	got := Decode(nil)

	if got.Text != "" {
		t.Errorf("Text = %q, want empty", got.Text)
	}
	if got.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", got.Encoding)
	}
	if got.Degraded {
		t.Error("Degraded = true for empty input")
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(path, []byte("12/08/2025, 22:15 - A: hi"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if got.Text != "12/08/2025, 22:15 - A: hi" {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("File() error = nil, want error")
	}
}
