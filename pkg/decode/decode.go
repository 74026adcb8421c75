// Package decode turns raw uploaded bytes into text using best-effort
// character-encoding fallback. It never fails: the rest of the pipeline
// always receives valid UTF-8, possibly with replacement characters.
package decode

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Result describes a decoded document.
type Result struct {
	// Text is the decoded document, always valid UTF-8.
	Text string

	// Encoding names the encoding that produced Text.
	Encoding string

	// Degraded is true when no encoding decoded cleanly and the text
	// was recovered with lossy replacement.
	Degraded bool
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw bytes to text. Encodings are tried in a fixed
// order: UTF-8, UTF-16 (BOM-marked), Windows-1252, and finally
// ISO-8859-1, which accepts any byte sequence. An encoding is rejected
// when decoding introduces replacement characters.
func Decode(raw []byte) Result {
	if len(raw) == 0 {
		return Result{Encoding: "utf-8"}
	}

	// UTF-16 exports announce themselves with a BOM; check before the
	// UTF-8 pass so the NUL-heavy bytes aren't misread as Latin text.
	if bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(raw); err == nil && clean(out) {
			return Result{Text: string(out), Encoding: "utf-16"}
		}
	}

	if utf8.Valid(raw) {
		return Result{Text: string(bytes.TrimPrefix(raw, bomUTF8)), Encoding: "utf-8"}
	}

	if out, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil && clean(out) {
		return Result{Text: string(out), Encoding: "windows-1252"}
	}

	// Last resort: ISO-8859-1 maps every byte, so this cannot fail,
	// but the earlier rejections mean characters may be wrong.
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Total mapping, so this branch is unreachable in practice.
		return Result{Text: strings.ToValidUTF8(string(raw), string(utf8.RuneError)), Encoding: "iso-8859-1", Degraded: true}
	}
	return Result{Text: string(out), Encoding: "iso-8859-1", Degraded: true}
}

// File reads and decodes a document from disk.
func File(path string) (Result, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return Result{}, err
	}
	return Decode(raw), nil
}

// clean reports whether decoded bytes contain no replacement runes.
func clean(out []byte) bool {
	return !bytes.ContainsRune(out, utf8.RuneError)
}
