package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/chatlens/pkg/decode"
	"github.com/ccollicutt/chatlens/pkg/grammar"
	"github.com/ccollicutt/chatlens/pkg/output"
	"github.com/ccollicutt/chatlens/pkg/parser"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// analysisResponse wraps a report with a server-assigned id.
type analysisResponse struct {
	ID     string         `json:"id"`
	Report *output.Report `json:"report"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a chat export and returns the full report.
// The export arrives either as a multipart form with a "chat" file
// field or as the raw request body.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	raw, source, err := readUpload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(raw) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "empty upload"})
		return
	}

	start := time.Now()
	decoded := decode.Decode(raw)

	author := r.URL.Query().Get("author")
	if author == "" {
		author = stats.Overall
	}

	asm := parser.New(parser.WithSentinelAuthor(s.cfg.SentinelAuthor))
	table, err := asm.Preprocess(decoded.Text)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if table.Empty() {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "no messages parsed",
			Details: parseHints(decoded),
		})
		return
	}

	report := output.NewReport(s.analyzer, table, s.cfg, author, output.Metadata{
		Source:     source,
		Encoding:   decoded.Encoding,
		Degraded:   decoded.Degraded,
		Grammar:    detectGrammar(decoded.Text),
		Author:     author,
		Records:    table.Len(),
		AnalyzedAt: time.Now().UTC(),
		Duration:   time.Since(start),
	})

	writeJSON(w, http.StatusOK, analysisResponse{
		ID:     uuid.NewString(),
		Report: report,
	})
}

// readUpload returns the export bytes and a source label.
func readUpload(r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxUploadBytes)

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		file, header, err := r.FormFile("chat")
		if err != nil {
			return nil, "", err
		}
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, "", err
		}
		return raw, header.Filename, nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	return raw, "upload", nil
}

// parseHints runs grammar detection so a failed parse returns something
// actionable instead of a bare 422.
func parseHints(decoded decode.Result) []string {
	hints := []string{}
	if decoded.Degraded {
		hints = append(hints, "file was decoded with lossy character replacement")
	}

	detection := grammar.NewDetector().DetectFromLines(firstLines(decoded.Text, 100))
	if !detection.HasMatch() {
		hints = append(hints, "no known header grammar matches this file")
	} else {
		hints = append(hints, "headers matched "+detection.BestMatch().Grammar.Name+" but no timestamp resolved")
	}
	return hints
}

func detectGrammar(text string) string {
	detection := grammar.NewDetector().DetectFromLines(firstLines(text, 100))
	if !detection.HasMatch() {
		return ""
	}
	return detection.BestMatch().Grammar.Name
}

func firstLines(text string, n int) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		lines = append(lines, trimmed)
		if len(lines) == n {
			break
		}
	}
	return lines
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
