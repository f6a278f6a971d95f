// Package export writes sweep results to the CSV/JSON shapes the analysis
// notebooks consume.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"k4sweep/internal/search"
)

// jsonLimit caps the JSON summary; plaintexts are only worth eyeballing
// for the first few candidates.
const jsonLimit = 10

// CandidateRecord is one row of the JSON summary.
type CandidateRecord struct {
	Rank      int     `json:"rank"`
	Score     float64 `json:"score"`
	Fill      string  `json:"unknown_fill"`
	Keystream string  `json:"keystream"`
	Plaintext string  `json:"plaintext"`
}

// WriteCSV writes the ranked candidates as a light CSV: rank, score,
// unknown fill, keystream. Plaintexts stay out to keep the file scannable.
func WriteCSV(path string, candidates []search.Candidate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"rank", "score", "unknown_fill", "keystream"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, c := range candidates {
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.4f", c.Score.Total),
			c.FillString(),
			c.KeystreamLetters(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// WriteJSON writes the top candidates, plaintext included, as an indented
// JSON array.
func WriteJSON(path string, candidates []search.Candidate) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	n := len(candidates)
	if n > jsonLimit {
		n = jsonLimit
	}
	records := make([]CandidateRecord, n)
	for i := 0; i < n; i++ {
		c := candidates[i]
		records[i] = CandidateRecord{
			Rank:      i + 1,
			Score:     c.Score.Total,
			Fill:      c.FillString(),
			Keystream: c.KeystreamLetters(),
			Plaintext: c.Plaintext,
		}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteProvenance writes a small README describing what produced the
// exports, so a directory of output files stays self-explaining.
func WriteProvenance(path string, period, phase int, anchors []int, files []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	body := fmt.Sprintf("K4 period-%d sweep exports\n", period)
	body += fmt.Sprintf("Phase offset: %d\n", phase)
	body += fmt.Sprintf("Zero-shift anchors (1-based): %v\n", anchors)
	body += "Islands: EAST(22-25), NORTHEAST(26-34), BERLIN(64-69), CLOCK(70-74)\n"
	body += "Files:\n"
	for _, f := range files {
		body += "- " + f + "\n"
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("write provenance: %w", err)
	}
	return nil
}
