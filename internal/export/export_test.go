package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"k4sweep/internal/score"
	"k4sweep/internal/search"
)

func sampleCandidates(n int) []search.Candidate {
	out := make([]search.Candidate, n)
	for i := range out {
		out[i] = search.Candidate{
			Keystream: []int{i % 26, 1, 2},
			Fill:      map[int]int{7: i % 26},
			Plaintext: strings.Repeat("Q", 97),
			Score:     score.Result{Total: float64(100 - i)},
		}
	}
	return out
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "candidates.csv")
	if err := WriteCSV(path, sampleCandidates(3)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "rank" || rows[0][3] != "keystream" {
		t.Errorf("header mismatch: %v", rows[0])
	}
	if rows[1][0] != "1" || rows[1][1] != "100.0000" {
		t.Errorf("first row mismatch: %v", rows[1])
	}
}

func TestWriteJSON_CapsAtTen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	if err := WriteJSON(path, sampleCandidates(15)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var records []CandidateRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("records = %d, want 10", len(records))
	}
	if records[0].Rank != 1 || records[0].Plaintext == "" {
		t.Errorf("first record mismatch: %+v", records[0])
	}
}

func TestWriteProvenance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README_K4_exports.txt")
	err := WriteProvenance(path, 27, 0, []int{33, 74}, []string{"a.csv", "b.json"})
	if err != nil {
		t.Fatalf("WriteProvenance: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	body := string(data)
	for _, want := range []string{"period-27", "[33 74]", "a.csv", "b.json"} {
		if !strings.Contains(body, want) {
			t.Errorf("provenance missing %q:\n%s", want, body)
		}
	}
}
