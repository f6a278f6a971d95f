package score

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"k4sweep/internal/cipher"
)

func flat97() string { return strings.Repeat("Q", 97) }

func TestScore_Deterministic(t *testing.T) {
	s := New(DefaultWeights(), nil, cipher.Islands, 0)
	text := flat97()
	a := s.Score(text)
	b := s.Score(text)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("identical input scored differently (-a +b):\n%s", diff)
	}
}

func TestBigramHits_Overlapping(t *testing.T) {
	// THE contains both TH and HE: the window must slide by one.
	if got := bigramHits("THE"); got != 2 {
		t.Errorf("bigramHits(THE) = %d, want 2", got)
	}
	if got := bigramHits("XTHEX"); got != 2 {
		t.Errorf("bigramHits(XTHEX) = %d, want 2", got)
	}
	if got := bigramHits("QQQQ"); got != 0 {
		t.Errorf("bigramHits(QQQQ) = %d, want 0", got)
	}
}

func TestWordHits(t *testing.T) {
	words := []string{"THE", "OF", "IN", "ON"}
	cases := []struct {
		text string
		want int
	}{
		{"THEQQOFQQIN", 3},
		{"QQQQQ", 0},
		// counts are per word and non-overlapping within a word, but
		// different words are counted independently
		{"ONON", 2},
	}
	for _, tc := range cases {
		if got := wordHits(tc.text, words); got != tc.want {
			t.Errorf("wordHits(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestChiSquare_PrefersEnglishLikeText(t *testing.T) {
	// A text using common letters in rough proportion should beat a text
	// made of a single rare letter.
	englishish := strings.Repeat("ETAOINSHRDLU", 8) + "E" // 97 letters
	flat := strings.Repeat("Z", 97)
	if chiSquare(englishish) <= chiSquare(flat) {
		t.Errorf("chi-square ranked all-Z text above English-like text")
	}
}

func TestScore_WeightedComposition(t *testing.T) {
	w := Weights{Chi: 0.5, Bigram: 1.0, FuncWord: 3.0}
	s := New(w, nil, nil, 0)
	res := s.Score(flat97())
	want := res.ChiSquare*0.5 + float64(res.BigramHits)*1.0 + float64(res.FuncWordHits)*3.0
	if math.Abs(res.Total-want) > 1e-12 {
		t.Errorf("Total = %v, want %v", res.Total, want)
	}
}

func TestScore_IslandWindows(t *testing.T) {
	// Build a 97-letter text with THE just before BERLIN (position 64) and
	// nothing near the other islands.
	b := []byte(strings.Repeat("Q", 97))
	for _, is := range cipher.Islands {
		copy(b[is.Start-1:], is.Text)
	}
	copy(b[60:63], "THE") // positions 61-63, inside the ±8 window of BERLIN
	text := string(b)

	s := New(DefaultWeights(), []string{"THE"}, cipher.Islands, 8)
	res := s.Score(text)

	// NORTHEAST itself contains THE, which lands in both the EAST and
	// NORTHEAST windows; the planted THE lands only in BERLIN's window.
	want := []int{1, 1, 1, 0}
	if diff := cmp.Diff(want, res.IslandHits); diff != "" {
		t.Errorf("island hits mismatch (-want +got):\n%s", diff)
	}
}

func TestScore_WindowClampsAtEdges(t *testing.T) {
	islands := []cipher.Island{{Start: 1, Text: "EAST"}, {Start: 93, Text: "CLOCK"}}
	b := []byte(strings.Repeat("Q", 97))
	copy(b[0:], "EAST")
	copy(b[92:], "CLOCK")
	s := New(DefaultWeights(), []string{"EAST", "CLOCK"}, islands, 8)

	res := s.Score(string(b))
	if res.IslandHits[0] != 1 || res.IslandHits[1] != 1 {
		t.Errorf("edge windows missed their own islands: %v", res.IslandHits)
	}
}
