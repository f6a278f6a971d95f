// Package score rates candidate plaintexts for English plausibility.
//
// The fitness is a weighted sum of three signals: a negated chi-square fit
// against reference letter frequencies, common-bigram hits, and
// function-word hits. Function words also get counted inside a window
// around each island; those local counts drive phase acceptance.
package score

import (
	"strings"

	"k4sweep/internal/cipher"
)

// letterFreq holds typical English letter percentages.
var letterFreq = map[byte]float64{
	'E': 12.7, 'T': 9.1, 'A': 8.2, 'O': 7.5, 'I': 7.0, 'N': 6.7, 'S': 6.3,
	'H': 6.1, 'R': 6.0, 'D': 4.3, 'L': 4.0, 'C': 2.8, 'U': 2.8, 'M': 2.4,
	'W': 2.4, 'F': 2.2, 'G': 2.0, 'Y': 2.0, 'P': 1.9, 'B': 1.5, 'V': 1.0,
	'K': 0.8, 'J': 0.15, 'X': 0.15, 'Q': 0.10, 'Z': 0.07,
}

// commonBigrams are the highest-frequency English bigrams.
var commonBigrams = []string{
	"TH", "HE", "IN", "ER", "AN", "RE", "ON", "AT",
	"EN", "ND", "TI", "ES", "OR", "TE", "OF", "ED",
}

// DefaultFunctionWords are the connective words used as plausibility signals.
var DefaultFunctionWords = []string{"THE", "OF", "TO", "IN", "ON", "AND", "IS", "IT", "AS", "AT"}

// DefaultWindowRadius is the half-width of the island window, in letters.
const DefaultWindowRadius = 8

// Weights are the term weights of the fitness sum. FuncWord is the full
// per-hit contribution.
type Weights struct {
	Chi      float64 `yaml:"chi"`
	Bigram   float64 `yaml:"bigram"`
	FuncWord float64 `yaml:"funcword"`
}

// DefaultWeights match the reference sweep: chi-square halved, one point
// per bigram, three points per function word.
func DefaultWeights() Weights {
	return Weights{Chi: 0.5, Bigram: 1.0, FuncWord: 3.0}
}

// Scorer is a pure plausibility rater. Construct once per run; safe for
// concurrent use.
type Scorer struct {
	weights Weights
	words   []string
	islands []cipher.Island
	radius  int
}

// New builds a Scorer. Nil words and zero radius fall back to the defaults.
func New(w Weights, words []string, islands []cipher.Island, radius int) *Scorer {
	if words == nil {
		words = DefaultFunctionWords
	}
	if radius <= 0 {
		radius = DefaultWindowRadius
	}
	return &Scorer{weights: w, words: words, islands: islands, radius: radius}
}

// Result carries the fitness total and its component counts.
type Result struct {
	Total        float64
	ChiSquare    float64 // negated: higher is better
	BigramHits   int
	FuncWordHits int
	IslandHits   []int // function-word hits per island window, island order
}

// Score rates one plaintext. Identical input always yields identical output.
func (s *Scorer) Score(plain string) Result {
	res := Result{
		ChiSquare:    chiSquare(plain),
		BigramHits:   bigramHits(plain),
		FuncWordHits: wordHits(plain, s.words),
		IslandHits:   make([]int, len(s.islands)),
	}
	for i, is := range s.islands {
		lo := is.Start - 1 - s.radius
		if lo < 0 {
			lo = 0
		}
		hi := is.End() + s.radius
		if hi > len(plain) {
			hi = len(plain)
		}
		res.IslandHits[i] = wordHits(plain[lo:hi], s.words)
	}
	res.Total = res.ChiSquare*s.weights.Chi +
		float64(res.BigramHits)*s.weights.Bigram +
		float64(res.FuncWordHits)*s.weights.FuncWord
	return res
}

// chiSquare returns the negated chi-square statistic of the observed letter
// distribution against letterFreq. Lower chi-square means a better fit, so
// the negation makes higher better.
func chiSquare(text string) float64 {
	var counts [26]int
	for i := 0; i < len(text); i++ {
		counts[text[i]-'A']++
	}
	n := float64(len(text))
	chi := 0.0
	for ch, pct := range letterFreq {
		expected := pct / 100.0 * n
		if expected <= 0 {
			continue
		}
		observed := float64(counts[ch-'A'])
		d := observed - expected
		chi += d * d / expected
	}
	return -chi
}

// bigramHits counts common-bigram occurrences with an overlapping window.
func bigramHits(text string) int {
	hits := 0
	for i := 0; i+2 <= len(text); i++ {
		pair := text[i : i+2]
		for _, bg := range commonBigrams {
			if pair == bg {
				hits++
				break
			}
		}
	}
	return hits
}

// wordHits counts non-overlapping function-word occurrences.
func wordHits(text string, words []string) int {
	hits := 0
	for _, w := range words {
		hits += strings.Count(text, w)
	}
	return hits
}
