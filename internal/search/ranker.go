package search

import (
	"container/heap"
	"sort"

	"k4sweep/internal/cipher"
	"k4sweep/internal/score"
)

// Candidate is one fully determined keystream with its decryption and score.
type Candidate struct {
	Keystream []int
	Fill      map[int]int // free residue -> assigned shift
	Plaintext string
	Score     score.Result
}

// KeystreamLetters renders the keystream as letters for display and export.
func (c Candidate) KeystreamLetters() string { return cipher.KeystreamString(c.Keystream) }

// worse reports whether a ranks below b: lower score, or equal score and
// lexicographically larger keystream. The tie-break keeps output order
// reproducible across runs.
func worse(a, b *Candidate) bool {
	if a.Score.Total != b.Score.Total {
		return a.Score.Total < b.Score.Total
	}
	return a.KeystreamLetters() > b.KeystreamLetters()
}

// Ranker keeps the exact N best candidates seen so far. The underlying heap
// holds the current worst at the root so it can be evicted in O(log n).
// Not safe for concurrent use; workers keep their own and merge.
type Ranker struct {
	limit int
	h     candidateHeap
}

// NewRanker returns a Ranker retaining at most limit candidates.
func NewRanker(limit int) *Ranker {
	if limit < 1 {
		limit = 1
	}
	return &Ranker{limit: limit}
}

// Add offers a candidate for retention.
func (r *Ranker) Add(c Candidate) {
	if len(r.h) < r.limit {
		heap.Push(&r.h, c)
		return
	}
	if worse(&c, &r.h[0]) {
		return
	}
	r.h[0] = c
	heap.Fix(&r.h, 0)
}

// Merge folds another ranker's retained candidates into r.
func (r *Ranker) Merge(other *Ranker) {
	for _, c := range other.h {
		r.Add(c)
	}
}

// Sorted returns the retained candidates, best first.
func (r *Ranker) Sorted() []Candidate {
	out := append([]Candidate(nil), r.h...)
	sort.Slice(out, func(i, j int) bool { return worse(&out[j], &out[i]) })
	return out
}

type candidateHeap []Candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return worse(&h[i], &h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(Candidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
