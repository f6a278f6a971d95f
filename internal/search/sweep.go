package search

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"k4sweep/internal/cipher"
	"k4sweep/internal/constrain"
	"k4sweep/internal/logging"
	"k4sweep/internal/score"
)

// Options bound one sweep run.
type Options struct {
	TopN    int
	Workers int    // 0 = GOMAXPROCS
	Letters string // fill alphabet, "" = A-Z
	Islands []cipher.Island
	Phase   int // decryption phase; constraint rotation lives on the Constraints
}

// Outcome is the result of a completed sweep.
type Outcome struct {
	Candidates []Candidate // top N, best first
	Evaluated  int64       // full enumeration count, len(letters)^k
	Kept       int64       // candidates whose plaintext preserved the islands
	Free       []int       // free residues searched
}

// Best returns the highest-ranked candidate, or nil if none survived the
// island filter.
func (o *Outcome) Best() *Candidate {
	if len(o.Candidates) == 0 {
		return nil
	}
	return &o.Candidates[0]
}

// Sweep enumerates every keystream fill, decrypts and scores each, and
// returns the exact top N. Candidates whose plaintext no longer matches an
// island are dropped; in the baseline model none can fail, but a rotated
// constraint derivation moves locked residues away from their islands, so
// the filter is load-bearing for phase variants.
func Sweep(ctx context.Context, text string, cons *constrain.Constraints, scorer *score.Scorer, opts Options) (*Outcome, error) {
	if err := cipher.Validate(text); err != nil {
		return nil, err
	}
	space, err := NewSpace(cons, opts.Letters)
	if err != nil {
		return nil, err
	}
	topN := opts.TopN
	if topN < 1 {
		topN = 1
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if int64(workers) > space.Size() {
		workers = int(space.Size())
	}

	logger := logging.New("search")
	logger.Debug("sweep started",
		"period", cons.Period, "phase", cons.Phase,
		"free", len(cons.Free), "space", space.Size(), "workers", workers)

	local := make([]*Ranker, workers)
	var kept atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	span := space.Size() / int64(workers)
	for w := 0; w < workers; w++ {
		lo := int64(w) * span
		hi := lo + span
		if w == workers-1 {
			hi = space.Size()
		}
		ranker := NewRanker(topN)
		local[w] = ranker
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%4096 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				ks, fill := space.At(i)
				plain, err := cipher.Decrypt(text, ks, opts.Phase, nil)
				if err != nil {
					return fmt.Errorf("candidate %d: %w", i, err)
				}
				if !cipher.CheckIslands(plain, opts.Islands) {
					continue
				}
				kept.Add(1)
				ranker.Add(Candidate{
					Keystream: ks,
					Fill:      fill,
					Plaintext: plain,
					Score:     scorer.Score(plain),
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	global := NewRanker(topN)
	for _, r := range local {
		global.Merge(r)
	}

	out := &Outcome{
		Candidates: global.Sorted(),
		Evaluated:  space.Size(),
		Kept:       kept.Load(),
		Free:       space.Free(),
	}
	logger.Debug("sweep finished", "evaluated", out.Evaluated, "kept", out.Kept)
	return out, nil
}
