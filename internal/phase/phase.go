// Package phase compares the baseline keystream alignment against rotated
// variants. A variant stands in for a small reversible change to the
// transposition route; it is accepted only when it strictly improves the
// local function-word density near at least one island and regresses none.
package phase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"k4sweep/internal/cipher"
	"k4sweep/internal/constrain"
	"k4sweep/internal/logging"
	"k4sweep/internal/score"
	"k4sweep/internal/search"
)

// IslandMetric pairs one island's local function-word counts for a variant
// against the baseline.
type IslandMetric struct {
	Island   string
	Baseline int
	Variant  int
}

// Verdict is the acceptance decision for one phase offset.
type Verdict struct {
	Offset   int
	Accepted bool
	Reason   string
	Improved int // islands with a strict increase
	Metrics  []IslandMetric
	Best     *search.Candidate // variant winner, nil when the run failed
	Err      error             // model conflict or other configuration failure
}

// Summary is the full acceptance report for one ciphertext.
type Summary struct {
	Baseline     *search.Candidate
	BaselineHits []int
	Verdicts     []Verdict // in offset input order
	WinnerOffset int       // 0 means the baseline stands
}

// Winner returns the winning candidate: the baseline, or the single
// accepted variant's best.
func (s *Summary) Winner() *search.Candidate {
	if s.WinnerOffset == 0 {
		return s.Baseline
	}
	for i := range s.Verdicts {
		if s.Verdicts[i].Offset == s.WinnerOffset {
			return s.Verdicts[i].Best
		}
	}
	return s.Baseline
}

// Run derives constraints and sweeps the full space for the baseline and
// for each nonzero offset, all concurrently, then applies Evaluate. A
// conflict in a variant's model rejects that variant; a conflict in the
// baseline fails the whole run.
func Run(ctx context.Context, text string, base constrain.Params, offsets []int, scorer *score.Scorer, opts search.Options) (*Summary, error) {
	logger := logging.New("phase")

	type slot struct {
		offset  int
		outcome *search.Outcome
		err     error
	}

	variants := make([]int, 0, len(offsets))
	for _, off := range offsets {
		if off != 0 {
			variants = append(variants, off)
		}
	}

	var baseline *search.Outcome
	slots := make([]slot, len(variants))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := runOne(gctx, text, base, 0, scorer, opts)
		if err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
		baseline = out
		return nil
	})
	for i, off := range variants {
		i, off := i, off
		g.Go(func() error {
			out, err := runOne(gctx, text, base, off, scorer, opts)
			slots[i] = slot{offset: off, outcome: out, err: err}
			return nil // variant failures become rejections, not run failures
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if baseline.Best() == nil {
		return nil, fmt.Errorf("baseline produced no candidate that preserves the islands")
	}

	outcomes := make([]VariantOutcome, len(slots))
	for i, s := range slots {
		outcomes[i] = VariantOutcome{Offset: s.offset, Outcome: s.outcome, Err: s.err}
		if s.err != nil {
			logger.Warn("variant model failed", "offset", s.offset, "error", s.err)
		}
	}

	summary := Evaluate(opts.Islands, baseline, outcomes)
	logger.Info("acceptance decided", "winner_offset", summary.WinnerOffset)
	return summary, nil
}

func runOne(ctx context.Context, text string, base constrain.Params, offset int, scorer *score.Scorer, opts search.Options) (*search.Outcome, error) {
	p := base
	p.Phase = offset
	cons, err := constrain.Derive(text, p)
	if err != nil {
		return nil, err
	}
	return search.Sweep(ctx, text, cons, scorer, opts)
}

// VariantOutcome feeds one variant run into Evaluate.
type VariantOutcome struct {
	Offset  int
	Outcome *search.Outcome
	Err     error
}

// Evaluate applies the per-island no-regression rule. A variant is accepted
// only if its winner keeps every island intact, decreases the local
// function-word count at no island, and strictly increases it at one or
// more. The baseline wins unless exactly one variant is accepted.
func Evaluate(islands []cipher.Island, baseline *search.Outcome, variants []VariantOutcome) *Summary {
	best := baseline.Best()
	summary := &Summary{
		Baseline:     best,
		BaselineHits: best.Score.IslandHits,
	}

	accepted := 0
	for _, v := range variants {
		verdict := judge(islands, best, v)
		if verdict.Accepted {
			accepted++
			summary.WinnerOffset = verdict.Offset
		}
		summary.Verdicts = append(summary.Verdicts, verdict)
	}
	if accepted != 1 {
		summary.WinnerOffset = 0
	}
	return summary
}

func judge(islands []cipher.Island, baseline *search.Candidate, v VariantOutcome) Verdict {
	verdict := Verdict{Offset: v.Offset, Err: v.Err}
	if v.Err != nil {
		verdict.Reason = "model failed: " + v.Err.Error()
		return verdict
	}
	best := v.Outcome.Best()
	if best == nil {
		verdict.Reason = "no candidate preserves the islands"
		return verdict
	}
	verdict.Best = best
	if !cipher.CheckIslands(best.Plaintext, islands) {
		verdict.Reason = "winner breaks island text"
		return verdict
	}

	for i, is := range islands {
		b := baseline.Score.IslandHits[i]
		w := best.Score.IslandHits[i]
		verdict.Metrics = append(verdict.Metrics, IslandMetric{Island: is.Text, Baseline: b, Variant: w})
		if w < b {
			verdict.Reason = fmt.Sprintf("local hits regressed at %s (%d -> %d)", is.Text, b, w)
			return verdict
		}
		if w > b {
			verdict.Improved++
		}
	}
	if verdict.Improved == 0 {
		verdict.Reason = "no island strictly improved"
		return verdict
	}
	verdict.Accepted = true
	verdict.Reason = fmt.Sprintf("%d island(s) improved, none regressed", verdict.Improved)
	return verdict
}
