package route

import (
	"context"
	"sort"

	"k4sweep/internal/constrain"
	"k4sweep/internal/logging"
	"k4sweep/internal/score"
	"k4sweep/internal/search"
)

// Result is one route's analysis outcome. Routes whose model conflicts are
// kept with Err set so the caller can report them as skipped.
type Result struct {
	Route   Route
	Outcome *search.Outcome
	Err     error
}

// BestScore returns the route winner's score, or negative infinity-ish for
// failed routes so they sort last.
func (r Result) BestScore() float64 {
	if r.Err != nil || r.Outcome.Best() == nil {
		return -1e18
	}
	return r.Outcome.Best().Score.Total
}

// Candidates enumerates the default route families for a 97-letter text:
// every non-degenerate columnar grid over 97 and 98 cells, plus a keyed
// columnar route per keyword with the height rounded up to cover the text.
func Candidates(keywords []string) []Route {
	var routes []Route
	for _, g := range GridSizes(97, 98) {
		routes = append(routes, Columnar(g[0], g[1]))
	}
	for _, kw := range keywords {
		width := len(kw)
		height := (97 + width - 1) / width
		r, err := KeyedColumnar(width, height, kw)
		if err != nil {
			continue
		}
		routes = append(routes, r)
	}
	return routes
}

// Search applies each route to the ciphertext, reruns constraint derivation
// and the full keystream sweep on the rerouted text, and returns the
// results ranked by best score. Conflicting models are reported, not fatal.
func Search(ctx context.Context, text string, routes []Route, base constrain.Params, scorer *score.Scorer, opts search.Options) ([]Result, error) {
	logger := logging.New("route")

	results := make([]Result, 0, len(routes))
	for _, rt := range routes {
		perm, err := rt.Permutation()
		if err != nil {
			results = append(results, Result{Route: rt, Err: err})
			continue
		}
		rerouted, err := perm.Apply(text)
		if err != nil {
			results = append(results, Result{Route: rt, Err: err})
			continue
		}
		cons, err := constrain.Derive(rerouted, base)
		if err != nil {
			logger.Debug("route skipped", "kind", rt.Kind, "params", rt.Params, "error", err)
			results = append(results, Result{Route: rt, Err: err})
			continue
		}
		outcome, err := search.Sweep(ctx, rerouted, cons, scorer, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Route: rt, Outcome: outcome})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].BestScore() > results[j].BestScore() })
	return results, nil
}
