package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"k4sweep/internal/cipher"
	"k4sweep/internal/display"
	"k4sweep/internal/route"
	"k4sweep/internal/search"
)

var routesFlags struct {
	model    modelFlags
	keywords []string
	show     int
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Test transposition routes on top of the keystream model",
	Long: `Apply columnar and keyed-columnar transposition routes to the ciphertext,
rerun the constraint derivation and full sweep on each rerouted text, and
rank the routes by their best candidate score. Routes whose constraints
conflict are reported as skipped.`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

func init() {
	f := routesCmd.Flags()
	routesFlags.model.register(f)
	f.StringSliceVar(&routesFlags.keywords, "keywords", route.DefaultKeywords, "Keywords for keyed columnar routes")
	f.IntVar(&routesFlags.show, "show", 10, "Routes to print")
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := routesFlags.model.resolve()
	if err != nil {
		return err
	}

	routes := route.Candidates(routesFlags.keywords)
	// Route reruns keep only the single best candidate per route.
	opts := buildOptions(cfg)
	opts.TopN = 1

	results, err := route.Search(cmd.Context(), cipher.K4, routes, buildParams(cfg), buildScorer(cfg), opts)
	if err != nil {
		return err
	}

	fmt.Printf("tested %d routes\n", len(results))
	fmt.Println(display.Routes(results, routesFlags.show))

	for _, r := range results {
		if r.Err == nil {
			if best := r.Outcome.Best(); best != nil {
				printRouteBest(r, best)
			}
			break
		}
	}
	return nil
}

func printRouteBest(r route.Result, best *search.Candidate) {
	fmt.Printf("best route: %s (%s)\n", r.Route.Kind, r.Route.Params)
	fmt.Printf("best route: score=%.4f keystream=%s\n", best.Score.Total, best.KeystreamLetters())
	fmt.Printf("best route: plaintext=%s\n", best.Plaintext)
}
