package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"k4sweep/internal/cipher"
	"k4sweep/internal/display"
	"k4sweep/internal/phase"
	"k4sweep/internal/search"
	"k4sweep/internal/store"
)

var phasesFlags struct {
	model   modelFlags
	offsets []int
	save    bool
	dbPath  string
}

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Compare rotated keystream alignments against the baseline",
	Long: `Run the full sweep for the baseline alignment and for each phase offset,
then apply the acceptance rule: a variant wins only if it strictly improves
the function-word density near at least one island and regresses none.

Usage:
  k4sweep phases                       # default offsets +1, -1, +14
  k4sweep phases --offsets 1,-1,14,2   # custom offsets`,
	Args: cobra.NoArgs,
	RunE: runPhases,
}

func init() {
	f := phasesCmd.Flags()
	phasesFlags.model.register(f)
	f.IntSliceVar(&phasesFlags.offsets, "offsets", nil, "Phase offsets to test (default from config)")
	f.BoolVar(&phasesFlags.save, "save", false, "Persist the baseline run and verdicts to the local store")
	f.StringVar(&phasesFlags.dbPath, "db", store.DefaultDBPath, "Store DB path")
}

func runPhases(cmd *cobra.Command, args []string) error {
	cfg, err := phasesFlags.model.resolve()
	if err != nil {
		return err
	}
	offsets := phasesFlags.offsets
	if offsets == nil {
		offsets = cfg.PhaseOffsets
	}

	summary, err := phase.Run(cmd.Context(), cipher.K4, buildParams(cfg), offsets, buildScorer(cfg), buildOptions(cfg))
	if err != nil {
		return err
	}

	fmt.Printf("baseline: score=%.4f keystream=%s\n",
		summary.Baseline.Score.Total, summary.Baseline.KeystreamLetters())
	fmt.Printf("baseline: plaintext=%s\n", summary.Baseline.Plaintext)
	fmt.Println(display.Verdicts(summary))

	if winner := summary.Winner(); summary.WinnerOffset != 0 {
		fmt.Printf("winner: offset %+d, score=%.4f\n", summary.WinnerOffset, winner.Score.Total)
		fmt.Printf("winner: plaintext=%s\n", winner.Plaintext)
	} else {
		fmt.Println("winner: baseline stands")
	}

	if phasesFlags.save {
		st, err := store.Open(phasesFlags.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		run := store.Run{
			Period:         cfg.Period,
			Letters:        cfg.Letters,
			EnforceAnchors: cfg.Enforce(),
			BestScore:      summary.Baseline.Score.Total,
		}
		id, err := st.SaveRun(run, []search.Candidate{*summary.Baseline})
		if err != nil {
			return err
		}
		if err := st.SaveVerdicts(id, summary); err != nil {
			return err
		}
		fmt.Printf("verdicts saved under run #%d in %s\n", id, phasesFlags.dbPath)
	}
	return nil
}
