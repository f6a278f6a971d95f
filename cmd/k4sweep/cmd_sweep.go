package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"k4sweep/internal/cipher"
	"k4sweep/internal/constrain"
	"k4sweep/internal/display"
	"k4sweep/internal/export"
	"k4sweep/internal/search"
	"k4sweep/internal/store"
)

var sweepFlags struct {
	model  modelFlags
	phase  int
	show   int
	outdir string
	save   bool
	dbPath string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Enumerate and rank keystream candidates for one configuration",
	Long: `Derive the residue constraints from the islands and anchors, enumerate
every fill of the free residues, score each decryption, and print the
ranked candidates.

Usage:
  k4sweep sweep                      # baseline period-27 run
  k4sweep sweep --period 28          # alternate period
  k4sweep sweep --outdir ./out       # also export CSV/JSON
  k4sweep sweep --save               # record the run in the local store`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	f := sweepCmd.Flags()
	sweepFlags.model.register(f)
	f.IntVar(&sweepFlags.phase, "phase", 0, "Phase offset applied to residue indexing")
	f.IntVar(&sweepFlags.show, "show", 10, "Rows to print (retention is still --topn)")
	f.StringVarP(&sweepFlags.outdir, "outdir", "o", "", "Directory for CSV/JSON exports")
	f.BoolVar(&sweepFlags.save, "save", false, "Persist the run to the local store")
	f.StringVar(&sweepFlags.dbPath, "db", store.DefaultDBPath, "Store DB path")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := sweepFlags.model.resolve()
	if err != nil {
		return err
	}

	params := buildParams(cfg)
	params.Phase = sweepFlags.phase
	cons, err := constrain.Derive(cipher.K4, params)
	if err != nil {
		return fmt.Errorf("derive constraints: %w", err)
	}

	outcome, err := search.Sweep(cmd.Context(), cipher.K4, cons, buildScorer(cfg), buildOptions(cfg))
	if err != nil {
		return err
	}

	fmt.Println(display.Candidates(outcome, sweepFlags.show))
	if best := outcome.Best(); best != nil {
		fmt.Printf("best: score=%.4f keystream=%s\n", best.Score.Total, best.KeystreamLetters())
		fmt.Printf("best: plaintext=%s\n", best.Plaintext)
	}

	if sweepFlags.outdir != "" {
		csvPath := filepath.Join(sweepFlags.outdir, fmt.Sprintf("k4_top%d_candidates_p%d.csv", len(outcome.Candidates), cfg.Period))
		jsonPath := filepath.Join(sweepFlags.outdir, fmt.Sprintf("k4_top10_summary_p%d.json", cfg.Period))
		if err := export.WriteCSV(csvPath, outcome.Candidates); err != nil {
			return err
		}
		if err := export.WriteJSON(jsonPath, outcome.Candidates); err != nil {
			return err
		}
		readme := filepath.Join(sweepFlags.outdir, "README_K4_exports.txt")
		files := []string{filepath.Base(csvPath), filepath.Base(jsonPath)}
		if err := export.WriteProvenance(readme, cfg.Period, sweepFlags.phase, cipher.Anchors, files); err != nil {
			return err
		}
		fmt.Printf("exports written to %s\n", sweepFlags.outdir)
	}

	if sweepFlags.save {
		st, err := store.Open(sweepFlags.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		run := store.Run{
			Period:         cfg.Period,
			Phase:          sweepFlags.phase,
			Letters:        cfg.Letters,
			EnforceAnchors: cfg.Enforce(),
			FreeResidues:   store.FreeResidueList(outcome.Free),
			Evaluated:      outcome.Evaluated,
			Kept:           outcome.Kept,
		}
		if best := outcome.Best(); best != nil {
			run.BestScore = best.Score.Total
		}
		id, err := st.SaveRun(run, outcome.Candidates)
		if err != nil {
			return err
		}
		fmt.Printf("run saved as #%d in %s\n", id, sweepFlags.dbPath)
	}
	return nil
}
