package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"k4sweep/internal/display"
	"k4sweep/internal/store"
)

var historyFlags struct {
	dbPath string
	limit  int
	runID  int64
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List persisted sweep runs",
	Long: `Show runs saved with --save, newest first.

Usage:
  k4sweep history            # recent runs
  k4sweep history --run 3    # candidates of run #3`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.dbPath, "db", store.DefaultDBPath, "Store DB path")
	f.IntVar(&historyFlags.limit, "limit", 20, "Runs (or candidates) to show")
	f.Int64Var(&historyFlags.runID, "run", 0, "Show the candidates of one run")
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := store.Open(historyFlags.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if historyFlags.runID > 0 {
		candidates, err := st.Candidates(historyFlags.runID, historyFlags.limit)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return fmt.Errorf("run #%d has no candidates", historyFlags.runID)
		}
		for _, c := range candidates {
			fmt.Printf("#%-3d %.4f  %s  %s\n", c.Rank, c.Score, c.Keystream, c.Plaintext)
		}
		return nil
	}

	runs, err := st.ListRuns(historyFlags.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs; use 'k4sweep sweep --save'")
		return nil
	}
	fmt.Println(display.Runs(runs))
	return nil
}
