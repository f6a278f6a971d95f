// Package display renders sweep results as terminal tables.
//
// Rule: code is for machines, words are for humans. Raw values stay in the
// CSV/JSON exports and the store; these tables are for people reading a
// terminal.
package display

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"k4sweep/internal/phase"
	"k4sweep/internal/route"
	"k4sweep/internal/search"
	"k4sweep/internal/store"
)

func newWriter() table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	return w
}

// Candidates renders the top candidates of one sweep, best first.
func Candidates(outcome *search.Outcome, limit int) string {
	w := newWriter()
	w.AppendHeader(table.Row{"#", "Score", "Fill", "Keystream", "Plaintext"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 5, WidthMax: 50},
	})
	for i, c := range outcome.Candidates {
		if limit > 0 && i >= limit {
			break
		}
		w.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.4f", c.Score.Total),
			c.FillString(),
			c.KeystreamLetters(),
			c.Plaintext,
		})
	}
	w.AppendFooter(table.Row{"", "", "", "evaluated", outcome.Evaluated})
	return w.Render()
}

// Verdicts renders the phase-acceptance report: per-variant island metrics
// and the overall winner.
func Verdicts(summary *phase.Summary) string {
	w := newWriter()
	w.AppendHeader(table.Row{"Offset", "Verdict", "Islands (variant/baseline)", "Reason"})
	for _, v := range summary.Verdicts {
		verdict := "rejected"
		if v.Accepted {
			verdict = "ACCEPTED"
		}
		metrics := ""
		for i, m := range v.Metrics {
			if i > 0 {
				metrics += "  "
			}
			metrics += fmt.Sprintf("%s %d/%d", m.Island, m.Variant, m.Baseline)
		}
		w.AppendRow(table.Row{fmt.Sprintf("%+d", v.Offset), verdict, metrics, v.Reason})
	}
	winner := "baseline"
	if summary.WinnerOffset != 0 {
		winner = fmt.Sprintf("offset %+d", summary.WinnerOffset)
	}
	w.AppendFooter(table.Row{"", "", "winner", winner})
	return w.Render()
}

// Routes renders ranked transposition-route results. Failed routes show
// the failure instead of a score.
func Routes(results []route.Result, limit int) string {
	w := newWriter()
	w.AppendHeader(table.Row{"#", "Route", "Params", "Best score", "Best plaintext"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 50},
	})
	n := 0
	for _, r := range results {
		if limit > 0 && n >= limit {
			break
		}
		n++
		if r.Err != nil {
			w.AppendRow(table.Row{n, r.Route.Kind, r.Route.Params, "skipped", r.Err.Error()})
			continue
		}
		best := r.Outcome.Best()
		if best == nil {
			w.AppendRow(table.Row{n, r.Route.Kind, r.Route.Params, "no candidate", ""})
			continue
		}
		w.AppendRow(table.Row{n, r.Route.Kind, r.Route.Params,
			fmt.Sprintf("%.4f", best.Score.Total), best.Plaintext})
	}
	return w.Render()
}

// Runs renders the persisted run history, newest first.
func Runs(runs []store.Run) string {
	w := newWriter()
	w.AppendHeader(table.Row{"ID", "Created", "Period", "Phase", "Free", "Evaluated", "Kept", "Best"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 8, Align: text.AlignRight},
	})
	for _, r := range runs {
		w.AppendRow(table.Row{
			r.ID, r.CreatedAt, r.Period, r.Phase, r.FreeResidues,
			r.Evaluated, r.Kept, fmt.Sprintf("%.4f", r.BestScore),
		})
	}
	return w.Render()
}
