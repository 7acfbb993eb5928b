package bench

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders the report as a text table, one row per case.
func (rep *Report) Table(w io.Writer) {
	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("reactor bench: %s (%s)", rep.Profile, rep.GoVersion))
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"benchmark", "iters", "avg", "min", "p75", "p99", "max", "effects", "host ops", "moves"})

	for _, row := range rep.Rows {
		tbl.AppendRow(table.Row{
			row.Name,
			humanize.Comma(int64(row.Iterations)),
			row.Avg,
			row.Min,
			row.P75,
			row.P99,
			row.Max,
			count(row.EffectRuns),
			count(row.HostOps),
			count(row.Moves),
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d cases", len(rep.Rows)), "total", rep.Duration})
	tbl.Render()
}

// count formats n with thousands separators, leaving zero blank.
func count(n int64) string {
	if n == 0 {
		return ""
	}
	return humanize.Comma(n)
}

// WriteJSON writes the report as indented JSON.
func (rep *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// Row returns the case with the given name.
func (rep *Report) Row(name string) (Row, bool) {
	for _, row := range rep.Rows {
		if row.Name == name {
			return row, true
		}
	}
	return Row{}, false
}
