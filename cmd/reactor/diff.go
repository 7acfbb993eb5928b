package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/internal/scenario"
	"github.com/vango-dev/reactor/pkg/memhost"
)

func (a *app) diffCmd() *cobra.Command {
	var (
		oldKeys string
		newKeys string
		file    string
		all     bool
		asJSON  bool
		showOps bool
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Replay a keyed list transition",
		Long: `Mount a keyed list, patch it to a new order and report every host call
the reconciler made: creates, inserts, moves, removes and text updates.

Transitions come from --old/--new key lists or from a YAML scenario file:

  scenarios:
    - name: rotate
      strategy: quick
      old: ["1", "2", "3", "4"]
      new: ["2", "3", "4", "1"]`,
		Example: `  reactor diff --old 1,2,3,4 --new 2,4,3,1
  reactor diff --old a,b,c --new c,b,a --all
  reactor diff --file scenarios.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := a.loadScenarios(cmd, file, oldKeys, newKeys)
			if err != nil {
				return err
			}

			opts := []scenario.Option{
				scenario.WithLogger(a.logger),
				scenario.WithStrict(a.cfg.Reactive.Strict),
			}
			var results []*scenario.Result
			for _, sc := range scenarios {
				if sc.Strategy == "" {
					sc.Strategy = a.cfg.Render.Strategy
				}
				if all {
					rs, err := scenario.RunAll(sc, opts...)
					if err != nil {
						return err
					}
					results = append(results, rs...)
					continue
				}
				res, err := scenario.Run(sc, opts...)
				if err != nil {
					return err
				}
				results = append(results, res)
			}

			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			printResults(a.out, results)
			if showOps {
				for _, res := range results {
					printOps(a.out, res)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&oldKeys, "old", "", "comma separated keys before the patch")
	cmd.Flags().StringVar(&newKeys, "new", "", "comma separated keys after the patch")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML scenario file")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "run every strategy")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&showOps, "ops", false, "list every host call")
	cmd.MarkFlagsMutuallyExclusive("file", "old")
	cmd.MarkFlagsMutuallyExclusive("file", "new")

	return cmd
}

// loadScenarios reads the scenario file, or builds one scenario from the
// key list flags.
func (a *app) loadScenarios(cmd *cobra.Command, file, oldKeys, newKeys string) ([]scenario.Scenario, error) {
	if file != "" {
		return scenario.LoadFile(file)
	}
	if !cmd.Flags().Changed("old") && !cmd.Flags().Changed("new") {
		return nil, errors.New("X001").WithDetail("pass --old and --new, or --file")
	}

	old, err := scenario.ParseKeys(oldKeys)
	if err != nil {
		return nil, err
	}
	next, err := scenario.ParseKeys(newKeys)
	if err != nil {
		return nil, err
	}
	return []scenario.Scenario{{Old: old, New: next}}, nil
}

func printResults(w io.Writer, results []*scenario.Result) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"scenario", "strategy", "order", "stable", "creates", "inserts", "moves", "removes", "text", "host ops", "fingerprint"})
	for _, res := range results {
		tbl.AppendRow(table.Row{
			res.Name,
			res.Strategy,
			joinKeys(res.Order),
			joinKeys(res.Stable),
			res.Counts[memhost.OpCreate],
			res.Counts[memhost.OpInsert],
			res.Moves,
			res.Counts[memhost.OpRemove],
			res.Counts[memhost.OpSetText],
			humanize.Comma(res.HostOps),
			res.Fingerprint,
		})
	}
	tbl.Render()

	for _, res := range results {
		for _, warning := range res.Warnings {
			fmt.Fprintf(w, "\033[33m⚠\033[0m %s: %s\n", res.Strategy, warning)
		}
	}
}

func printOps(w io.Writer, res *scenario.Result) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	title := res.Strategy
	if res.Name != "" {
		title = res.Name + " / " + res.Strategy
	}
	tbl.SetTitle(title)
	tbl.AppendHeader(table.Row{"#", "op"})
	for i, op := range res.Ops {
		tbl.AppendRow(table.Row{i + 1, op.String()})
	}
	tbl.Render()
}
