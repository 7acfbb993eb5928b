package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/internal/scenario"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func (a *app) lisCmd() *cobra.Command {
	var oldKeys, newKeys string

	cmd := &cobra.Command{
		Use:   "lis [positions...]",
		Short: "Compute a longest increasing subsequence",
		Long: `Print the indices of a longest strictly increasing subsequence of the
given positions, ignoring -1 entries (new nodes with no old position).

With --old and --new, the positions are derived from the key lists and
the keys that stay in place are printed.`,
		Example: `  reactor lis 2 3 1 -1 5
  reactor lis --old a,b,c,d --new b,d,c,a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("old") || cmd.Flags().Changed("new") {
				old, err := scenario.ParseKeys(oldKeys)
				if err != nil {
					return err
				}
				next, err := scenario.ParseKeys(newKeys)
				if err != nil {
					return err
				}
				sources := scenario.Sources(old, next)
				fmt.Fprintf(a.out, "sources: %s\n", formatInts(sources))
				fmt.Fprintf(a.out, "lis:     %s\n", formatInts(vdom.LongestIncreasingSubsequence(sources)))
				fmt.Fprintf(a.out, "stable:  %s\n", joinKeys(scenario.Stable(old, next)))
				return nil
			}

			if len(args) == 0 {
				return errors.New("X001").WithDetail("pass positions or --old/--new")
			}
			seq := make([]int, len(args))
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil || n < vdom.Unmatched {
					return errors.New("X001").WithDetail("position %q is not an integer >= -1", arg)
				}
				seq[i] = n
			}
			idx := vdom.LongestIncreasingSubsequence(seq)
			values := make([]int, len(idx))
			for i, j := range idx {
				values[i] = seq[j]
			}
			fmt.Fprintf(a.out, "indices: %s\n", formatInts(idx))
			fmt.Fprintf(a.out, "values:  %s\n", formatInts(values))
			return nil
		},
	}
	// Stop flag parsing at the first position so later -1 entries are values.
	// A leading -1 needs "--" before it.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&oldKeys, "old", "", "comma separated keys before the patch")
	cmd.Flags().StringVar(&newKeys, "new", "", "comma separated keys after the patch")

	return cmd
}

func formatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
