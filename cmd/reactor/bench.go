package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reactor/internal/bench"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func (a *app) benchCmd() *cobra.Command {
	var (
		profile    string
		iterations int
		seed       uint64
		strategies []string
		asJSON     bool
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time effect propagation and list reconciliation",
		Long: `Run the benchmark suites of a profile and print one row per case.

Profiles:
  fast       small grids and a 20 item list, for smoke runs
  standard   grids up to 100 x 100 and lists of 50 and 500 items
  stress     grids up to 1000 x 1000 and lists up to 5000 items

With --publish (or bench.publish.bucket in reactor.yaml) the JSON report is
uploaded to S3.`,
		Example: `  reactor bench --profile fast
  reactor bench --profile stress --strategies quick,keyed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("profile") {
				profile = a.cfg.Bench.Profile
			}
			if !cmd.Flags().Changed("iterations") {
				iterations = a.cfg.Bench.Iterations
			}
			if !cmd.Flags().Changed("publish") {
				publish = a.cfg.Publishing()
			}

			p, err := bench.LookupProfile(profile)
			if err != nil {
				return err
			}
			opts := []bench.Option{
				bench.WithIterations(iterations),
				bench.WithSeed(seed),
				bench.WithLogger(a.logger),
			}
			if len(strategies) > 0 {
				parsed := make([]vdom.Strategy, 0, len(strategies))
				for _, name := range strategies {
					s, err := vdom.ParseStrategy(name)
					if err != nil {
						return err
					}
					parsed = append(parsed, s)
				}
				opts = append(opts, bench.WithStrategies(parsed...))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			rep, err := bench.New(p, opts...).Run(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				if err := rep.WriteJSON(a.out); err != nil {
					return err
				}
			} else {
				rep.Table(a.out)
			}

			if publish {
				return a.publish(ctx, rep)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "standard", "benchmark profile (fast, standard, stress)")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "samples per case (0 keeps the profile's count)")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "shuffle seed")
	cmd.Flags().StringSliceVar(&strategies, "strategies", nil, "strategies to reconcile (default all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&publish, "publish", false, "upload the report to S3")

	return cmd
}

func (a *app) publish(ctx context.Context, rep *bench.Report) error {
	pc := a.cfg.Bench.Publish
	publisher := bench.NewPublisher(bench.PublishConfig{
		Bucket:    pc.Bucket,
		Region:    pc.Region,
		Prefix:    pc.Prefix,
		Endpoint:  pc.Endpoint,
		PathStyle: pc.PathStyle,
	})
	key, err := publisher.Publish(ctx, rep)
	if err != nil {
		return err
	}
	a.success("published s3://%s/%s", pc.Bucket, key)
	return nil
}
