package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/reactor/pkg/middleware"
	"github.com/vango-dev/reactor/pkg/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the diff playground server",
		Long: `Serve the diff playground:

  GET  /healthz        liveness
  GET  /metrics        Prometheus metrics
  POST /api/diff       replay one transition
  POST /api/diff/all   replay one transition with every strategy
  GET  /ws             WebSocket session, one scenario per text frame`,
		Example: `  reactor serve --addr :9090
  curl -d '{"old":["1","2","3"],"new":["3","1","2"]}' localhost:9090/api/diff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := server.New(a.serverConfig(),
				server.WithLogger(a.logger),
				server.WithMetricsOptions(middleware.WithNamespace(a.cfg.Metrics.Namespace)),
			)
			return srv.Run()
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	a.bind("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func (a *app) serverConfig() *server.Config {
	return &server.Config{
		Address:        a.cfg.Server.Addr,
		Strategy:       a.cfg.Strategy(),
		ReadTimeout:    a.cfg.Server.ReadTimeout,
		WriteTimeout:   a.cfg.Server.WriteTimeout,
		MaxMessageSize: a.cfg.Server.MaxMessageSize,
	}
}
