package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vango-dev/reactor/internal/config"
	"github.com/vango-dev/reactor/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the state shared by every command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger

	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{
		v:      config.New(),
		out:    out,
		errOut: errOut,
	}

	rootCmd := &cobra.Command{
		Use:   "reactor",
		Short: "Inspect and benchmark the reactive runtime and reconciler",
		Long: `reactor drives the reactive runtime and the virtual tree reconciler
from the command line.

  • diff     replay a keyed list transition and show every host call
  • lis      compute a longest increasing subsequence
  • bench    time effect propagation and list reconciliation
  • serve    run the HTTP/WebSocket diff playground

Settings come from reactor.yaml, REACTOR_* environment variables and
flags, in increasing priority.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./reactor.yaml, can also use REACTOR_CONFIG)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	pf.String("strategy", "quick", "list strategy (quick, index, keyed, double)")
	pf.Bool("strict", false, "fail on runtime warnings")
	a.bind("log.level", pf.Lookup("log-level"))
	a.bind("log.format", pf.Lookup("log-format"))
	a.bind("render.strategy", pf.Lookup("strategy"))
	a.bind("reactive.strict", pf.Lookup("strict"))

	rootCmd.AddCommand(
		a.diffCmd(),
		a.lisCmd(),
		a.benchCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// bind ties a config key to a flag; the flag wins only when set.
func (a *app) bind(key string, flag *pflag.Flag) {
	_ = a.v.BindPFlag(key, flag)
}

// load reads the configuration once flags are parsed.
func (a *app) load() error {
	path := a.cfgFile
	if path == "" {
		path = os.Getenv("REACTOR_CONFIG")
	}
	if err := config.ReadFile(a.v, path); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(a.errOut)
	if p := cfg.Path(); p != "" {
		a.logger.Debug("using config file", "path", p)
	}
	return nil
}

// success prints a success message.
func (a *app) success(format string, args ...any) {
	fmt.Fprintf(a.out, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// joinKeys renders a key list for tables.
func joinKeys(keys []string) string {
	if len(keys) == 0 {
		return "∅"
	}
	return strings.Join(keys, ",")
}
