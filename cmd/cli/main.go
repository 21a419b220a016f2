package main

import (
	"fmt"
	"os"

	"heat-optimizer/internal/app"
	"heat-optimizer/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	cfgPath  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "heat-optimizer",
		Short:         "Allocate heat demand across the production fleet",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (defaults to the built-in data paths)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		newOptimizeCmd(opts),
		newResultsCmd(opts),
		newUnitsCmd(opts),
		newDemandCmd(opts),
	)
	return root
}

// open loads the configuration and wires the application. Log output goes
// to stderr so tables on stdout stay clean.
func (o *rootOptions) open() (*app.App, error) {
	cfg, err := app.LoadConfig(o.cfgPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	if err := logger.Setup(logger.Options{Level: level, Format: "console"}); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return app.New(cfg)
}

func closeApp(cmd *cobra.Command, a *app.App) {
	if err := a.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "close result store: %v\n", err)
	}
}
