// SPDX-License-Identifier: MIT

// Command uncertainty inspects, queries and converts distance/depth
// uncertainty tables.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/uncertainty/internal/config"
	"github.com/katalvlaran/uncertainty/internal/logger"
	"github.com/katalvlaran/uncertainty/phase"
	"github.com/katalvlaran/uncertainty/uncertainty"
)

var version = "0.1.0"

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	configFile string

	cfg       *config.Config
	log       *zap.Logger
	phase     phase.Phase
	attribute phase.Attribute
}

func (a *app) options() []uncertainty.Option {
	return []uncertainty.Option{uncertainty.WithLogger(a.log)}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "uncertainty",
		Short: "Inspect, query and convert distance/depth uncertainty tables",
		Long: `uncertainty works with the per-phase, per-attribute tables that give the
expected travel-time, slowness or azimuth uncertainty as a function of
epicentral distance and source depth.

Settings come from uncertainty.yaml, UNCERTAINTY_* environment variables and
flags, in increasing priority.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			l, err := logger.New(cfg.Log.Logger())
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, l
			a.phase, a.attribute, _ = cfg.Selection() // validated by Load
			a.log.Debug("configuration resolved",
				zap.String("model_dir", cfg.ModelDir),
				zap.Stringer("phase", a.phase),
				zap.Stringer("attribute", a.attribute))

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./uncertainty.yaml or ~/.config/uncertainty/uncertainty.yaml)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newQueryCmd(a),
		newShowCmd(a),
		newConvertCmd(a),
		newExportCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "uncertainty v%s\n", version)
				fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
				fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			},
		},
	)

	return root
}
