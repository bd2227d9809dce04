package main

import (
	"dhruvtara/internal/config"
	"dhruvtara/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const app = "careerctl"

type rootOptions struct {
	debug bool
	json  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           app,
		Short:         "careerctl manages the career guidance service: schema migrations and offline predictions",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	cmd.PersistentFlags().BoolVarP(&opts.json, "json", "j", false, "json format for logging")

	cmd.AddCommand(newMigrateCmd(opts), newPredictCmd(opts))
	return cmd
}

func (o *rootOptions) setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadRelaxed()
	if err != nil {
		return config.Config{}, nil, err
	}
	lg, err := logger.New(o.json || cfg.App.LogJSON, o.debug || cfg.App.LogDebug)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, lg, nil
}
