package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/reflow/internal/env"
)

// app carries state shared by the subcommands
type app struct {
	envFiles []string
	logLevel string
	verbose  bool

	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logrus.New()}

	root := &cobra.Command{
		Use:           "reflow",
		Short:         "Rebuild readable HTML from SVG pages",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "Load settings from these .env files (default .env)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides "+env.LogLevel+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Shorthand for --log-level=debug")

	root.AddCommand(newSVG2HTMLCmd(a))
	return root
}

// setup loads .env files and configures the logger
func (a *app) setup(cmd *cobra.Command) error {
	if err := env.Load(a.envFiles...); err != nil {
		return err
	}

	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level := env.StringVariable(env.LogLevel, "info")
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.verbose {
		level = "debug"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	a.logger.SetLevel(parsed)
	return nil
}
