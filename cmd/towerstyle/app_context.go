package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/towerstyle/internal/app/editor"
	"github.com/alexisbeaulieu97/towerstyle/internal/config"
	"github.com/alexisbeaulieu97/towerstyle/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config *config.Config
	Logger ports.Logger
	Editor *editor.Service
}

// load reads the configuration and builds the logger and editor service.
func (a *AppContext) load(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.ParseConfig(flags.configPath)
	if err != nil {
		return newCommandError("load configuration", flags.configPath, err, "Fix the configuration file or omit --config to use defaults.")
	}

	out := cmd.ErrOrStderr()
	log, err := logging.New(logging.Options{
		Writer:        out,
		Level:         cfg.Level(flags.verbose).String(),
		HumanReadable: cfg.Human(logging.IsTerminal(out)),
		Component:     "cli",
	})
	if err != nil {
		return newCommandError("create logger", "initialising logging", err, "Check the log_level setting.")
	}

	svc, err := editor.NewService(cfg, log)
	if err != nil {
		return newCommandError("load configuration", "building game sources", err, "Remove duplicate game_sources entries.")
	}

	a.Config = cfg
	a.Logger = log
	a.Editor = svc
	return nil
}

// CommandContext returns a context carrying a fresh correlation id and a
// logger tagged with the command name.
func (a *AppContext) CommandContext(cmd *cobra.Command, name string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())

	logger := a.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return ctx, logger.With("command", name)
}
