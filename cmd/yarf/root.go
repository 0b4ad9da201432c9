package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/yarf/core/config"
	"github.com/dmitrymomot/yarf/core/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yarf",
		Short:         "Serve controllers from a Modules tree",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("app-root", "", "application root (overrides YARF_APP_ROOT)")

	root.AddCommand(
		newServeCmd(),
		newSweepCmd(),
		newRoutesCmd(),
	)

	return root
}

// loadConfig reads AppConfig from the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (AppConfig, error) {
	var cfg AppConfig
	if err := config.Load(&cfg); err != nil {
		return AppConfig{}, err
	}

	if root, _ := cmd.Flags().GetString("app-root"); root != "" {
		cfg.Engine.AppRoot = root
	}

	return cfg, nil
}

func newLogger(cfg AppConfig) *slog.Logger {
	return logger.New(
		logger.WithLevelName(cfg.LogLevel),
		logger.WithFormat(cfg.LogFormat),
		logger.WithAttr(logger.Component("yarf")),
	)
}
