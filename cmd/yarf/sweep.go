package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/yarf/core/janitor"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove stale temporary upload files once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			j, err := janitor.New(cfg.Limits.Dir(), cfg.Janitor, janitor.WithLogger(newLogger(cfg)))
			if err != nil {
				return err
			}

			removed, err := j.Sweep(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d file(s) from %s\n", removed, cfg.Limits.Dir())
			return err
		},
	}
}
