package main

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/yarf"
	"github.com/dmitrymomot/yarf/core/router"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the controllers and actions of the Modules tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			modules := yarf.NewModules(cfg.Engine.ModulesDir())
			bindControllers(modules, nil)

			paths, err := modules.Modules()
			if err != nil {
				return err
			}

			engine, err := yarf.New(modules)
			if err != nil {
				return err
			}

			routes, err := engine.Routes(cmd.Context(), paths)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATH\tACTION")
			for _, r := range routes {
				for _, id := range r.Actions {
					method, base, ok := router.CutMethod(id, yarf.Methods()...)
					if !ok {
						method = http.MethodGet
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", method, urlFor(r.Path, base), id)
				}
			}
			return tw.Flush()
		},
	}
}

// urlFor returns the URL that reaches an action of the controller at path.
func urlFor(path, base string) string {
	prefix := "/" + path
	if path == router.IndexPath {
		prefix = ""
	}
	if base == "" || strings.EqualFold(base, router.DefaultAction) {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	return prefix + "/" + strings.ToLower(base[:1]) + base[1:]
}
