package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/yarf"
	"github.com/dmitrymomot/yarf/core/health"
	"github.com/dmitrymomot/yarf/core/janitor"
	"github.com/dmitrymomot/yarf/core/logger"
	"github.com/dmitrymomot/yarf/core/metrics"
	"github.com/dmitrymomot/yarf/core/server"
	"github.com/dmitrymomot/yarf/core/session"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides SERVER_ADDR)")
	return cmd
}

func serve(ctx context.Context, cfg AppConfig) error {
	log := newLogger(cfg)
	collector := metrics.New(metrics.WithRuntimeMetrics())

	opts := []yarf.Option{
		yarf.WithLogger(log.With(logger.Component("engine"))),
		yarf.WithLimits(cfg.Limits),
		yarf.WithMetrics(collector),
		yarf.WithCookieOptions(cfg.Cookie.Options()),
	}

	g, ctx := errgroup.WithContext(ctx)
	var checks []health.Check

	if cfg.Engine.SessionsEnabled {
		backend, err := openSessionStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := backend.close(closeCtx); err != nil {
				log.Error("session store close failed", logger.Error(err))
			}
		}()

		manager, err := session.NewFromConfig(backend.store, cfg.Session, cfg.Cookie,
			session.WithLogger(log.With(logger.Component("session"))))
		if err != nil {
			return err
		}
		opts = append(opts, yarf.WithSessions(manager))
		if backend.check != nil {
			checks = append(checks, backend.check)
		}

		if backend.run != nil {
			g.Go(backend.run(ctx))
		}
	}

	modules := yarf.NewModules(cfg.Engine.ModulesDir())
	bindControllers(modules, log.With(logger.Component("health")), checks...)

	engine, err := yarf.NewFromConfig(modules, cfg.Engine, opts...)
	if err != nil {
		return err
	}

	sweeper, err := janitor.New(cfg.Limits.Dir(), cfg.Janitor,
		janitor.WithLogger(log.With(logger.Component("janitor"))),
		janitor.WithSweepHook(collector.AddSwept),
	)
	if err != nil {
		return err
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log.With(logger.Component("server"))))
	if err != nil {
		return err
	}

	g.Go(srv.Run(ctx, engine))
	g.Go(sweeper.Run(ctx))

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		metricsSrv := server.New(cfg.MetricsAddr, server.WithLogger(log.With(logger.Component("metrics"))))
		g.Go(metricsSrv.Run(ctx, mux))
	}

	log.InfoContext(ctx, "yarf started",
		"addr", cfg.Server.Addr,
		"app_root", cfg.Engine.AppRoot,
		"sessions", cfg.Engine.SessionsEnabled,
		"session_store", cfg.SessionStore,
	)

	return g.Wait()
}
