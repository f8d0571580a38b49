package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-formbutton/internal/config"
	"github.com/goliatone/go-formbutton/internal/demo"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the demo admin",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				EnvVars: []string{"FORMBUTTON_ADDR"},
			},
			&cli.StringFlag{
				Name:    "templates-dir",
				Usage:   "directory overriding the embedded templates",
				EnvVars: []string{"FORMBUTTON_TEMPLATES_DIR"},
			},
			&cli.StringFlag{
				Name:    "header",
				Usage:   "site header",
				EnvVars: []string{"FORMBUTTON_HEADER"},
			},
		},
		Action: serveAction,
	}
}

func serveAction(ctx *cli.Context) error {
	cfg, logger, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	router, err := newRouter(cfg, logger, demo.NewStore(demo.SeedArticles...))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Server.Addr).Info("serving demo admin")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg config.Config, logger *logrus.Logger, store *demo.Store) (http.Handler, error) {
	site, _, err := demo.NewSite(cfg, logger, store)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.WithField("component", "http"),
		NoColor: true,
	}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))

	patterns, err := site.RegisterRoutes(router)
	if err != nil {
		return nil, err
	}
	logger.WithField("routes", len(patterns)).Debug("admin routes registered")

	index := site.IndexURL()
	home := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, index, http.StatusFound)
	}
	router.Get("/", home)
	if trimmed := index[:len(index)-1]; trimmed != "" {
		router.Get(trimmed, home)
	}
	return router, nil
}
