package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/poolvilladirect/villaimport/internal/config"
	"github.com/poolvilladirect/villaimport/internal/logger"
	"github.com/poolvilladirect/villaimport/internal/server"
	"github.com/poolvilladirect/villaimport/internal/store"
	"github.com/poolvilladirect/villaimport/pkg/fetcher"
	"github.com/poolvilladirect/villaimport/pkg/importer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin import API",
	Long: `Serve exposes the import pipeline over HTTP for the admin panel:

  POST /api/admin/import-villa  {"url": "..."}  -> imported villa record
  POST /api/admin/villas        villa record    -> {"id": ...}
  GET  /api/admin/villas                        -> stored villas
  GET  /healthz

Persistence endpoints require DATABASE_URL.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("listen", ":8080", "listen address")
	flags.String("database-url", "", "PostgreSQL connection string")
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")

	_ = viper.BindPFlag("listen_addr", flags.Lookup("listen"))
	_ = viper.BindPFlag("database_url", flags.Lookup("database-url"))
	_ = viper.BindPFlag("fetch_mode", flags.Lookup("fetch-mode"))
}

func runServe(_ *cobra.Command, _ []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	cfg, err := config.Load()
	if err != nil {
		logError("%v", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var f fetcher.Fetcher
	switch cfg.FetchMode {
	case "dynamic":
		f, err = fetcher.NewDynamic(fetcher.DynamicConfig{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
		if err != nil {
			logError("failed to create dynamic fetcher: %v", err)
			return err
		}
	default:
		f = fetcher.NewStatic(fetcher.StaticConfig{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
		})
	}

	opts := []importer.Option{
		importer.WithFetcher(f),
		importer.WithTimeout(cfg.Timeout),
	}
	if len(cfg.AllowedOrigins) > 0 {
		opts = append(opts, importer.WithAllowedOrigins(cfg.AllowedOrigins))
	}
	imp := importer.New(opts...)
	defer func() { _ = imp.Close() }()

	var villas server.VillaStore
	if cfg.DatabaseURL != "" {
		st, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			logError("failed to open database: %v", err)
			return err
		}
		defer func() { _ = st.Close() }()
		if err := st.Migrate(); err != nil {
			logError("failed to migrate database: %v", err)
			return err
		}
		villas = st
	} else {
		logger.Warn("no DATABASE_URL configured, persistence endpoints disabled")
	}

	srv := server.New(imp, villas)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("admin API listening", "addr", cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logError("server error: %v", err)
		return err
	}
}
