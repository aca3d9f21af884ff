package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bjaus/webdispatch"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "webdispatchd",
		Short:         "Serve sample handlers through webdispatch",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          run,
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("config", "", "path to a YAML configuration file")
	cmd.PersistentFlags().String("loglevel", "info", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringP("logformat", "f", "text", "set the log format (text, json)")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg := webdispatch.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if cfg, err = webdispatch.LoadConfigFile(path); err != nil {
			return err
		}
	}

	reg := cfg.NewRegistry()
	registerHandlers(reg)

	metrics, err := webdispatch.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	f := webdispatch.New(reg,
		webdispatch.WithConfig(cfg),
		webdispatch.WithLogger(logger),
		webdispatch.WithMetrics(metrics),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", webdispatch.HTTPHandler(f, route))

	addr, _ := cmd.Flags().GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr), slog.Int("handlers", reg.Len()))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("loglevel")
	var level slog.Level
	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", levelName)
	}

	opts := &slog.HandlerOptions{Level: level}
	format, _ := cmd.Flags().GetString("logformat")
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(cmd.OutOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.OutOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return slog.New(handler), nil
}
