package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/qyinm/ballottui/config"
	"github.com/qyinm/ballottui/loader"
	"github.com/qyinm/ballottui/logging"
	"github.com/qyinm/ballottui/mcpsrv"
	"github.com/qyinm/ballottui/tabtree"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ballottui-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	election, err := config.Resolve("")
	if err != nil {
		return err
	}
	if err := election.Validate(); err != nil {
		return err
	}

	log, err := logging.New(logging.Options{File: election.LogFile, Debug: election.Debug})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg := mcpsrv.LoadConfig()
	source := loader.New(loader.Options{
		CandidatesURL: election.CandidatesURL,
		ResultsURL:    election.ResultsURL,
		Logger:        log,
	})
	server := mcpsrv.NewServer(source, tabtree.NewConfig(election.TabOptions()), election.Request(), version, &mcpsrv.ServerOptions{
		EnableAdmin: cfg.EnableAdmin && cfg.APIKey != "",
		Logger:      log,
	})
	if cfg.EnableAdmin && cfg.APIKey == "" {
		log.Warn("admin tools need an API key; cache_clear disabled")
	}

	mcpHandler := mcpsrv.WrapMCPHandler(mcpsrv.NewHandler(server, mcpsrv.StreamableOptions(cfg)), cfg, log)
	mcpsrv.StartCacheClearer(ctx, source, cfg.CacheClearInterval, log)

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.Port),
		Handler:           mcpsrv.NewMux(mcpHandler),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("ballottui-mcp listening",
		zap.String("addr", httpServer.Addr),
		zap.Stringer("mode", election.Request().Mode),
		zap.Bool("admin", cfg.EnableAdmin && cfg.APIKey != ""),
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
