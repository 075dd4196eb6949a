package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/ballottui/config"
	"github.com/qyinm/ballottui/loader"
	"github.com/qyinm/ballottui/logging"
	"github.com/qyinm/ballottui/mcpsrv"
	"github.com/qyinm/ballottui/tabtree"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ballottui-mcp-stdio: %v\n", err)
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

	// stdout carries the protocol, so logs only go to stderr or a file.
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
		EnableAdmin: cfg.EnableAdmin,
		Logger:      log,
	})
	mcpsrv.StartCacheClearer(ctx, source, cfg.CacheClearInterval, log)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("stdio mcp server failed: %w", err)
	}
	return nil
}
