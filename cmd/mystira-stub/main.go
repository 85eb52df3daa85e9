package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/phoenixvc/mystira-client/pkg/config"
	"github.com/phoenixvc/mystira-client/pkg/devserver"
	"github.com/phoenixvc/mystira-client/pkg/logging"
)

func main() {
	var (
		configPath = flag.String("config", "mystira.yaml", "Path to config file")
		listenAddr = flag.String("listen", "", "Listen address override (host:port)")
		noSeed     = flag.Bool("no-seed", false, "Start with an empty content catalog")
	)
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *listenAddr != "" {
		cfg.Stub.ListenAddr = *listenAddr
	}
	if *noSeed {
		cfg.Stub.SeedData = false
	}

	var logger *logging.ColoredLogger
	if cfg.Logging.FilePath != "" {
		logger, err = logging.NewFileLogger(logging.ComponentStub, cfg.Logging.FilePath, false)
	} else {
		logger, err = logging.NewColoredLogger(logging.ComponentStub, cfg.Logging.EnableColors)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	server, err := devserver.NewServer(logger, &cfg.Stub)
	if err != nil {
		logger.ComponentError(logging.ComponentStub, "Failed to create server", zap.Error(err))
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.ComponentError(logging.ComponentStub, "Server failed", zap.Error(err))
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.ComponentInfo(logging.ComponentStub, "Shutting down",
			zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.ComponentError(logging.ComponentStub, "Shutdown failed", zap.Error(err))
			os.Exit(1)
		}
	}
}
