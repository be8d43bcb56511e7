package main

import (
	"context"
	"fmt"
	"os"

	"github.com/crlsmrls/greetbox/config"
	"github.com/crlsmrls/greetbox/logger"
	"github.com/crlsmrls/greetbox/metrics"
	"github.com/crlsmrls/greetbox/server"
	"github.com/rs/zerolog/log"
)

// Set at build time with -ldflags "-X main.Version=... -X main.GitCommit=..."
var (
	Version   = "development"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "greetbox: %v\n", err)
		os.Exit(2)
	}

	logger.InitLogger(cfg.LogLevel, os.Stdout)

	reg := metrics.InitMetrics()
	metrics.SetBuildInfo(Version, GitCommit)

	srv := server.New(cfg, os.Stdout, reg)
	if err := srv.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
