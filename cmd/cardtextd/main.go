package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/arran4/cardtext/internal/config"
	"github.com/arran4/cardtext/internal/logger"
	"github.com/arran4/cardtext/internal/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "Path to a .yaml or .json config file (default ./cardtext.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	log, err := logger.New(cfg.Log.Development, cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		fatal(err)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	// New validates cfg.
	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func fatal(err error) {
	_, _ = os.Stderr.WriteString("cardtextd: " + err.Error() + "\n")
	os.Exit(1)
}
