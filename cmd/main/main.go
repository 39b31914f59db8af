package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"catalog/relations/internal/config"
	"catalog/relations/internal/container"
	"catalog/relations/internal/domain"
	"catalog/relations/internal/logging"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

func main() {
	configDir := flag.StringP("config", "c", ".", "directory holding config.yaml and .env")
	flag.Usage = func() {
		log.Infof("Usage: %s [--config DIR] [ASIN...]", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.Log)

	seeds := domain.PadAll(append(cfg.Worker.Seeds, flag.Args()...))
	log.Infof("Starting catalog relations resolver with %d seeds", len(seeds))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	if err := app.Run(ctx, seeds); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("Application exited with error: %v", err)
		return
	}

	log.Info("Application finished")
}
