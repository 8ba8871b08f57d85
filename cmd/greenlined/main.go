package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"greenline/internal/config"
	"greenline/internal/logging"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "Configuration file path")
	bind := pflag.String("bind", "", "Listen address (overrides contact.bind)")
	pflag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *bind != "" {
		cfg.Contact.Bind = *bind
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if err := run(ctx, cfg, logger, nil); err != nil {
		logging.ErrorWithContext(logger, "greenlined stopped with error", "relay_exit",
			logging.Error(err))
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
	logger.Info("greenlined shutting down")
}
