package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"greenline/internal/archive"
	"greenline/internal/config"
	"greenline/internal/contact"
	"greenline/internal/logging"
	"greenline/internal/preflight"
)

// run serves the relay until ctx is cancelled. ready, when non-nil, receives
// the bound address once the listener is up.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, ready chan<- string) error {
	sender, err := contact.NewSender(cfg)
	if err != nil {
		return err
	}

	var recorder contact.Recorder
	if path := strings.TrimSpace(cfg.Contact.ArchivePath); path != "" {
		store, err := archive.Open(path)
		if err != nil {
			return fmt.Errorf("open submission archive: %w", err)
		}
		defer store.Close()
		recorder = store
		logger.Info("submission archive enabled", logging.String("path", path))
	}
	for _, result := range preflight.Failed(preflight.RunAll(ctx, cfg, preflight.Options{})) {
		logging.WarnWithContext(logger, "preflight check failed", "relay_preflight",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
			logging.String(logging.FieldImpact, "affected requests will fail until fixed"),
			logging.String(logging.FieldErrorHint, "run greenline check for details"))
	}

	server, err := contact.NewServer(cfg, sender, recorder, logger)
	if err != nil {
		return err
	}
	if err := server.Listen(); err != nil {
		return err
	}
	if ready != nil {
		ready <- server.Addr()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx)
	})
	return g.Wait()
}
