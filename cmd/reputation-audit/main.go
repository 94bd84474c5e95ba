// Command reputation-audit replays the event log and compares the result
// with the stored reputation of every user. It is intended to be invoked by
// an external cron job or by an operator after an incident.
//
// With -fix, drifted users are corrected by re-applying every event; the
// ledger's per-event idempotency keeps already counted events from doubling.
//
// Exit codes: 0 = no drift, 1 = error, 2 = drift found.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/askdev-backend/internal/app"
	"github.com/heartmarshall/askdev-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default: CONFIG_PATH or ./config.yaml)")
	fix := flag.Bool("fix", false, "re-apply the event log to repair drift")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall deadline")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath, true)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		log.Fatalf("reputation-audit needs the %s storage driver, got %q", config.DriverPostgres, cfg.Storage.Driver)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Migrations are owned by the server.
	cfg.Storage.MigrateOnStart = false

	gw, err := app.OpenGateway(ctx, cfg, logger)
	if err != nil {
		logger.Error("open gateway", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer gw.Close()

	c := app.NewComponents(cfg, gw, logger)

	drifts, err := c.Reputation.Audit(ctx)
	if err != nil {
		logger.Error("audit failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, d := range drifts {
		logger.Warn("reputation drift",
			slog.String("user_id", d.UserID.String()),
			slog.Int64("stored", d.Stored),
			slog.Int64("replayed", d.Replayed),
		)
	}

	if len(drifts) == 0 {
		logger.Info("audit completed, no drift")
		return
	}

	if !*fix {
		logger.Warn("audit completed with drift", slog.Int("users", len(drifts)))
		os.Exit(2)
	}

	applied, err := c.Reputation.Rebuild(ctx)
	if err != nil {
		logger.Error("rebuild failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("rebuild completed",
		slog.Int("users", len(drifts)),
		slog.Int("deltas_applied", applied),
	)
}
