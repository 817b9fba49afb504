// Package maintenance runs the periodic background work as Go tickers:
// signal collection, scoring runs, alert checks, the daily digest, and
// retention cleanup. All scheduling is driven from Go since the API server
// is already a persistent, long-running process.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/listingradar/radar/internal/alert"
	"github.com/listingradar/radar/internal/collector"
	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
	"github.com/listingradar/radar/internal/digest"
	"github.com/listingradar/radar/internal/pipeline"
	"github.com/listingradar/radar/internal/scoring"
)

const (
	signalRetention = 90 * 24 * time.Hour
	alertRetention  = 30 * 24 * time.Hour
)

// Deps carries everything the background tasks need.
type Deps struct {
	Q       db.Querier
	Engine  *scoring.Engine
	Gate    *alert.Gate
	Sender  alert.Sender // nil disables digest delivery
	Sources []collector.Source
	Cfg     *config.Config
	Logger  *slog.Logger
}

// Start launches all configured tickers. A zero interval disables the task.
// Blocks until ctx is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Maintenance tickers started",
		"collect", d.Cfg.CollectInterval,
		"score", d.Cfg.ScoreInterval,
		"alerts", d.Cfg.AlertInterval,
		"cleanup", d.Cfg.CleanupInterval,
		"digest_hour", d.Cfg.DigestHour)

	tickers := make([]*time.Ticker, 0, 5)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if d.Cfg.CollectInterval > 0 {
		t := time.NewTicker(d.Cfg.CollectInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { collect(ctx, d, logger) })
	}

	if d.Cfg.ScoreInterval > 0 {
		t := time.NewTicker(d.Cfg.ScoreInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			pipeline.Run(ctx, d.Q, d.Engine, d.Cfg.ScoreWorkers, logger)
		})
	}

	if d.Cfg.AlertInterval > 0 {
		t := time.NewTicker(d.Cfg.AlertInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { checkAlerts(ctx, d, logger) })
	}

	// The digest fires once a day at the configured hour; the ticker just
	// polls for the hour boundary.
	digestTicker := time.NewTicker(10 * time.Minute)
	tickers = append(tickers, digestTicker)
	var lastDigestDay string
	go runLoop(ctx, digestTicker.C, func() {
		lastDigestDay = maybeSendDigest(ctx, d, logger, lastDigestDay)
	})

	if d.Cfg.CleanupInterval > 0 {
		t := time.NewTicker(d.Cfg.CleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { cleanup(ctx, d.Q, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

func collect(ctx context.Context, d Deps, logger *slog.Logger) {
	n := collector.RunAll(ctx, d.Q, d.Sources, logger)
	logger.Info("Collection cycle finished", "stored", n)
}

func checkAlerts(ctx context.Context, d Deps, logger *slog.Logger) {
	n, err := d.Gate.CheckAndSend(ctx)
	if err != nil {
		logger.Warn("Alert check failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("Alert check finished", "alerts", n)
	}
}

// maybeSendDigest sends the daily digest if the configured hour has been
// reached and no digest went out today. Returns the day the last digest was
// sent on.
func maybeSendDigest(ctx context.Context, d Deps, logger *slog.Logger, lastDay string) string {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	if now.Hour() < d.Cfg.DigestHour || lastDay == today {
		return lastDay
	}

	dig, err := digest.Build(ctx, d.Q, now)
	if err != nil {
		logger.Warn("Digest build failed", "error", err)
		return lastDay
	}

	text := digest.Render(dig)
	if d.Sender == nil {
		logger.Info("Daily digest (delivery disabled)", "digest", text)
		return today
	}
	if err := d.Sender.Send(ctx, text); err != nil {
		logger.Warn("Digest delivery failed", "error", err)
		return lastDay
	}
	logger.Info("Daily digest sent",
		"products", len(dig.TopProducts), "keywords", len(dig.Keywords))
	return today
}

// cleanup purges signal records and alerts past their retention windows.
func cleanup(ctx context.Context, q db.Querier, logger *slog.Logger) {
	now := time.Now().UTC()

	tag, err := q.Exec(ctx,
		"DELETE FROM "+config.SignalsTable+" WHERE recorded_at < $1", now.Add(-signalRetention))
	if err != nil {
		logger.Warn("Cleanup: failed to purge signal records", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("Cleanup: purged signal records", "count", tag.RowsAffected())
	}

	tag, err = q.Exec(ctx,
		"DELETE FROM "+config.AlertsTable+" WHERE sent_at < $1", now.Add(-alertRetention))
	if err != nil {
		logger.Warn("Cleanup: failed to purge alerts", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("Cleanup: purged alerts", "count", tag.RowsAffected())
	}
}
