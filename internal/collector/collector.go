// Package collector produces the raw inputs scoring runs on: catalog rows
// with rank rotation, search volume series, and social mention signals.
//
// Every producer implements Source. Scoring never branches on where a
// record came from; it only reads the store, so sources can be swapped for
// real integrations without touching the scoring path.
package collector

import (
	"context"
	"log/slog"

	"github.com/listingradar/radar/internal/db"
)

// Source is one signal producer. Collect writes its records through q and
// returns how many rows it stored.
type Source interface {
	Name() string
	Collect(ctx context.Context, q db.Querier) (int, error)
}

// RunAll runs every source in order. A failing source is logged and skipped
// so one broken producer cannot starve the others. Returns the total rows
// stored.
func RunAll(ctx context.Context, q db.Querier, sources []Source, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	total := 0
	for _, src := range sources {
		n, err := src.Collect(ctx, q)
		if err != nil {
			logger.Warn("Collector failed", "source", src.Name(), "error", err)
			continue
		}
		total += n
		logger.Debug("Collector finished", "source", src.Name(), "stored", n)
	}
	return total
}

// DefaultSources returns the full producer set in collection order: catalog
// first so the trend and social sources can key off fresh titles.
func DefaultSources() []Source {
	return []Source{
		NewRankSource(),
		NewSearchTrendsSource(),
		NewSocialSource(),
		NewStorefrontSource(),
	}
}
