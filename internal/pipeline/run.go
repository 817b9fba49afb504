// Package pipeline orchestrates batch scoring runs. A run recomputes the
// momentum score of every tracked product, with bounded parallelism across
// independent products. A product is never scored by two workers at once
// because each ID is dispatched exactly once.
//
// Runs are idempotent and run-granular: each product commits on its own, so
// aborting mid-run leaves earlier commits intact and the next scheduled run
// picks up from current store state.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/listingradar/radar/internal/db"
	"github.com/listingradar/radar/internal/scoring"
)

const defaultWorkers = 4

// RunResult tracks the outcome of one scoring run.
type RunResult struct {
	ItemsFound  int
	ItemsScored int
	Trending    int
	ItemsFailed int
	Duration    time.Duration
	Errors      []string
}

// Summary returns a human-readable summary.
func (r *RunResult) Summary() string {
	return fmt.Sprintf("found=%d scored=%d trending=%d failed=%d dur=%s",
		r.ItemsFound, r.ItemsScored, r.Trending, r.ItemsFailed,
		r.Duration.Round(time.Millisecond))
}

// Run scores every tracked product using a pool of workers. The first store
// failure cancels the remaining work; products scored before the failure
// stay committed and the error is surfaced in the result.
func Run(ctx context.Context, q db.Querier, engine *scoring.Engine, workers int, logger *slog.Logger) RunResult {
	start := time.Now()
	var result RunResult

	ids, err := scoring.ListProductIDs(ctx, q)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	result.ItemsFound = len(ids)
	if len(ids) == 0 {
		logger.Info("No products to score")
		result.Duration = time.Since(start)
		return result
	}

	if workers < 1 {
		workers = defaultWorkers
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan int64, len(ids))
	for _, id := range ids {
		ch <- id
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range ch {
				if runCtx.Err() != nil {
					return
				}

				p, err := engine.ScoreItem(runCtx, id)

				mu.Lock()
				if err != nil {
					result.ItemsFailed++
					result.Errors = append(result.Errors, fmt.Sprintf("product %d: %s", id, err))
					mu.Unlock()
					// Store failures abort the run; the next scheduled
					// invocation retries from committed state.
					cancel()
					return
				}
				result.ItemsScored++
				if p.IsTrending {
					result.Trending++
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	result.Duration = time.Since(start)

	logger.Info("Scoring run complete", "summary", result.Summary())
	return result
}
