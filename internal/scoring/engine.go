package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
	"github.com/listingradar/radar/internal/signal"
)

// Engine scores products against the signal store. Construct once and share;
// all methods are safe for concurrent use across distinct products.
type Engine struct {
	q       db.Querier
	weights config.Weights
	logger  *slog.Logger
	now     func() time.Time
}

// NewEngine creates a scoring engine. The weights are assumed validated by
// config.Load.
func NewEngine(q db.Querier, weights config.Weights, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		q:       q,
		weights: weights,
		logger:  logger,
		now:     time.Now,
	}
}

// ScoreItem recomputes and persists the momentum score for one product.
// Returns the product with the fresh score applied. A store failure leaves
// the product untouched.
func (e *Engine) ScoreItem(ctx context.Context, id int64) (*Product, error) {
	p, err := GetForScoring(ctx, e.q, id)
	if err != nil {
		return nil, err
	}

	parts, err := e.collectParts(ctx, p)
	if err != nil {
		return nil, err
	}

	score, conf := Composite(parts, e.weights)
	trending := IsTrending(score)
	now := e.now().UTC()

	if err := UpdateMomentum(ctx, e.q, p.ID, score, conf, trending, now); err != nil {
		return nil, err
	}

	p.MomentumScore = score
	p.Confidence = conf
	p.IsTrending = trending
	p.LastUpdated = now

	e.logger.Debug("Scored product",
		"sku", p.SKU, "score", fmt.Sprintf("%.1f", score),
		"confidence", conf, "trending", trending)
	return p, nil
}

// collectParts reads the signal windows and computes the four sub-scores.
func (e *Engine) collectParts(ctx context.Context, p *Product) (Parts, error) {
	var parts Parts
	now := e.now().UTC()

	parts.RankVelocity = RankVelocity(p.RankCurrent, p.RankPrevious, RankWindowHours)

	keyword := DeriveKeyword(p.Title)
	if keyword == "" {
		parts.SearchAcceleration = SubScore{0, ConfInsufficient}
		parts.SocialBuzz = SubScore{0, ConfNoData}
	} else {
		searchSince := now.AddDate(0, 0, -signal.SearchWindowDays)
		searchRecords, err := signal.FetchWindow(ctx, e.q, keyword, signal.PlatformSearchTrends, searchSince, signal.SearchWindowLimit)
		if err != nil {
			return parts, err
		}
		parts.SearchAcceleration = SearchAcceleration(volumesOldestFirst(searchRecords))

		socialSince := now.AddDate(0, 0, -signal.SocialWindowDays)
		socialRecords, err := signal.FetchSocialWindow(ctx, e.q, keyword, socialSince)
		if err != nil {
			return parts, err
		}
		parts.SocialBuzz = SocialBuzz(socialRecords)
	}

	if p.Category == "" {
		parts.CompetitionDensity = SubScore{0, ConfInsufficient}
	} else {
		competitionSince := now.AddDate(0, 0, -CompetitionWindowDays)
		n, err := CountNewInCategory(ctx, e.q, p.Category, competitionSince)
		if err != nil {
			return parts, err
		}
		parts.CompetitionDensity = CompetitionDensity(n)
	}

	return parts, nil
}

// volumesOldestFirst flips a newest-first window read into the oldest-first
// series the acceleration calculator expects.
func volumesOldestFirst(records []signal.Record) []float64 {
	volumes := make([]float64, len(records))
	for i, r := range records {
		volumes[len(records)-1-i] = r.Volume
	}
	return volumes
}
