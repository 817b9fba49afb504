// Package scoring computes per-item momentum scores from signal windows.
//
// Pipeline: read windows → four sub-scores → weighted composite → trending
// classification → atomic persist. The sub-score and composite math is pure;
// all store access happens in the engine around it.
package scoring

import (
	"time"

	"github.com/listingradar/radar/internal/config"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	// TrendingThreshold is the composite score above which an item is
	// flagged as trending.
	TrendingThreshold = 60.0

	// RankWindowHours is the elapsed time assumed between the previous and
	// current rank observations.
	RankWindowHours = 24.0

	// CompetitionWindowDays bounds the new-entrant count per category.
	CompetitionWindowDays = 30

	keywordWords = 3
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// SubConfidence tags a single sub-score with the strength of its evidence.
// insufficient_data, no_data, and declining mark absent or negative
// evidence; they never count toward the overall confidence.
type SubConfidence string

const (
	ConfInsufficient SubConfidence = "insufficient_data"
	ConfNoData       SubConfidence = "no_data"
	ConfDeclining    SubConfidence = "declining"
	ConfLow          SubConfidence = "low"
	ConfMedium       SubConfidence = "medium"
	ConfHigh         SubConfidence = "high"
)

// SubScore is one calculator's result.
type SubScore struct {
	Score      float64
	Confidence SubConfidence
}

// Parts collects the four sub-scores feeding the composite.
type Parts struct {
	RankVelocity       SubScore
	SearchAcceleration SubScore
	SocialBuzz         SubScore
	CompetitionDensity SubScore
}

// Product is a tracked commerce item, the unit of scoring. The scoring
// engine is the sole writer of the momentum fields.
type Product struct {
	ID            int64             `json:"id"`
	SKU           string            `json:"sku"`
	Title         string            `json:"title"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	RankCurrent   *int              `json:"rank_current"`
	RankPrevious  *int              `json:"rank_previous"`
	MomentumScore float64           `json:"momentum_score"`
	Confidence    config.Confidence `json:"confidence_level"`
	IsTrending    bool              `json:"is_trending"`
	FirstSeen     time.Time         `json:"first_seen,omitempty"`
	LastUpdated   time.Time         `json:"last_updated"`
}
