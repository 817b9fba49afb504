package scoring

import (
	"math"
	"strings"

	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/signal"
)

// --------------------------------------------------------------------------
// Sub-score calculators: pure functions, no store access
// --------------------------------------------------------------------------

// RankVelocity scores the rate of sales-rank improvement. Lower rank is
// better, so a falling rank number is upward momentum. The mapping rewards
// both magnitude and speed, log-dampened above 100 positions/hour so
// extreme swings cannot run away.
func RankVelocity(current, previous *int, hours float64) SubScore {
	if previous == nil || *previous <= 0 || current == nil || *current <= 0 {
		return SubScore{0, ConfInsufficient}
	}
	if hours <= 0 {
		hours = RankWindowHours
	}

	change := float64(*previous - *current)
	if change <= 0 {
		// Rank worsened or held flat.
		return SubScore{math.Max(0, 20-math.Abs(change)/1000), ConfDeclining}
	}

	velocity := change / hours
	switch {
	case velocity > 100:
		return SubScore{math.Min(100, 70+math.Log10(velocity)*10), ConfHigh}
	case velocity > 10:
		return SubScore{math.Min(80, 40+velocity*2), ConfMedium}
	case velocity > 1:
		return SubScore{math.Min(60, 20+velocity*10), ConfLow}
	default:
		return SubScore{math.Max(0, velocity*20), ConfLow}
	}
}

// SearchAcceleration scores the second derivative of search volume.
// volumes must be ordered oldest first. With three or more points the
// change in velocity is used; with exactly two, plain velocity capped at 70.
func SearchAcceleration(volumes []float64) SubScore {
	if len(volumes) < 2 {
		return SubScore{0, ConfInsufficient}
	}

	if len(volumes) >= 3 {
		n := len(volumes)
		recentVelocity := volumes[n-1] - volumes[n-2]
		previousVelocity := volumes[n-2] - volumes[n-3]
		accel := recentVelocity - previousVelocity

		switch {
		case accel > 10:
			return SubScore{math.Min(100, 60+accel*2), ConfHigh}
		case accel > 5:
			return SubScore{math.Min(80, 40+accel*4), ConfMedium}
		case accel > 0:
			return SubScore{math.Min(60, 20+accel*8), ConfLow}
		default:
			return SubScore{math.Max(0, 30+accel*5), ConfLow}
		}
	}

	// Two points: fall back to simple velocity.
	velocity := volumes[len(volumes)-1] - volumes[0]
	return SubScore{math.Max(0, math.Min(70, velocity*2)), ConfLow}
}

// SocialBuzz aggregates mention volume and sentiment across social
// platforms. Sentiment shifts the mention score by at most ±20 points.
func SocialBuzz(records []signal.Record) SubScore {
	if len(records) == 0 {
		return SubScore{0, ConfNoData}
	}

	var totalVolume, totalSentiment float64
	for _, r := range records {
		totalVolume += r.Volume
		totalSentiment += r.Sentiment
	}
	avgSentiment := totalSentiment / float64(len(records))

	mentionScore := math.Min(50, totalVolume*2)
	sentimentBoost := clamp(-20, 20, (avgSentiment-0.5)*40)
	score := math.Max(0, mentionScore+sentimentBoost)

	conf := ConfLow
	switch {
	case score > 60:
		conf = ConfHigh
	case score > 30:
		conf = ConfMedium
	}
	return SubScore{score, conf}
}

// CompetitionDensity scores the count of items first seen in a category
// within the competition window. A surge of new entrants independently
// corroborates that a trend is real.
func CompetitionDensity(newEntrants int) SubScore {
	n := float64(newEntrants)
	switch {
	case newEntrants > 50:
		return SubScore{math.Min(100, 70+n*0.5), ConfHigh}
	case newEntrants > 20:
		return SubScore{math.Min(80, 40+n*1.5), ConfMedium}
	case newEntrants > 5:
		return SubScore{math.Min(60, 20+n*3), ConfLow}
	default:
		return SubScore{math.Max(0, n*10), ConfLow}
	}
}

// --------------------------------------------------------------------------
// Composite
// --------------------------------------------------------------------------

// Composite folds the four sub-scores into a single 0-100 momentum score and
// an overall confidence. A sub-score with no usable inputs contributes 0 to
// the weighted sum, so absence of evidence lowers the composite rather than
// being renormalized away.
func Composite(p Parts, w config.Weights) (float64, config.Confidence) {
	score := p.RankVelocity.Score*w.RankVelocity +
		p.SearchAcceleration.Score*w.SearchAcceleration +
		p.SocialBuzz.Score*w.SocialBuzz +
		p.CompetitionDensity.Score*w.CompetitionDensity
	score = clamp(0, 100, score)

	high, medium := 0, 0
	for _, s := range []SubScore{p.RankVelocity, p.SearchAcceleration, p.SocialBuzz, p.CompetitionDensity} {
		switch s.Confidence {
		case ConfHigh:
			high++
		case ConfMedium:
			medium++
		}
	}

	conf := config.ConfidenceLow
	switch {
	case high >= 2:
		conf = config.ConfidenceHigh
	case high >= 1 || medium >= 2:
		conf = config.ConfidenceMedium
	}
	return score, conf
}

// IsTrending classifies a composite score. Persisted in the same update as
// the score so the flag is never stale relative to it.
func IsTrending(score float64) bool {
	return score > TrendingThreshold
}

// DeriveKeyword maps an item title to the keyword used for search and
// social windows: the first three words, lowercased. Titles sharing an
// opening phrase share a keyword, which is accepted for now.
func DeriveKeyword(title string) string {
	words := strings.Fields(strings.ToLower(title))
	if len(words) > keywordWords {
		words = words[:keywordWords]
	}
	return strings.Join(words, " ")
}

func clamp(lo, hi, v float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
