package collector

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/listingradar/radar/internal/db"
	"github.com/listingradar/radar/internal/scoring"
	"github.com/listingradar/radar/internal/signal"
)

const trendsKeywordLimit = 50

// fallbackKeywords keeps the trends feed alive before the catalog has been
// collected for the first time.
var fallbackKeywords = []string{
	"wireless earbuds", "air fryer", "yoga mat", "protein powder",
	"standing desk", "ring light", "bluetooth speaker", "coffee grinder",
	"resistance bands", "water bottle",
}

// SearchTrendsSource emits one search volume point per tracked keyword per
// run. Keywords are derived from product titles the same way the scoring
// engine derives them, so the windows line up.
//
// Each keyword follows a fixed regime (accelerating, stable, or declining)
// chosen by hashing the keyword, so repeated runs build a coherent series
// instead of white noise.
type SearchTrendsSource struct {
	last map[string]float64
	now  func() time.Time
}

func NewSearchTrendsSource() *SearchTrendsSource {
	return &SearchTrendsSource{
		last: make(map[string]float64),
		now:  time.Now,
	}
}

func (s *SearchTrendsSource) Name() string { return "search_trends" }

func (s *SearchTrendsSource) Collect(ctx context.Context, q db.Querier) (int, error) {
	keywords, err := s.trackedKeywords(ctx, q)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	records := make([]signal.Record, 0, len(keywords))
	for _, kw := range keywords {
		volume := s.nextVolume(kw)
		records = append(records, signal.Record{
			EntityKey:  kw,
			Platform:   signal.PlatformSearchTrends,
			Volume:     volume,
			Velocity:   volume - s.prevVolume(kw, volume),
			Sentiment:  0.5,
			RecordedAt: now,
		})
		s.last[kw] = volume
	}
	return signal.Insert(ctx, q, records)
}

// trackedKeywords derives keywords from the catalog titles, falling back to
// a static list when the catalog is empty.
func (s *SearchTrendsSource) trackedKeywords(ctx context.Context, q db.Querier) ([]string, error) {
	rows, err := q.Query(ctx, "list_product_titles", trendsKeywordLimit)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var keywords []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		kw := scoring.DeriveKeyword(title)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(keywords) == 0 {
		keywords = fallbackKeywords
	}
	return keywords, nil
}

// nextVolume advances the keyword's series one step under its regime.
func (s *SearchTrendsSource) nextVolume(kw string) float64 {
	prev, ok := s.last[kw]
	if !ok {
		prev = 10 + float64(keywordHash(kw)%70)
	}

	var next float64
	switch keywordHash(kw) % 5 {
	case 0, 1: // accelerating
		next = prev*1.2 + rand.Float64()*10 - 2
	case 2: // declining
		next = prev*0.85 + rand.Float64()*4 - 2
	default: // stable
		next = prev + rand.Float64()*20 - 10
	}

	if next < 0 {
		next = 0
	}
	if next > 100 {
		next = 100
	}
	return next
}

func (s *SearchTrendsSource) prevVolume(kw string, current float64) float64 {
	if prev, ok := s.last[kw]; ok {
		return prev
	}
	return current
}

func keywordHash(kw string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(kw))
	return h.Sum32()
}
