// Package signal defines the signal record model and window reads over the
// append-only signal store.
//
// Collectors write one record per observation (search volume, social
// mentions, rank movement); the scoring engine reads narrow time windows
// per entity and platform. Records are never updated in place.
package signal

import "time"

// --------------------------------------------------------------------------
// Platforms
// --------------------------------------------------------------------------

// Platform identifies the source of a signal record.
type Platform string

const (
	PlatformRankSource   Platform = "rank_source"
	PlatformSearchTrends Platform = "search_trends"
	PlatformReddit       Platform = "social_reddit"
	PlatformShortVideo   Platform = "social_shortvideo"
)

// SocialPlatforms lists the platforms aggregated by the social buzz score.
var SocialPlatforms = []Platform{PlatformReddit, PlatformShortVideo}

// Valid reports whether p is a recognized platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformRankSource, PlatformSearchTrends, PlatformReddit, PlatformShortVideo:
		return true
	}
	return false
}

// --------------------------------------------------------------------------
// Records
// --------------------------------------------------------------------------

// Record is a single time-stamped signal observation for a keyword or item.
type Record struct {
	ID         int64     `json:"id,omitempty"`
	EntityKey  string    `json:"entity_key"`
	Platform   Platform  `json:"platform"`
	Volume     float64   `json:"volume"`    // conventionally 0-100
	Velocity   float64   `json:"velocity"`  // signed rate of change
	Sentiment  float64   `json:"sentiment"` // 0-1
	RecordedAt time.Time `json:"recorded_at"`
}

// Window limits for the scoring reads.
const (
	SearchWindowDays  = 30
	SearchWindowLimit = 5
	SocialWindowDays  = 7
)
