// Package alert decides when a scored product warrants notifying a human
// and delivers the notification.
//
// Pipeline: query alert-worthy products → dedup against the last sent alert
// per product → format → attempt delivery → persist an audit record. The
// audit record is written even when delivery fails, so a broken transport
// cannot cause alert storms once it recovers.
package alert

import (
	"time"

	"github.com/listingradar/radar/internal/config"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	// TypeMomentumSpike is the alert type for threshold crossings found by
	// the periodic gate check.
	TypeMomentumSpike = "momentum_spike"

	// TypeTest marks manually triggered connectivity-check alerts.
	TypeTest = "test"
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Record is one sent (or attempted) notification, append-only.
type Record struct {
	ID                int64             `json:"id,omitempty"`
	ProductSKU        string            `json:"product_sku"`
	Type              string            `json:"alert_type"`
	Message           string            `json:"message"`
	MomentumScore     float64           `json:"momentum_score"`
	Confidence        config.Confidence `json:"confidence"`
	SentAt            time.Time         `json:"sent_at"`
	DeliverySucceeded bool              `json:"delivery_succeeded"`
}

// Candidate is a product that passed the score/confidence/trending filter
// and is being considered by the gate.
type Candidate struct {
	ID            int64
	SKU           string
	Title         string
	Category      string
	Price         float64
	RankCurrent   *int
	RankPrevious  *int
	MomentumScore float64
	Confidence    config.Confidence
}
