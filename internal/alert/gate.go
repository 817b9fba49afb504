package alert

import (
	"context"
	"log/slog"
	"time"

	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
)

// Sender delivers a rendered alert message to the outside world.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Gate enforces the per-product quiet period and writes the alert audit
// log. A product is either Quiet (no alert inside the dedup window) or
// RecentlyAlerted; the state is derived from the alert log, never stored.
type Gate struct {
	q      db.Querier
	sender Sender
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewGate creates an alert gate. sender may be nil, in which case alerts
// are logged instead of delivered and recorded as failed.
func NewGate(q db.Querier, sender Sender, cfg *config.Config, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		q:      q,
		sender: sender,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// CheckAndSend evaluates every alert-worthy product and fires alerts for
// those in the Quiet state. Returns the number of alerts recorded (sent or
// attempted). Products inside the dedup window are skipped silently with no
// record written. That is the dedup guarantee.
func (g *Gate) CheckAndSend(ctx context.Context) (int, error) {
	candidates, err := EligibleProducts(ctx, g.q, g.cfg.MomentumThreshold, g.cfg.AlertConfidences)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	recorded := 0
	for _, c := range candidates {
		now := g.now().UTC()

		lastAt, ok, err := LastAlertTime(ctx, g.q, c.SKU)
		if err != nil {
			return recorded, err
		}
		if ok && now.Sub(lastAt) <= g.cfg.DedupWindow {
			// RecentlyAlerted: inside the quiet period.
			continue
		}

		message := FormatMomentumAlert(c, now)
		delivered := g.deliver(ctx, message)

		// The record is written even when delivery failed, both for audit
		// and so the quiet period starts regardless.
		rec := Record{
			ProductSKU:        c.SKU,
			Type:              TypeMomentumSpike,
			Message:           message,
			MomentumScore:     c.MomentumScore,
			Confidence:        c.Confidence,
			SentAt:            now,
			DeliverySucceeded: delivered,
		}
		if err := InsertRecord(ctx, g.q, rec); err != nil {
			return recorded, err
		}
		recorded++

		g.logger.Info("Momentum alert",
			"sku", c.SKU, "score", c.MomentumScore,
			"confidence", c.Confidence, "delivered", delivered)
	}
	return recorded, nil
}

// SendTest delivers a connectivity-check message and records it.
func (g *Gate) SendTest(ctx context.Context) (bool, error) {
	now := g.now().UTC()
	message := FormatTestAlert(now)
	delivered := g.deliver(ctx, message)

	rec := Record{
		ProductSKU:        "-",
		Type:              TypeTest,
		Message:           message,
		SentAt:            now,
		DeliverySucceeded: delivered,
	}
	if err := InsertRecord(ctx, g.q, rec); err != nil {
		return delivered, err
	}
	return delivered, nil
}

// deliver attempts delivery and reports success. Delivery failures are
// logged, never raised.
func (g *Gate) deliver(ctx context.Context, message string) bool {
	if g.sender == nil {
		g.logger.Info("Alert (delivery disabled)", "message", message)
		return false
	}
	if err := g.sender.Send(ctx, message); err != nil {
		g.logger.Warn("Alert delivery failed", "error", err)
		return false
	}
	return true
}
