package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
)

// EligibleProducts returns products whose score, confidence, and trending
// flag pass the alert filter, highest score first. Dedup happens later, per
// product, against the alert log.
func EligibleProducts(ctx context.Context, q db.Querier, threshold float64, confidences []config.Confidence) ([]Candidate, error) {
	names := make([]string, len(confidences))
	for i, c := range confidences {
		names[i] = string(c)
	}

	rows, err := q.Query(ctx, "eligible_products", threshold, names)
	if err != nil {
		return nil, fmt.Errorf("eligible products: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(
			&c.ID, &c.SKU, &c.Title, &c.Category, &c.Price,
			&c.RankCurrent, &c.RankPrevious, &c.MomentumScore, &c.Confidence,
		); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// LastAlertTime returns when the most recent alert for a product was sent.
// The second return is false when the product has never been alerted.
func LastAlertTime(ctx context.Context, q db.Querier, sku string) (time.Time, bool, error) {
	var sentAt time.Time
	err := q.QueryRow(ctx, "last_alert_sent_at", sku).Scan(&sentAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last alert for %s: %w", sku, err)
	}
	return sentAt, true, nil
}

// InsertRecord appends one alert to the audit log.
func InsertRecord(ctx context.Context, q db.Querier, r Record) error {
	_, err := q.Exec(ctx, "insert_alert",
		r.ProductSKU, r.Type, r.Message, r.MomentumScore, r.Confidence, r.SentAt, r.DeliverySucceeded)
	if err != nil {
		return fmt.Errorf("insert alert for %s: %w", r.ProductSKU, err)
	}
	return nil
}

// FetchRecent returns alerts sent after the cutoff, newest first. Used by
// the dashboard.
func FetchRecent(ctx context.Context, q db.Querier, since time.Time, limit int) ([]Record, error) {
	rows, err := q.Query(ctx, "recent_alerts", since, limit)
	if err != nil {
		return nil, fmt.Errorf("recent alerts: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID, &r.ProductSKU, &r.Type, &r.Message,
			&r.MomentumScore, &r.Confidence, &r.SentAt, &r.DeliverySucceeded,
		); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
