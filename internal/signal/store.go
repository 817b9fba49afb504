package signal

import (
	"context"
	"fmt"
	"time"

	"github.com/listingradar/radar/internal/db"
)

// Insert appends a batch of signal records. Records are immutable once
// written; there is no update path.
func Insert(ctx context.Context, q db.Querier, records []Record) (int, error) {
	inserted := 0
	for _, r := range records {
		_, err := q.Exec(ctx, "insert_signal",
			r.EntityKey, r.Platform, r.Volume, r.Velocity, r.Sentiment, r.RecordedAt)
		if err != nil {
			return inserted, fmt.Errorf("insert signal %s/%s: %w", r.EntityKey, r.Platform, err)
		}
		inserted++
	}
	return inserted, nil
}

// FetchWindow returns up to limit most recent records for an entity on one
// platform since the given cutoff, newest first.
func FetchWindow(ctx context.Context, q db.Querier, entityKey string, platform Platform, since time.Time, limit int) ([]Record, error) {
	rows, err := q.Query(ctx, "signal_window", entityKey, platform, since, limit)
	if err != nil {
		return nil, fmt.Errorf("signal window %s/%s: %w", entityKey, platform, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.EntityKey, &r.Platform, &r.Volume, &r.Velocity, &r.Sentiment, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan signal record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FetchSocialWindow returns all social-platform records for an entity since
// the cutoff, newest first.
func FetchSocialWindow(ctx context.Context, q db.Querier, entityKey string, since time.Time) ([]Record, error) {
	platforms := make([]string, len(SocialPlatforms))
	for i, p := range SocialPlatforms {
		platforms[i] = string(p)
	}

	rows, err := q.Query(ctx, "signal_social_window", entityKey, platforms, since)
	if err != nil {
		return nil, fmt.Errorf("social window %s: %w", entityKey, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.EntityKey, &r.Platform, &r.Volume, &r.Velocity, &r.Sentiment, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan signal record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FetchRecent returns recent records across all entities, optionally
// filtered by platform. Used by the dashboard trends endpoint.
func FetchRecent(ctx context.Context, q db.Querier, since time.Time, platform *Platform, limit int) ([]Record, error) {
	var platformParam any
	if platform != nil {
		platformParam = string(*platform)
	}

	rows, err := q.Query(ctx, "recent_signals", since, platformParam, limit)
	if err != nil {
		return nil, fmt.Errorf("recent signals: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.EntityKey, &r.Platform, &r.Volume, &r.Velocity, &r.Sentiment, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan signal record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
