// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/listingradar/radar/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API, collectors,
// and scoring/alerting layers use. Prepared statements eliminate parse
// overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Signals: ingestion and window reads
		"insert_signal": `INSERT INTO signal_records (entity_key, platform, volume, velocity, sentiment, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
		"signal_window": `SELECT entity_key, platform, volume, velocity, sentiment, recorded_at
			FROM signal_records
			WHERE entity_key = $1 AND platform = $2 AND recorded_at > $3
			ORDER BY recorded_at DESC
			LIMIT $4`,
		"signal_social_window": `SELECT entity_key, platform, volume, velocity, sentiment, recorded_at
			FROM signal_records
			WHERE entity_key = $1 AND platform = ANY($2) AND recorded_at > $3
			ORDER BY recorded_at DESC`,
		"recent_signals": `SELECT id, entity_key, platform, volume, velocity, sentiment, recorded_at
			FROM signal_records
			WHERE recorded_at > $1 AND ($2::text IS NULL OR platform = $2)
			ORDER BY recorded_at DESC
			LIMIT $3`,

		// Products: catalog and scoring
		"upsert_product": `INSERT INTO products (sku, title, category, price, rank_current, rank_previous, first_seen)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (sku) DO UPDATE SET
				title = EXCLUDED.title,
				price = EXCLUDED.price,
				rank_previous = products.rank_current,
				rank_current = EXCLUDED.rank_current`,
		"list_product_ids":    "SELECT id FROM products ORDER BY id",
		"list_product_titles": "SELECT title FROM products ORDER BY id LIMIT $1",
		"product_for_scoring": `SELECT id, sku, title, category, rank_current, rank_previous, last_updated
			FROM products WHERE id = $1`,
		"update_product_momentum": `UPDATE products
			SET momentum_score = $2, confidence_level = $3, is_trending = $4, last_updated = $5
			WHERE id = $1`,
		"count_new_in_category": `SELECT count(*) FROM products
			WHERE category = $1 AND first_seen > $2`,

		// Alerts: gate and audit log
		"eligible_products": `SELECT id, sku, title, category, price, rank_current, rank_previous,
				momentum_score, confidence_level
			FROM products
			WHERE momentum_score >= $1 AND confidence_level = ANY($2) AND is_trending
			ORDER BY momentum_score DESC`,
		"last_alert_sent_at": `SELECT sent_at FROM alerts
			WHERE product_sku = $1
			ORDER BY sent_at DESC
			LIMIT 1`,
		"insert_alert": `INSERT INTO alerts (product_sku, alert_type, message, momentum_score, confidence, sent_at, delivery_succeeded)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		"recent_alerts": `SELECT id, product_sku, alert_type, message, momentum_score, confidence, sent_at, delivery_succeeded
			FROM alerts
			WHERE sent_at > $1
			ORDER BY sent_at DESC
			LIMIT $2`,

		// Digest
		"digest_top_products": `SELECT sku, title, category, momentum_score, confidence_level
			FROM products
			WHERE last_updated > $1 AND momentum_score > $2
			ORDER BY momentum_score DESC
			LIMIT $3`,
		"digest_top_keywords": `SELECT entity_key, volume, velocity FROM (
				SELECT DISTINCT ON (entity_key) entity_key, volume, velocity
				FROM signal_records
				WHERE platform = $1 AND recorded_at > $2 AND velocity > 0
				ORDER BY entity_key, recorded_at DESC
			) latest
			ORDER BY velocity DESC
			LIMIT $3`,

		// Dashboard stats
		"count_products":      "SELECT count(*) FROM products",
		"count_trending":      "SELECT count(*) FROM products WHERE is_trending",
		"count_alerts_since":  "SELECT count(*) FROM alerts WHERE sent_at > $1",
		"momentum_band_count": "SELECT count(*) FROM products WHERE momentum_score >= $1 AND momentum_score < $2",
		"list_products": `SELECT id, sku, title, category, price, rank_current, rank_previous, momentum_score, confidence_level, is_trending, last_updated
			FROM products
			WHERE ($1::bool IS NOT TRUE OR is_trending) AND ($2::text IS NULL OR category = $2)
			ORDER BY momentum_score DESC
			OFFSET $3 LIMIT $4`,
		"distinct_categories": "SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
