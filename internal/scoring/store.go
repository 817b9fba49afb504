package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
)

// ListProductIDs returns the IDs of all tracked products, in stable order.
func ListProductIDs(ctx context.Context, q db.Querier) ([]int64, error) {
	rows, err := q.Query(ctx, "list_product_ids")
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetForScoring loads the fields the engine needs to score one product.
func GetForScoring(ctx context.Context, q db.Querier, id int64) (*Product, error) {
	var p Product
	err := q.QueryRow(ctx, "product_for_scoring", id).Scan(
		&p.ID, &p.SKU, &p.Title, &p.Category,
		&p.RankCurrent, &p.RankPrevious, &p.LastUpdated,
	)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// UpdateMomentum persists a freshly computed score. Score, confidence,
// trending flag, and timestamp are written in one statement so readers
// never observe them out of step.
func UpdateMomentum(ctx context.Context, q db.Querier, id int64, score float64, conf config.Confidence, trending bool, at time.Time) error {
	_, err := q.Exec(ctx, "update_product_momentum", id, score, conf, trending, at)
	if err != nil {
		return fmt.Errorf("update momentum for product %d: %w", id, err)
	}
	return nil
}

// CountNewInCategory counts products first seen in a category after the
// cutoff. Feeds the competition density sub-score.
func CountNewInCategory(ctx context.Context, q db.Querier, category string, since time.Time) (int, error) {
	var n int
	if err := q.QueryRow(ctx, "count_new_in_category", category, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count new in category %q: %w", category, err)
	}
	return n, nil
}
