// Package digest builds the daily summary of momentum activity: the
// top-scoring products of the last day and the fastest-growing search
// keywords of the last week.
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/listingradar/radar/internal/config"
	"github.com/listingradar/radar/internal/db"
	"github.com/listingradar/radar/internal/signal"
)

const (
	// ProductWindow is how far back a product's score refresh may be for it
	// to count toward the digest.
	ProductWindow = 24 * time.Hour

	// KeywordWindow is the lookback for rising search keywords.
	KeywordWindow = 7 * 24 * time.Hour

	// ScoreFloor excludes products that never built real momentum.
	ScoreFloor = 40.0

	topLimit   = 10
	embedLimit = 5
)

// TopProduct is one digest entry for a scored product.
type TopProduct struct {
	SKU           string            `json:"sku"`
	Title         string            `json:"title"`
	Category      string            `json:"category"`
	MomentumScore float64           `json:"momentum_score"`
	Confidence    config.Confidence `json:"confidence"`
}

// RisingKeyword is one digest entry for a search term with positive
// velocity, based on its most recent signal record.
type RisingKeyword struct {
	Keyword  string  `json:"keyword"`
	Volume   float64 `json:"volume"`
	Velocity float64 `json:"velocity"`
}

// Digest is a snapshot of the day's momentum activity. Rendering it is a
// pure function of its fields, so the same snapshot always produces the
// same text.
type Digest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	TopProducts []TopProduct    `json:"top_products"`
	Keywords    []RisingKeyword `json:"rising_keywords"`
}

// Build assembles the digest from current store state. now is the snapshot
// timestamp; the lookback windows are anchored to it.
func Build(ctx context.Context, q db.Querier, now time.Time) (*Digest, error) {
	now = now.UTC()
	d := &Digest{GeneratedAt: now}

	rows, err := q.Query(ctx, "digest_top_products", now.Add(-ProductWindow), ScoreFloor, topLimit)
	if err != nil {
		return nil, fmt.Errorf("digest products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p TopProduct
		if err := rows.Scan(&p.SKU, &p.Title, &p.Category, &p.MomentumScore, &p.Confidence); err != nil {
			return nil, fmt.Errorf("scan digest product: %w", err)
		}
		d.TopProducts = append(d.TopProducts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("digest products: %w", err)
	}

	kwRows, err := q.Query(ctx, "digest_top_keywords",
		string(signal.PlatformSearchTrends), now.Add(-KeywordWindow), topLimit)
	if err != nil {
		return nil, fmt.Errorf("digest keywords: %w", err)
	}
	defer kwRows.Close()
	for kwRows.Next() {
		var k RisingKeyword
		if err := kwRows.Scan(&k.Keyword, &k.Volume, &k.Velocity); err != nil {
			return nil, fmt.Errorf("scan digest keyword: %w", err)
		}
		d.Keywords = append(d.Keywords, k)
	}
	if err := kwRows.Err(); err != nil {
		return nil, fmt.Errorf("digest keywords: %w", err)
	}

	return d, nil
}

// Render formats the digest as a Markdown message. The top five entries of
// each section are spelled out; the rest are counted.
func Render(d *Digest) string {
	var b strings.Builder

	b.WriteString("*Daily Momentum Digest*\n")
	fmt.Fprintf(&b, "_%s_\n\n", d.GeneratedAt.Format("2006-01-02"))

	b.WriteString("*Top products*\n")
	if len(d.TopProducts) == 0 {
		b.WriteString("No products crossed the momentum floor today.\n")
	} else {
		for i, p := range d.TopProducts {
			if i == embedLimit {
				fmt.Fprintf(&b, "...and %d more\n", len(d.TopProducts)-embedLimit)
				break
			}
			fmt.Fprintf(&b, "%d. %s: %.1f (%s)\n", i+1, p.Title, p.MomentumScore, p.Confidence)
		}
	}

	b.WriteString("\n*Rising keywords*\n")
	if len(d.Keywords) == 0 {
		b.WriteString("No rising search keywords this week.\n")
	} else {
		for i, k := range d.Keywords {
			if i == embedLimit {
				fmt.Fprintf(&b, "...and %d more\n", len(d.Keywords)-embedLimit)
				break
			}
			fmt.Fprintf(&b, "%d. %s (velocity %+.1f)\n", i+1, k.Keyword, k.Velocity)
		}
	}

	return b.String()
}
