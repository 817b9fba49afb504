package collector

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/listingradar/radar/internal/db"
)

// catalogItem is one tracked product in the demo catalog.
type catalogItem struct {
	sku      string
	title    string
	category string
}

// demoCatalog is a fixed set of tracked products. A real deployment would
// replace this with a marketplace bestseller scrape; the scoring path does
// not care which.
var demoCatalog = []catalogItem{
	{"B09G9F43QL", "LEVOIT Core 300S Air Purifier", "Home & Kitchen"},
	{"B07Y523S3G", "iRobot Roomba 694 Robot Vacuum", "Home & Kitchen"},
	{"B0B3YC5VPC", "Stanley Quencher H2.0 FlowState Tumbler", "Home & Kitchen"},
	{"B08W2TP2TT", "Simple Modern 40 oz Tumbler with Handle", "Home & Kitchen"},
	{"B08166SLDF", "Anker Nano Charger 20W PIQ 3.0", "Electronics"},
	{"B07XJ8C8F7", "SAMSUNG EVO Select Micro SD Card", "Electronics"},
	{"B08J816436", "Hydro Flask Wide Mouth Straw Lid", "Sports & Outdoors"},
	{"B01N6S4A25", "LifeStraw Personal Water Filter", "Sports & Outdoors"},
	{"B08T27XDX9", "Owala FreeSip Insulated Water Bottle", "Sports & Outdoors"},
	{"B07YV1FB4N", "Vital Proteins Collagen Peptides", "Health & Personal Care"},
	{"B081CK61TW", "TheraGun Mini Massage Gun", "Health & Personal Care"},
	{"B07RFSS7W2", "CeraVe Hydrating Facial Cleanser", "Beauty & Personal Care"},
	{"B08L59X72Q", "The Ordinary Niacinamide 10% Zinc 1%", "Beauty & Personal Care"},
	{"B0BQZR7QXS", "Mighty Patch Original from Hero Cosmetics", "Beauty & Personal Care"},
	{"B07W4F2728", "TeeTurtle Original Reversible Octopus", "Toys & Games"},
	{"B08F223V34", "What Do You Meme Family Edition", "Toys & Games"},
	{"B01M337229", "FURminator Undercoat Deshedding Tool", "Pet Supplies"},
	{"B07M592B9X", "Greenies Original Teenie Dental Treats", "Pet Supplies"},
	{"B07GPR2T4V", "Rocketbook Smart Reusable Notebook", "Office Products"},
	{"B0842B5C62", "Logitech MX Master 3S Mouse", "Office Products"},
}

// RankSource maintains the tracked catalog with synthetic bestseller rank
// movement. Each run writes a fresh current rank; the upsert rotates the
// stored current rank into the previous slot, which is what rank velocity
// is computed from.
type RankSource struct {
	now func() time.Time
}

func NewRankSource() *RankSource {
	return &RankSource{now: time.Now}
}

func (s *RankSource) Name() string { return "rank_source" }

func (s *RankSource) Collect(ctx context.Context, q db.Querier) (int, error) {
	stored := 0
	for _, item := range demoCatalog {
		// Half the catalog improves, half slides. Improvements are larger
		// so a few products cross the momentum threshold each day.
		current := 100 + rand.IntN(49900)
		if rand.IntN(2) == 0 {
			current = max(1, current-rand.IntN(20000))
		}
		price := 9.99 + rand.Float64()*140

		_, err := q.Exec(ctx, "upsert_product",
			item.sku, item.title, item.category, price, current, nil, s.now().UTC())
		if err != nil {
			return stored, fmt.Errorf("upsert %s: %w", item.sku, err)
		}
		stored++
	}
	return stored, nil
}
