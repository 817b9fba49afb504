package collector

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/listingradar/radar/internal/db"
)

// Store name fragments for discovered listings.
var (
	storefrontBrands = []string{
		"TrendCo", "ModernBrand", "EcoStyle", "PureLife", "FlexFit",
		"SmartHome", "ActiveWear", "UrbanChic", "NaturalVibes", "TechHub",
	}
	storefrontNouns = []string{
		"Organizer", "Diffuser", "Blender", "Tracker", "Lamp",
		"Holder", "Kit", "Stand", "Bottle", "Mat",
	}
	storefrontCategories = []string{
		"Home & Kitchen", "Electronics", "Sports & Outdoors",
		"Health & Personal Care", "Beauty & Personal Care",
		"Toys & Games", "Pet Supplies", "Office Products",
	}
)

// StorefrontSource simulates independent-storefront discovery: each run it
// finds a handful of listings that were not tracked before. New entrants
// feed the competition density sub-score, which counts products first seen
// inside the lookback window per category.
type StorefrontSource struct {
	now func() time.Time
}

func NewStorefrontSource() *StorefrontSource {
	return &StorefrontSource{now: time.Now}
}

func (s *StorefrontSource) Name() string { return "storefront" }

func (s *StorefrontSource) Collect(ctx context.Context, q db.Querier) (int, error) {
	count := 1 + rand.IntN(4)
	now := s.now().UTC()

	stored := 0
	for i := 0; i < count; i++ {
		sku := fmt.Sprintf("SF-%08X", rand.Uint32())
		title := fmt.Sprintf("%s %s", storefrontBrands[rand.IntN(len(storefrontBrands))],
			storefrontNouns[rand.IntN(len(storefrontNouns))])
		category := storefrontCategories[rand.IntN(len(storefrontCategories))]
		price := 14.99 + rand.Float64()*85
		rank := 1000 + rand.IntN(99000)

		_, err := q.Exec(ctx, "upsert_product",
			sku, title, category, price, rank, nil, now)
		if err != nil {
			return stored, fmt.Errorf("upsert discovered %s: %w", sku, err)
		}
		stored++
	}
	return stored, nil
}
