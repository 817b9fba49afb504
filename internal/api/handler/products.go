package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/listingradar/radar/internal/api/respond"
	"github.com/listingradar/radar/internal/cache"
	"github.com/listingradar/radar/internal/config"
)

const (
	defaultProductLimit = 50
	maxProductLimit     = 200
)

// productRow is the dashboard projection of a scored product.
type productRow struct {
	ID            int64             `json:"id"`
	SKU           string            `json:"sku"`
	Title         string            `json:"title"`
	Category      string            `json:"category"`
	Price         float64           `json:"price"`
	RankCurrent   *int              `json:"rank_current"`
	RankPrevious  *int              `json:"rank_previous"`
	MomentumScore float64           `json:"momentum_score"`
	Confidence    config.Confidence `json:"confidence"`
	IsTrending    bool              `json:"is_trending"`
	LastUpdated   time.Time         `json:"last_updated"`
}

// GetProducts lists tracked products ordered by momentum score.
// @Summary List products
// @Description Returns tracked products ordered by momentum score, optionally filtered to trending products or one category.
// @Tags products
// @Produce json
// @Param trending_only query bool false "Only trending products"
// @Param category query string false "Filter by category"
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} productRow
// @Failure 500 {object} respond.ErrorResponse
// @Router /products [get]
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	trendingOnly := r.URL.Query().Get("trending_only") == "true"
	category := r.URL.Query().Get("category")
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", defaultProductLimit)
	if limit > maxProductLimit {
		limit = maxProductLimit
	}

	cacheKey := fmt.Sprintf("products:%t:%s:%d:%d", trendingOnly, category, skip, limit)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLProducts, true)
		return
	}

	var trendingParam, categoryParam any
	if trendingOnly {
		trendingParam = true
	}
	if category != "" {
		categoryParam = category
	}

	rows, err := h.q.Query(r.Context(), "list_products", trendingParam, categoryParam, skip, limit)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to list products")
		return
	}
	defer rows.Close()

	products := make([]productRow, 0, limit)
	for rows.Next() {
		var p productRow
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Title, &p.Category, &p.Price,
			&p.RankCurrent, &p.RankPrevious, &p.MomentumScore, &p.Confidence,
			&p.IsTrending, &p.LastUpdated,
		); err != nil {
			respond.WriteError(w, http.StatusInternalServerError, "SCAN_FAILED", "Failed to read products")
			return
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to list products")
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode products")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLProducts)
	respond.WriteJSON(w, data, etag, cache.TTLProducts, false)
}

// GetCategories lists the distinct product categories.
// @Summary List categories
// @Description Returns the distinct categories of tracked products.
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} respond.ErrorResponse
// @Router /categories [get]
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := h.q.Query(r.Context(), "distinct_categories")
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to list categories")
		return
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			respond.WriteError(w, http.StatusInternalServerError, "SCAN_FAILED", "Failed to read categories")
			return
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to list categories")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, categories)
}

func queryInt(r *http.Request, name string, def int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
