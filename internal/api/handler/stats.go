package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/listingradar/radar/internal/api/respond"
	"github.com/listingradar/radar/internal/cache"
	"github.com/listingradar/radar/internal/digest"
)

// momentum score bands for the dashboard distribution
var momentumBands = []struct {
	name   string
	lo, hi float64
}{
	{"high", 70, 101},
	{"medium", 40, 70},
	{"low", 0, 40},
}

// GetStats returns dashboard summary counts.
// @Summary Dashboard stats
// @Description Returns product counts, trending count, alerts in the last day, and the momentum score distribution.
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "stats"
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLStats, true)
		return
	}

	ctx := r.Context()

	var total, trending, dailyAlerts int
	if err := h.scanCount(ctx, "count_products", &total); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to compute stats")
		return
	}
	if err := h.scanCount(ctx, "count_trending", &trending); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to compute stats")
		return
	}
	dayAgo := time.Now().UTC().Add(-24 * time.Hour)
	if err := h.q.QueryRow(ctx, "count_alerts_since", dayAgo).Scan(&dailyAlerts); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to compute stats")
		return
	}

	distribution := make(map[string]int, len(momentumBands))
	for _, band := range momentumBands {
		var n int
		if err := h.q.QueryRow(ctx, "momentum_band_count", band.lo, band.hi).Scan(&n); err != nil {
			respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to compute stats")
			return
		}
		distribution[band.name] = n
	}

	stats := map[string]interface{}{
		"total_products":        total,
		"trending_products":     trending,
		"daily_alerts":          dailyAlerts,
		"momentum_distribution": distribution,
	}

	data, err := json.Marshal(stats)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode stats")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLStats)
	respond.WriteJSON(w, data, etag, cache.TTLStats, false)
}

// GetDigest returns the current daily digest snapshot.
// @Summary Digest preview
// @Description Builds the daily digest from current store state and returns both the structured data and the rendered text.
// @Tags digest
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /digest [get]
func (h *Handler) GetDigest(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "digest"
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLDigest, true)
		return
	}

	d, err := digest.Build(r.Context(), h.q, time.Now())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "DIGEST_FAILED", "Failed to build digest")
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"digest":   d,
		"rendered": digest.Render(d),
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode digest")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLDigest)
	respond.WriteJSON(w, data, etag, cache.TTLDigest, false)
}

func (h *Handler) scanCount(ctx context.Context, stmt string, dst *int) error {
	return h.q.QueryRow(ctx, stmt).Scan(dst)
}
