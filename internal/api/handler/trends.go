package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/listingradar/radar/internal/api/respond"
	"github.com/listingradar/radar/internal/cache"
	"github.com/listingradar/radar/internal/signal"
)

const (
	defaultTrendLimit = 100
	maxTrendDays      = 30
)

// GetTrends returns recent signal records, optionally filtered by platform.
// @Summary Recent signals
// @Description Returns recent signal records across all tracked keywords, newest first.
// @Tags trends
// @Produce json
// @Param platform query string false "Platform filter" Enums(rank_source, search_trends, social_reddit, social_shortvideo)
// @Param days query int false "Lookback in days (default 7, max 30)"
// @Param limit query int false "Max records"
// @Success 200 {array} signal.Record
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /trends [get]
func (h *Handler) GetTrends(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 7)
	if days > maxTrendDays {
		days = maxTrendDays
	}
	limit := queryInt(r, "limit", defaultTrendLimit)

	var platform *signal.Platform
	if p := r.URL.Query().Get("platform"); p != "" {
		pl := signal.Platform(p)
		if !pl.Valid() {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_PLATFORM", "Unknown platform")
			return
		}
		platform = &pl
	}

	cacheKey := fmt.Sprintf("trends:%v:%d:%d", r.URL.Query().Get("platform"), days, limit)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLTrends, true)
		return
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	records, err := signal.FetchRecent(r.Context(), h.q, since, platform, limit)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to fetch signals")
		return
	}
	if records == nil {
		records = []signal.Record{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode signals")
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLTrends)
	respond.WriteJSON(w, data, etag, cache.TTLTrends, false)
}
