package handler

import (
	"net/http"
	"time"

	"github.com/listingradar/radar/internal/alert"
	"github.com/listingradar/radar/internal/api/respond"
)

const (
	defaultAlertDays  = 7
	defaultAlertLimit = 100
)

// GetAlerts returns recent alerts, newest first.
// @Summary Recent alerts
// @Description Returns alerts sent in the last N days, newest first.
// @Tags alerts
// @Produce json
// @Param days query int false "Lookback in days (default 7)"
// @Param limit query int false "Max records"
// @Success 200 {array} alert.Record
// @Failure 500 {object} respond.ErrorResponse
// @Router /alerts [get]
func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", defaultAlertDays)
	limit := queryInt(r, "limit", defaultAlertLimit)

	since := time.Now().UTC().AddDate(0, 0, -days)
	records, err := alert.FetchRecent(r.Context(), h.q, since, limit)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to fetch alerts")
		return
	}
	if records == nil {
		records = []alert.Record{}
	}
	respond.WriteJSONObject(w, http.StatusOK, records)
}

// PostTestAlert sends a connectivity-check alert through the gate.
// @Summary Send test alert
// @Description Delivers a test message through the configured alert channel and records it.
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /test-alert [post]
func (h *Handler) PostTestAlert(w http.ResponseWriter, r *http.Request) {
	delivered, err := h.gate.SendTest(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ALERT_FAILED", "Failed to record test alert")
		return
	}
	message := "Test alert sent"
	if !delivered {
		message = "Test alert recorded but not delivered"
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"success": delivered,
		"message": message,
	})
}
