package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jocoandonob/voicebot/internal/ports"
	"github.com/jocoandonob/voicebot/internal/stats"
)

type StatsHandler struct {
	statsService ports.StatsService
	log          *logger.ZapLogger
}

func NewStatsHandler(statsService ports.StatsService, log *logger.ZapLogger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		log:          log,
	}
}

func (h *StatsHandler) TrackVisitor(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	device := r.UserAgent()
	if device == "" {
		device = "Unknown"
	}

	visitor, total, err := h.statsService.TrackVisitor(r.Context(), ip, device)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "track visitor failed", Error: err})
		respondJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Failed to track visitor"})
		return
	}
	if visitor == nil {
		// stats not configured
		respondJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Statistics disabled"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"visitor_id":     visitor.ID,
		"visit_count":    visitor.VisitCount,
		"total_visitors": total,
	})
}

func (h *StatsHandler) CheckButtonUsage(w http.ResponseWriter, r *http.Request) {
	button := chi.URLParam(r, "button_type")
	if !stats.ValidButton(button) {
		respondError(w, http.StatusBadRequest, "Invalid button type")
		return
	}

	usage := h.statsService.CheckButtonUsage(r.Context(), clientIP(r), r.UserAgent(), button)
	respondJSON(w, http.StatusOK, usage)
}

func (h *StatsHandler) IncrementButtonUsage(w http.ResponseWriter, r *http.Request) {
	button := chi.URLParam(r, "button_type")
	if !stats.ValidButton(button) {
		respondError(w, http.StatusBadRequest, "Invalid button type")
		return
	}

	visitor, err := h.statsService.IncrementButtonUsage(r.Context(), clientIP(r), r.UserAgent(), button)
	if err != nil || visitor == nil {
		if err != nil {
			h.log.Log(logger.LogEntry{Level: "error", Message: "increment button usage failed", Error: err})
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Failed to increment button count"})
		return
	}

	count := 0
	switch button {
	case "record":
		count = visitor.RecordButtonCount
	case "send":
		count = visitor.SendButtonCount
	case "read":
		count = visitor.ReadButtonCount
	}

	remaining := h.statsService.ButtonLimit() - count
	if remaining < 0 {
		remaining = 0
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":              true,
		button + "_button_count": count,
		"remaining":            remaining,
	})
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	totals, err := h.statsService.UsageStats(r.Context())
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "usage stats failed", Error: err})
		respondError(w, http.StatusInternalServerError, "Error fetching statistics: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, totals)
}
