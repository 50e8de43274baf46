package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/username/hogiahlang/src/models"
	"github.com/username/hogiahlang/src/services"
	"github.com/username/hogiahlang/src/utils"
)

type StatisticsHandler struct {
	statisticsService services.StatisticsService
}

func NewStatisticsHandler(statisticsService services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// HandleSaveStatistics records an overall-portfolio snapshot.
func (h *StatisticsHandler) HandleSaveStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	var rows []models.InvestmentStatistic
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	snapshotID, err := h.statisticsService.Save(userID, rows)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.SendJSON(w, map[string]string{"snapshot_id": snapshotID}, http.StatusCreated)
}

func (h *StatisticsHandler) HandleGetLatestStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	rows, err := h.statisticsService.Latest(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.SendJSON(w, rows, http.StatusOK)
}

// HandleExportStatistics downloads the latest snapshot as a CSV file.
func (h *StatisticsHandler) HandleExportStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	// Buffer the CSV so a failure can still produce an error status instead
	// of a truncated 200 body.
	var buf bytes.Buffer
	if err := h.statisticsService.ExportCSV(&buf, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("portfolio_statistics_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}
