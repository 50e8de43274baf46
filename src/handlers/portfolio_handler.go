package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/hogiahlang/src/logger"
	"github.com/username/hogiahlang/src/models"
	"github.com/username/hogiahlang/src/services"
	"github.com/username/hogiahlang/src/utils"
	"github.com/username/hogiahlang/src/views"
)

type PortfolioHandler struct {
	portfolioService services.PortfolioService
	ratesService     services.RatesService
	defaultCurrency  string
}

func NewPortfolioHandler(portfolioService services.PortfolioService, ratesService services.RatesService, defaultCurrency string) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		ratesService:     ratesService,
		defaultCurrency:  defaultCurrency,
	}
}

// reportingCurrency reads the `currency` query parameter, falling back to the
// configured default reporting currency when absent.
func reportingCurrency(r *http.Request, fallback string) (string, error) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		return fallback, nil
	}
	if !models.IsSupportedCurrency(currency) {
		return "", &models.ValidationError{Field: "currency", Reason: fmt.Sprintf("unsupported currency %q", currency)}
	}
	return currency, nil
}

// HandleGetBreakdown serves the portfolio chart data. With `overall=true` it
// groups every account's investments by category and appends a combined cash
// bucket; with `account=N` it shows one bucket per holding of that account.
func (h *PortfolioHandler) HandleGetBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	currency, err := reportingCurrency(r, h.defaultCurrency)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	overall := r.URL.Query().Get("overall") == "true"
	accountParam := r.URL.Query().Get("account")
	if !overall && accountParam == "" {
		utils.SendJSONError(w, "either overall=true or an account parameter is required", http.StatusBadRequest)
		return
	}

	rates, err := h.ratesService.GetRates(currency, models.CurrencyCodes())
	if err != nil {
		if rates == nil {
			writeServiceError(w, err)
			return
		}
		// Stale rates are better than no chart. The fetch failure is logged
		// by the rates service.
		logger.L.Warn("Serving breakdown with last known rates", "currency", currency, "error", err)
	}

	var breakdown models.Breakdown
	if overall {
		breakdown, err = h.portfolioService.OverallBreakdown(userID, rates)
	} else {
		var accountID int64
		accountID, err = strconv.ParseInt(accountParam, 10, 64)
		if err != nil {
			utils.SendJSONError(w, "invalid account parameter", http.StatusBadRequest)
			return
		}
		breakdown, err = h.portfolioService.AccountBreakdown(userID, accountID, rates)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	view := views.AssembleBreakdown(breakdown, currency)

	currentETag, etagErr := utils.GenerateETag(view)
	if etagErr != nil {
		logger.L.Error("Failed to generate ETag for breakdown", "userID", userID, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				logger.L.Debug("ETag match for breakdown", "userID", userID, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	utils.SendJSON(w, view, http.StatusOK)
}
