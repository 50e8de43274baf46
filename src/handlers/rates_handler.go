package handlers

import (
	"net/http"

	"github.com/username/hogiahlang/src/models"
	"github.com/username/hogiahlang/src/services"
	"github.com/username/hogiahlang/src/utils"
)

type RatesHandler struct {
	ratesService    services.RatesService
	defaultCurrency string
}

func NewRatesHandler(ratesService services.RatesService, defaultCurrency string) *RatesHandler {
	return &RatesHandler{
		ratesService:    ratesService,
		defaultCurrency: defaultCurrency,
	}
}

// HandleGetRates returns the conversion rates for a base currency. With
// `refresh=true` the provider is contacted even when a cached map is fresh.
func (h *RatesHandler) HandleGetRates(w http.ResponseWriter, r *http.Request) {
	base, err := reportingCurrency(r, h.defaultCurrency)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if baseParam := r.URL.Query().Get("base"); baseParam != "" {
		if !models.IsSupportedCurrency(baseParam) {
			utils.SendJSONError(w, "unsupported base currency "+baseParam, http.StatusBadRequest)
			return
		}
		base = baseParam
	}

	var rates models.RateMap
	if r.URL.Query().Get("refresh") == "true" {
		rates, err = h.ratesService.Refresh(base, models.CurrencyCodes())
	} else {
		rates, err = h.ratesService.GetRates(base, models.CurrencyCodes())
	}
	if err != nil && rates == nil {
		writeServiceError(w, err)
		return
	}

	response := struct {
		Base  string         `json:"base"`
		Rates models.RateMap `json:"rates"`
		Stale bool           `json:"stale,omitempty"`
	}{
		Base:  base,
		Rates: rates,
		Stale: err != nil,
	}
	utils.SendJSON(w, response, http.StatusOK)
}

// HandleGetCurrencies lists the currencies the service supports.
func (h *RatesHandler) HandleGetCurrencies(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, models.SupportedCurrencies(), http.StatusOK)
}
