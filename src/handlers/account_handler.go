package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/username/hogiahlang/src/models"
	"github.com/username/hogiahlang/src/processors"
	"github.com/username/hogiahlang/src/services"
	"github.com/username/hogiahlang/src/utils"
)

type AccountHandler struct {
	portfolioService services.PortfolioService
	ratesService     services.RatesService
	defaultCurrency  string
}

func NewAccountHandler(portfolioService services.PortfolioService, ratesService services.RatesService, defaultCurrency string) *AccountHandler {
	return &AccountHandler{
		portfolioService: portfolioService,
		ratesService:     ratesService,
		defaultCurrency:  defaultCurrency,
	}
}

func (h *AccountHandler) HandleGetAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	accounts, err := h.portfolioService.FetchAccounts(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if accounts == nil {
		accounts = []*models.Account{}
	}
	utils.SendJSON(w, accounts, http.StatusOK)
}

func (h *AccountHandler) HandleAddAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Name   string `json:"name"`
		Holder string `json:"holder"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	accountID, err := h.portfolioService.AddAccount(userID, payload.Name, payload.Holder)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.SendJSON(w, map[string]int64{"id": accountID}, http.StatusCreated)
}

func (h *AccountHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	accountID, err := pathID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.portfolioService.DeleteAccount(userID, accountID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) HandleUpdateCash(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	accountID, err := pathID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var payload struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.portfolioService.UpdateCash(userID, accountID, payload.Amount, payload.Currency); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetAccountTotal values one account, cash included, in the requested
// reporting currency.
func (h *AccountHandler) HandleGetAccountTotal(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	accountID, err := pathID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	currency, err := reportingCurrency(r, h.defaultCurrency)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rates, err := h.ratesService.GetRates(currency, models.CurrencyCodes())
	if err != nil && rates == nil {
		writeServiceError(w, err)
		return
	}

	total, missing, err := h.portfolioService.AccountTotal(userID, accountID, rates)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := struct {
		Total             decimal.Decimal `json:"total"`
		TotalFormatted    string          `json:"total_formatted"`
		Currency          string          `json:"currency"`
		MissingCurrencies []string        `json:"missing_currencies,omitempty"`
	}{
		Total:             processors.DisplayValue(total),
		TotalFormatted:    models.FormatAmount(currency, total),
		Currency:          currency,
		MissingCurrencies: missing,
	}
	utils.SendJSON(w, response, http.StatusOK)
}

func (h *AccountHandler) HandleUpdateInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	var investments []*models.Investment
	if err := json.NewDecoder(r.Body).Decode(&investments); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.portfolioService.UpdateInvestments(userID, investments); err != nil {
		writeServiceError(w, err)
		return
	}
	// New rows come back with their assigned ids.
	utils.SendJSON(w, investments, http.StatusOK)
}

func (h *AccountHandler) HandleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	investmentID, err := pathID(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.portfolioService.DeleteInvestment(userID, investmentID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
