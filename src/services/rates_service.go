package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/net/publicsuffix"

	"github.com/username/hogiahlang/src/logger"
	"github.com/username/hogiahlang/src/models"
)

// ratesAPIResponse mirrors the provider's JSON payload.
type ratesAPIResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// ratesServiceImpl implements the RatesService interface against an
// exchangerate-api style HTTP provider.
type ratesServiceImpl struct {
	httpClient http.Client
	baseURL    string
	cacheTTL   time.Duration
	rateCache  *cache.Cache

	mu     sync.Mutex
	seq    uint64
	active map[string]models.RateMap
}

// NewRatesService creates a new instance of the rates service.
func NewRatesService(baseURL string, cacheTTL time.Duration, rateCache *cache.Cache) RatesService {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}

	client := http.Client{
		Jar:     jar,
		Timeout: 20 * time.Second,
	}

	return &ratesServiceImpl{
		httpClient: client,
		baseURL:    baseURL,
		cacheTTL:   cacheTTL,
		rateCache:  rateCache,
		active:     make(map[string]models.RateMap),
	}
}

func rateCacheKey(base string) string {
	return fmt.Sprintf("rates_%s", base)
}

// GetRates serves the rate map for base from the cache, falling back to a
// fresh provider fetch on a miss.
func (s *ratesServiceImpl) GetRates(base string, targets []string) (models.RateMap, error) {
	if cached, found := s.rateCache.Get(rateCacheKey(base)); found {
		if rates, ok := cached.(models.RateMap); ok {
			return rates, nil
		}
	}
	return s.Refresh(base, targets)
}

// Refresh fetches rates for base from the provider. Each call takes a
// sequence number; a response arriving after a newer request has already
// started is discarded in favour of the newer request's outcome.
func (s *ratesServiceImpl) Refresh(base string, targets []string) (models.RateMap, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	rates, err := s.fetchRates(base, targets)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		logger.L.Error("Failed to fetch exchange rates", "base", base, "error", err)
		if last, ok := s.active[base]; ok {
			// Keep serving the last good map alongside the error.
			return last, &models.RateFetchError{Base: base, Err: err}
		}
		return nil, &models.RateFetchError{Base: base, Err: err}
	}

	if seq != s.seq {
		logger.L.Debug("Discarding stale exchange rate response", "base", base, "seq", seq, "latest", s.seq)
		if last, ok := s.active[base]; ok {
			return last, nil
		}
		return rates, nil
	}

	s.active[base] = rates
	s.rateCache.Set(rateCacheKey(base), rates, s.cacheTTL)
	return rates, nil
}

// ActiveRates returns the last successfully applied map for base.
func (s *ratesServiceImpl) ActiveRates(base string) (models.RateMap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rates, ok := s.active[base]
	return rates, ok
}

func (s *ratesServiceImpl) fetchRates(base string, targets []string) (models.RateMap, error) {
	url := fmt.Sprintf("%s/%s", s.baseURL, base)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request rates for %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates provider returned status %d for %s", resp.StatusCode, base)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates response body: %w", err)
	}

	var payload ratesAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates response for %s contained no rates", base)
	}

	rateMap := make(models.RateMap, len(targets))
	for _, target := range targets {
		raw, ok := payload.Rates[target]
		if !ok {
			logger.L.Warn("Rate missing from provider response", "base", base, "currency", target)
			continue
		}
		if raw <= 0 {
			logger.L.Warn("Ignoring non-positive rate from provider", "base", base, "currency", target, "rate", raw)
			continue
		}
		rateMap[target] = decimal.NewFromFloat(raw)
	}
	return rateMap, nil
}
