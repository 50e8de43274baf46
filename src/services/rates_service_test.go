package services

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/hogiahlang/src/logger"
	"github.com/username/hogiahlang/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func newRatesService(serverURL string) RatesService {
	return NewRatesService(serverURL, time.Minute, cache.New(time.Minute, 2*time.Minute))
}

func TestGetRates_FetchesAndCaches(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		assert.Equal(t, "/EUR", r.URL.Path)
		fmt.Fprint(w, `{"base":"EUR","rates":{"EUR":1.0,"USD":1.1,"JPY":160.0,"TWD":35.5}}`)
	}))
	defer server.Close()

	svc := newRatesService(server.URL)

	rates, err := svc.GetRates("EUR", models.CurrencyCodes())
	require.NoError(t, err)
	assert.True(t, rates["USD"].Equal(decimal.NewFromFloat(1.1)))
	assert.True(t, rates["EUR"].Equal(decimal.NewFromInt(1)))

	_, err = svc.GetRates("EUR", models.CurrencyCodes())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, requests, "second lookup should be served from the cache")
}

func TestRefresh_FiltersToRequestedTargets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base":"EUR","rates":{"EUR":1.0,"USD":1.1,"GBP":0.85}}`)
	}))
	defer server.Close()

	svc := newRatesService(server.URL)

	rates, err := svc.Refresh("EUR", []string{"EUR", "USD"})
	require.NoError(t, err)
	assert.Len(t, rates, 2)
	_, hasGBP := rates["GBP"]
	assert.False(t, hasGBP)
}

func TestRefresh_MissingTargetOmittedWithoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base":"EUR","rates":{"EUR":1.0,"USD":1.1}}`)
	}))
	defer server.Close()

	svc := newRatesService(server.URL)

	rates, err := svc.Refresh("EUR", []string{"EUR", "USD", "JPY"})
	require.NoError(t, err)
	_, hasJPY := rates["JPY"]
	assert.False(t, hasJPY)
	assert.Len(t, rates, 2)
}

func TestRefresh_NonPositiveRateOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base":"EUR","rates":{"EUR":1.0,"USD":0,"JPY":-3.0}}`)
	}))
	defer server.Close()

	svc := newRatesService(server.URL)

	rates, err := svc.Refresh("EUR", []string{"EUR", "USD", "JPY"})
	require.NoError(t, err)
	assert.Len(t, rates, 1)
	assert.True(t, rates["EUR"].Equal(decimal.NewFromInt(1)))
}

func TestRefresh_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newRatesService(server.URL)

	rates, err := svc.Refresh("EUR", []string{"EUR"})
	require.Error(t, err)
	assert.Nil(t, rates)

	var fetchErr *models.RateFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "EUR", fetchErr.Base)
}

func TestRefresh_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	svc := newRatesService(server.URL)

	_, err := svc.Refresh("EUR", []string{"EUR"})
	var fetchErr *models.RateFetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestRefresh_KeepsLastGoodRatesOnError(t *testing.T) {
	var mu sync.Mutex
	fail := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		shouldFail := fail
		mu.Unlock()
		if shouldFail {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"base":"EUR","rates":{"EUR":1.0,"USD":1.1}}`)
	}))
	defer server.Close()

	svc := newRatesService(server.URL)

	good, err := svc.Refresh("EUR", []string{"EUR", "USD"})
	require.NoError(t, err)

	mu.Lock()
	fail = true
	mu.Unlock()

	stale, err := svc.Refresh("EUR", []string{"EUR", "USD"})
	require.Error(t, err)
	assert.Equal(t, good, stale, "last good rates should survive a failed refresh")

	active, ok := svc.ActiveRates("EUR")
	require.True(t, ok)
	assert.Equal(t, good, active)
}

func TestRefresh_StaleResponseDiscarded(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		n := requests
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			fmt.Fprint(w, `{"base":"EUR","rates":{"USD":1.0}}`)
			return
		}
		fmt.Fprint(w, `{"base":"EUR","rates":{"USD":2.0}}`)
	}))
	defer server.Close()

	svc := newRatesService(server.URL)

	firstResult := make(chan models.RateMap, 1)
	go func() {
		rates, err := svc.Refresh("EUR", []string{"USD"})
		assert.NoError(t, err)
		firstResult <- rates
	}()

	<-firstStarted
	second, err := svc.Refresh("EUR", []string{"USD"})
	require.NoError(t, err)
	assert.True(t, second["USD"].Equal(decimal.NewFromInt(2)))

	close(releaseFirst)
	first := <-firstResult
	assert.True(t, first["USD"].Equal(decimal.NewFromInt(2)), "older request should yield the newer request's rates")

	active, ok := svc.ActiveRates("EUR")
	require.True(t, ok)
	assert.True(t, active["USD"].Equal(decimal.NewFromInt(2)))
}
