package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/username/hogiahlang/src/config"
	"github.com/username/hogiahlang/src/database"
	"github.com/username/hogiahlang/src/handlers"
	"github.com/username/hogiahlang/src/logger"
	"github.com/username/hogiahlang/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin == config.Cfg.AllowedOrigin {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("HoGiahLang backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing caches...")
	reportCache := cache.New(15*time.Minute, 30*time.Minute)
	rateCache := cache.New(config.Cfg.RatesCacheTTL, 2*config.Cfg.RatesCacheTTL)

	logger.L.Info("Initializing services and handlers...")
	ratesService := services.NewRatesService(config.Cfg.RatesAPIBaseURL, config.Cfg.RatesCacheTTL, rateCache)
	portfolioService := services.NewPortfolioService(database.DB, reportCache)
	categoryService := services.NewCategoryService(database.DB)
	statisticsService := services.NewStatisticsService(database.DB)

	accountHandler := handlers.NewAccountHandler(portfolioService, ratesService, config.Cfg.DefaultReportingCurrency)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	ratesHandler := handlers.NewRatesHandler(ratesService, config.Cfg.DefaultReportingCurrency)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, ratesService, config.Cfg.DefaultReportingCurrency)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	auth := handlers.AuthMiddleware(config.Cfg.APIToken, config.Cfg.DefaultUserID)
	protected := func(handler http.HandlerFunc) http.Handler {
		return auth(handler)
	}

	apiRouter.Handle("GET /api/accounts", protected(accountHandler.HandleGetAccounts))
	apiRouter.Handle("POST /api/accounts", protected(accountHandler.HandleAddAccount))
	apiRouter.Handle("DELETE /api/accounts/{id}", protected(accountHandler.HandleDeleteAccount))
	apiRouter.Handle("PUT /api/accounts/{id}/cash", protected(accountHandler.HandleUpdateCash))
	apiRouter.Handle("GET /api/accounts/{id}/total", protected(accountHandler.HandleGetAccountTotal))
	apiRouter.Handle("PUT /api/investments", protected(accountHandler.HandleUpdateInvestments))
	apiRouter.Handle("DELETE /api/investments/{id}", protected(accountHandler.HandleDeleteInvestment))

	apiRouter.Handle("GET /api/categories", protected(categoryHandler.HandleGetCategories))
	apiRouter.Handle("POST /api/categories", protected(categoryHandler.HandleAddCategory))

	apiRouter.Handle("GET /api/currencies", protected(ratesHandler.HandleGetCurrencies))
	apiRouter.Handle("GET /api/rates", protected(ratesHandler.HandleGetRates))

	apiRouter.Handle("GET /api/portfolio/breakdown", protected(portfolioHandler.HandleGetBreakdown))

	apiRouter.Handle("POST /api/statistics", protected(statisticsHandler.HandleSaveStatistics))
	apiRouter.Handle("GET /api/statistics", protected(statisticsHandler.HandleGetLatestStatistics))
	apiRouter.Handle("GET /api/statistics/export", protected(statisticsHandler.HandleExportStatistics))

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "HoGiahLang Backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
