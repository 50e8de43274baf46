package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/hogiahlang/src/logger"
	"github.com/username/hogiahlang/src/models"
	"github.com/username/hogiahlang/src/services"
	"github.com/username/hogiahlang/src/utils"
)

type contextKey string

const userIDContextKey = contextKey("userID")

// AuthMiddleware checks the static API token and resolves the acting user.
// The user defaults to defaultUserID and can be overridden with the `user`
// query parameter.
func AuthMiddleware(apiToken string, defaultUserID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.L.Debug("AuthMiddleware: Authorization header missing", "path", r.URL.Path)
				utils.SendJSONError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := authHeader
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}

			if subtle.ConstantTimeCompare([]byte(tokenString), []byte(apiToken)) != 1 {
				logger.L.Warn("AuthMiddleware: Invalid API token", "path", r.URL.Path)
				utils.SendJSONError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			userID := defaultUserID
			if userParam := r.URL.Query().Get("user"); userParam != "" {
				parsed, err := strconv.ParseInt(userParam, 10, 64)
				if err != nil || parsed <= 0 {
					utils.SendJSONError(w, "Invalid user parameter", http.StatusBadRequest)
					return
				}
				userID = parsed
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the userID from the context.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var fetchErr *models.RateFetchError
	switch {
	case models.IsValidation(err):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrAccountNotFound):
		utils.SendJSONError(w, "account not found", http.StatusNotFound)
	case errors.As(err, &fetchErr):
		utils.SendJSONError(w, err.Error(), http.StatusBadGateway)
	default:
		utils.SendJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

// pathID parses the `id` path segment of a route.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return id, nil
}
