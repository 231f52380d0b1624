package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/herculesvale/vale-service/internal/auth"
)

type contextKey string

const distributorIDKey contextKey = "distributorID"

// Bearer verifies the Authorization header and injects the distributor id
// into the request context. Requests without a valid token get 401.
func Bearer(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				unauthorized(w)
				return
			}

			claims, err := tokens.Verify(strings.TrimSpace(tokenString))
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), distributorIDKey, claims.DistributorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DistributorID returns the authenticated distributor id, or "" when the
// request did not pass through Bearer.
func DistributorID(ctx context.Context) string {
	if id, ok := ctx.Value(distributorIDKey).(string); ok {
		return id
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
