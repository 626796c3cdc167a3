// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// candidateIDKey is the context key for the authenticated candidate ID.
const candidateIDKey ContextKey = "candidateID"

// TokenValidator validates bearer tokens issued by the external auth
// service. Token issuance lives outside this API.
type TokenValidator interface {
	ValidateToken(tokenString string) (CandidateIDGetter, error)
}

// CandidateIDGetter extracts the candidate ID from validated token claims.
type CandidateIDGetter interface {
	GetCandidateID() uuid.UUID
}

// BearerToken extracts the bearer token from a request's Authorization
// header, or "" when absent or malformed.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth creates middleware that rejects requests without a valid
// bearer token and adds the candidate ID to the request context.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), candidateIDKey, claims.GetCandidateID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCandidateID extracts the authenticated candidate ID from the request
// context.
func GetCandidateID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(candidateIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("candidate ID not found in request context")
	}
	return id, nil
}

// WithCandidateID returns a context carrying the candidate ID (for tests).
func WithCandidateID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, candidateIDKey, id)
}
