// Package server provides the HTTP REST API for the job portal.
package server

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nikhil/job-portal/internal/config"
	"github.com/nikhil/job-portal/internal/server/middleware"
)

// Claims represents JWT claims carrying the candidate identity. Tokens are
// issued by the external auth service; this API only validates them.
type Claims struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	jwt.RegisteredClaims
}

// GetCandidateID implements middleware.CandidateIDGetter.
func (c *Claims) GetCandidateID() uuid.UUID {
	return c.CandidateID
}

// JWTService validates bearer tokens.
type JWTService struct {
	config *config.JWTConfig
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	if claims.CandidateID == uuid.Nil {
		return nil, fmt.Errorf("token has no candidate ID")
	}

	return claims, nil
}

// AsTokenValidator returns a middleware.TokenValidator adapter, avoiding an
// import cycle between server and middleware.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return &jwtServiceValidator{service: s}
}

type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.CandidateIDGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
