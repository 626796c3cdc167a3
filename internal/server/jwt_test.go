package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhil/job-portal/internal/config"
)

const testSecret = "test-secret-key"

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: testSecret})
}

func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken_Valid(t *testing.T) {
	svc := testJWTService()
	candidateID := uuid.New()

	signed := signToken(t, &Claims{
		CandidateID: candidateID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, candidateID, claims.CandidateID)
	assert.Equal(t, candidateID, claims.GetCandidateID())
}

func TestValidateToken_Empty(t *testing.T) {
	_, err := testJWTService().ValidateToken("")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	signed := signToken(t, &Claims{
		CandidateID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "some-other-secret")

	_, err := testJWTService().ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	signed := signToken(t, &Claims{
		CandidateID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)

	_, err := testJWTService().ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateToken_MissingCandidateID(t *testing.T) {
	signed := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	_, err := testJWTService().ValidateToken(signed)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "candidate ID")
}

func TestValidateToken_RejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		CandidateID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = testJWTService().ValidateToken(signed)
	assert.Error(t, err)
}

func TestAsTokenValidator(t *testing.T) {
	svc := testJWTService()
	candidateID := uuid.New()

	signed := signToken(t, &Claims{
		CandidateID: candidateID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	claims, err := svc.AsTokenValidator().ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, candidateID, claims.GetCandidateID())
}
