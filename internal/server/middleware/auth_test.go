package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct{ id uuid.UUID }

func (s stubClaims) GetCandidateID() uuid.UUID { return s.id }

type stubValidator struct {
	id  uuid.UUID
	err error
}

func (s stubValidator) ValidateToken(string) (CandidateIDGetter, error) {
	if s.err != nil {
		return nil, s.err
	}
	return stubClaims{id: s.id}, nil
}

func TestRequireAuth_ValidToken(t *testing.T) {
	candidateID := uuid.New()
	var gotID uuid.UUID

	handler := RequireAuth(stubValidator{id: candidateID})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := GetCandidateID(r)
			require.NoError(t, err)
			gotID = id
		}))

	req := httptest.NewRequest("GET", "/candidates/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, candidateID, gotID)
}

func TestRequireAuth_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		validator stubValidator
	}{
		{"missing header", "", stubValidator{}},
		{"not bearer", "Basic abc123", stubValidator{}},
		{"empty token", "Bearer ", stubValidator{}},
		{"invalid token", "Bearer bad", stubValidator{err: fmt.Errorf("expired")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireAuth(tt.validator)(
				http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			req := httptest.NewRequest("GET", "/candidates/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestBearerToken_CaseInsensitivePrefix(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer tok123")
	assert.Equal(t, "tok123", BearerToken(req))
}

func TestGetCandidateID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, err := GetCandidateID(req)
	assert.Error(t, err)
}
