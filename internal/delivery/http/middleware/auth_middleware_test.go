package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"basket/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService accepts exactly one access token.
type stubTokenService struct {
	validToken string
	claims     *service.Claims
}

func (s *stubTokenService) GenerateTokens(uuid.UUID, string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (s *stubTokenService) GenerateAccessToken(uuid.UUID, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	if tokenString == s.validToken {
		return s.claims, nil
	}

	return nil, errors.New("invalid or expired token")
}

func (s *stubTokenService) ValidateRefreshToken(string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

func (s *stubTokenService) HashToken(tokenString string) string { return tokenString }

func (s *stubTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

func runAuthenticated(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	claims := &service.Claims{UserID: uuid.New(), Email: "user@example.com"}
	mw := NewAuthMiddleware(&stubTokenService{validToken: "good-token", claims: claims})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw.Authenticate(func(c echo.Context) error {
		userID, ok := UserID(c)
		require.True(t, ok)
		require.Equal(t, claims.UserID, userID)

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec
}

func TestAuthenticate_AllowsValidBearerToken(t *testing.T) {
	rec := runAuthenticated(t, "Bearer good-token")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_RejectsMissingHeader(t *testing.T) {
	rec := runAuthenticated(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestAuthenticate_RejectsNonBearerScheme(t *testing.T) {
	rec := runAuthenticated(t, "Basic Zm9vOmJhcg==")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_RejectsUnknownToken(t *testing.T) {
	rec := runAuthenticated(t, "Bearer forged-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}
