package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"basket/config"
	"basket/internal/delivery/http/validator"
	"basket/internal/domain/entity"
	"basket/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserUsecase returns canned results for the handler tests.
type stubUserUsecase struct {
	signinOutput *usecase.SigninOutput
	refreshed    string
	loggedOut    []string
}

func (s *stubUserUsecase) Signup(context.Context, *usecase.SignupInput) (*usecase.SignupOutput, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserUsecase) Signin(context.Context, *usecase.SigninInput) (*usecase.SigninOutput, error) {
	return s.signinOutput, nil
}

func (s *stubUserUsecase) RefreshToken(_ context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	s.refreshed = input.RefreshToken

	return &usecase.RefreshTokenOutput{AccessToken: "new-access-token"}, nil
}

func (s *stubUserUsecase) Logout(_ context.Context, input *usecase.LogoutInput) error {
	s.loggedOut = append(s.loggedOut, input.RefreshToken)

	return nil
}

func (s *stubUserUsecase) GetProfile(context.Context, uuid.UUID) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserUsecase) EmailExists(context.Context, string) (bool, error) { return false, nil }

func (s *stubUserUsecase) UsernameExists(context.Context, string) (bool, error) { return false, nil }

func testHandlerConfig(env string) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.Env.Env = env

	return cfg
}

func newSigninContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	body := `{"email":"alice@example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/signin", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func signinStub() *stubUserUsecase {
	return &stubUserUsecase{
		signinOutput: &usecase.SigninOutput{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			User:         &entity.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"},
		},
	}
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)

	return nil
}

func TestSignin_SetsHTTPOnlyRefreshCookie(t *testing.T) {
	h := NewUserHandler(signinStub(), testHandlerConfig("local"))
	c, rec := newSigninContext(t)

	require.NoError(t, h.Signin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := findCookie(t, rec, "refreshToken")
	assert.Equal(t, "refresh-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "no Secure flag outside production")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)

	// The refresh token must not leak into the JSON body.
	assert.NotContains(t, rec.Body.String(), `"refresh-token"`)
	assert.Contains(t, rec.Body.String(), "access-token")
}

func TestSignin_ProductionCookieIsSecureAndStrict(t *testing.T) {
	h := NewUserHandler(signinStub(), testHandlerConfig("production"))
	c, rec := newSigninContext(t)

	require.NoError(t, h.Signin(c))

	cookie := findCookie(t, rec, "refreshToken")
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestRefreshToken_ReadsCookieOnly(t *testing.T) {
	stub := signinStub()
	h := NewUserHandler(stub, testHandlerConfig("local"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-token"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.RefreshToken(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refresh-token", stub.refreshed)
	assert.Contains(t, rec.Body.String(), "new-access-token")
}

func TestRefreshToken_MissingCookieIs401(t *testing.T) {
	h := NewUserHandler(signinStub(), testHandlerConfig("local"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/refresh-token", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.RefreshToken(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestLogout_EndsSessionAndClearsCookie(t *testing.T) {
	stub := signinStub()
	h := NewUserHandler(stub, testHandlerConfig("local"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-token"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"refresh-token"}, stub.loggedOut)

	cookie := findCookie(t, rec, "refreshToken")
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge, "cookie must be expired")
}
