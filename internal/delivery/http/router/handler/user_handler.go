// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"basket/config"
	"basket/internal/delivery/http/middleware"
	"basket/internal/delivery/http/response"
	"basket/internal/domain/entity"
	"basket/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// refreshTokenCookie is the cookie carrying the raw refresh token. Clients
// never see it from JavaScript.
const refreshTokenCookie = "refreshToken"

// UserHandler holds dependencies for account and session handlers.
type UserHandler struct {
	uc  usecase.UserUsecase
	cfg *config.Config
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, cfg *config.Config) *UserHandler {
	return &UserHandler{
		uc:  uc,
		cfg: cfg,
	}
}

// userPayload is the client-facing shape of an account. The password hash
// never leaves the server.
type userPayload struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserPayload(user *entity.User) *userPayload {
	if user == nil {
		return nil
	}

	return &userPayload{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// Signup handles the account registration request.
func (h *UserHandler) Signup(c echo.Context) error {
	var input *usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserPayload(output.User), "User registered successfully")
}

// CheckUsername reports whether a username is already in use.
func (h *UserHandler) CheckUsername(c echo.Context) error {
	var input struct {
		Username string `json:"username" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid username input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	exists, err := h.uc.UsernameExists(c.Request().Context(), input.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"exists": exists}, "")
}

// CheckEmail reports whether an email is already registered.
func (h *UserHandler) CheckEmail(c echo.Context) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	exists, err := h.uc.EmailExists(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"exists": exists}, "")
}

// Signin handles the login request. The access token travels in the JSON
// body; the refresh token only ever travels as an httpOnly cookie.
func (h *UserHandler) Signin(c echo.Context) error {
	var input *usecase.SigninInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signin input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signin(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	return response.Success(c, http.StatusOK, map[string]any{
		"accessToken": output.AccessToken,
		"user":        toUserPayload(output.User),
	}, "Signin successful")
}

// RefreshToken mints a new access token from the refresh token cookie.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	cookie, err := c.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return unauthenticated(c)
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), &usecase.RefreshTokenInput{
		RefreshToken: cookie.Value,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"accessToken": output.AccessToken,
	}, "Token refreshed successfully")
}

// Logout ends the session named by the refresh token cookie and clears it.
// Logout always succeeds from the client's point of view.
func (h *UserHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
		if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{
			RefreshToken: cookie.Value,
		}); err != nil {
			return errors.WithStack(err)
		}
	}

	h.clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// GetProfile returns the authenticated account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthenticated(c)
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserPayload(user), "")
}

func (h *UserHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(h.refreshCookie(token, int(h.cfg.Auth.RefreshTokenTTL.Seconds())))
}

func (h *UserHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(h.refreshCookie("", -1))
}

func (h *UserHandler) refreshCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if h.cfg.IsProduction() {
		sameSite = http.SameSiteStrictMode
	}

	return &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: sameSite,
	}
}
