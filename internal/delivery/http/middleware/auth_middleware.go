package middleware

import (
	"strings"

	"basket/internal/delivery/http/response"
	domainerrors "basket/internal/domain/errors"
	"basket/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Echo context keys set by Authenticate.
const (
	ContextKeyUserID = "userID"
	ContextKeyEmail  = "email"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the context. Every failure maps to the same generic 401 so the
// response never reveals which check tripped.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return m.unauthenticated(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return m.unauthenticated(c)
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return m.unauthenticated(c)
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)

		return next(c)
	}
}

func (m *AuthMiddleware) unauthenticated(c echo.Context) error {
	appErr := domainerrors.ErrUnauthenticated

	return response.Unauthorized(c, appErr.ErrorCode(), appErr.Message())
}

// UserID extracts the authenticated user's ID set by Authenticate.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return id, ok
}
