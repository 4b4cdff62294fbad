package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/service"
)

const (
	TokenCookie    = "token"
	userContextKey = "user"
)

// Authenticate resolves the signed cookie into the current user and stores
// it on the request context. Requests without a valid credential are
// rejected.
func Authenticate(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			user, err := authService.VerifyToken(c.Request().Context(), cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin gates admin-only routes. Must run after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *dto.UserResponse {
	user, _ := c.Get(userContextKey).(*dto.UserResponse)
	return user
}
