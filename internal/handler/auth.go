package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"audio-marketplace/internal/config"
	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/middleware"
	"audio-marketplace/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	authCfg     *config.Auth
}

func NewAuthHandler(authService service.AuthService, authCfg *config.Auth) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		authCfg:     authCfg,
	}
}

func (h *AuthHandler) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.authCfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   h.authCfg.TokenTTLDays * 24 * 60 * 60,
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.authService.Register(ctx, &req)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, token)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.authService.Login(ctx, &req)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, token)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged in successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.authCfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHandler) Verify(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(middleware.TokenCookie)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.authService.VerifyToken(ctx, cookie.Value)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "success",
		"user":   user,
	})
}

func (h *AuthHandler) GetAllUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.authService.ListUsers(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.authService.ChangePassword(ctx, user.ID, &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password changed successfully",
	})
}
