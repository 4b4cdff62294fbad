package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// requestOrigin reconstructs the caller's origin for default redirect URLs
// when the client supplies none.
func requestOrigin(c echo.Context) string {
	if origin := c.Request().Header.Get("Origin"); origin != "" {
		return origin
	}
	scheme := c.Scheme()
	if proto := c.Request().Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	host := c.Request().Host
	if fwd := c.Request().Header.Get("X-Forwarded-Host"); fwd != "" {
		host = fwd
	}
	return scheme + "://" + host
}

func (h *CheckoutHandler) CreatePaidSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.PaidCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	origin := requestOrigin(c)
	if req.SuccessURL == "" {
		req.SuccessURL = origin + "/success?session_id={CHECKOUT_SESSION_ID}"
	}
	if req.CancelURL == "" {
		req.CancelURL = origin + "/cancel"
	}

	result, err := h.checkoutService.InitiatePaidCheckout(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) ConfirmPaidPayment(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := c.QueryParam("session_id")
	result, err := h.checkoutService.ConfirmPaidPurchase(ctx, sessionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"audio": result,
	})
}

func (h *CheckoutHandler) CreateCustomSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CustomCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	origin := requestOrigin(c)
	if req.SuccessURL == "" {
		req.SuccessURL = origin + "/custome_audio_payment_success?session_id={CHECKOUT_SESSION_ID}&success=true"
	}
	if req.CancelURL == "" {
		req.CancelURL = origin + "/cancel"
	}

	result, err := h.checkoutService.InitiateCustomCheckout(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *CheckoutHandler) ConfirmCustomPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ConfirmCustomPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.checkoutService.ConfirmCustomPayment(ctx, req.SessionID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment confirmed and admin notified",
	})
}
