package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-marketplace/internal/dto"
)

// stubCheckoutService is a stub implementation of service.CheckoutService
type stubCheckoutService struct {
	paidReq     *dto.PaidCheckoutRequest
	customReq   *dto.CustomCheckoutRequest
	session     *dto.CheckoutSessionResponse
	fulfillment *dto.PaidAudioFulfillment
	confirmed   []string
	err         error
}

func (s *stubCheckoutService) InitiatePaidCheckout(ctx context.Context, req *dto.PaidCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	s.paidReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubCheckoutService) InitiateCustomCheckout(ctx context.Context, req *dto.CustomCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	s.customReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubCheckoutService) ConfirmPaidPurchase(ctx context.Context, sessionID string) (*dto.PaidAudioFulfillment, error) {
	s.confirmed = append(s.confirmed, sessionID)
	if s.err != nil {
		return nil, s.err
	}
	return s.fulfillment, nil
}

func (s *stubCheckoutService) ConfirmCustomPayment(ctx context.Context, sessionID string) error {
	s.confirmed = append(s.confirmed, sessionID)
	return s.err
}

func newEchoContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreatePaidSession(t *testing.T) {
	t.Run("defaults redirect urls from the request origin", func(t *testing.T) {
		stub := &stubCheckoutService{session: &dto.CheckoutSessionResponse{ID: "cs_1", URL: "https://pay.example.com/cs_1"}}
		h := NewCheckoutHandler(stub)

		c, rec := newEchoContext(http.MethodPost, "/api/paid-audio/create-checkout-session",
			`{"audioId": 7, "email": "buyer@example.com"}`)
		c.Request().Header.Set("Origin", "https://shop.example.com")

		require.NoError(t, h.CreatePaidSession(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		require.NotNil(t, stub.paidReq)
		assert.Equal(t, uint(7), stub.paidReq.AudioID)
		assert.Equal(t, "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}", stub.paidReq.SuccessURL)
		assert.Equal(t, "https://shop.example.com/cancel", stub.paidReq.CancelURL)

		assert.Contains(t, rec.Body.String(), "https://pay.example.com/cs_1")
	})

	t.Run("keeps client-supplied redirect urls", func(t *testing.T) {
		stub := &stubCheckoutService{session: &dto.CheckoutSessionResponse{ID: "cs_1"}}
		h := NewCheckoutHandler(stub)

		c, _ := newEchoContext(http.MethodPost, "/api/paid-audio/create-checkout-session",
			`{"audioId": 7, "email": "buyer@example.com", "successUrl": "https://other.example.com/done", "cancelUrl": "https://other.example.com/nope"}`)

		require.NoError(t, h.CreatePaidSession(c))
		assert.Equal(t, "https://other.example.com/done", stub.paidReq.SuccessURL)
	})
}

func TestConfirmPaidPayment(t *testing.T) {
	stub := &stubCheckoutService{fulfillment: &dto.PaidAudioFulfillment{ID: 7, Title: "Rainforest Ambience"}}
	h := NewCheckoutHandler(stub)

	c, rec := newEchoContext(http.MethodGet, "/api/paid-audio/confirm-payment?session_id=cs_42", "")

	require.NoError(t, h.ConfirmPaidPayment(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cs_42"}, stub.confirmed)
	assert.Contains(t, rec.Body.String(), `"audio"`)
	assert.Contains(t, rec.Body.String(), "Rainforest Ambience")
}

func TestConfirmCustomPayment(t *testing.T) {
	stub := &stubCheckoutService{}
	h := NewCheckoutHandler(stub)

	c, rec := newEchoContext(http.MethodPost, "/api/custom-audio/confirm-payment",
		`{"sessionId": "cs_c9"}`)

	require.NoError(t, h.ConfirmCustomPayment(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cs_c9"}, stub.confirmed)
	assert.Contains(t, rec.Body.String(), "Payment confirmed and admin notified")
}

func TestCreateCustomSession(t *testing.T) {
	stub := &stubCheckoutService{session: &dto.CheckoutSessionResponse{ID: "cs_c1", URL: "https://pay.example.com/cs_c1"}}
	h := NewCheckoutHandler(stub)

	c, rec := newEchoContext(http.MethodPost, "/api/custom-audio/create-checkout-session",
		`{"audioRequest": "jingle", "email": "client@example.com", "amount": 12500}`)
	c.Request().Header.Set("Origin", "https://shop.example.com")

	require.NoError(t, h.CreateCustomSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, stub.customReq)
	assert.Equal(t, int64(12500), stub.customReq.Amount)
	assert.Equal(t,
		"https://shop.example.com/custome_audio_payment_success?session_id={CHECKOUT_SESSION_ID}&success=true",
		stub.customReq.SuccessURL)
}
