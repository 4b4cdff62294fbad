package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"audio-marketplace/internal/config"
	"audio-marketplace/internal/model"
)

// StripeClient opens and retrieves hosted checkout sessions. The session is
// the only place pending transaction context lives; there is no local
// pending-order table, so RetrieveSession is the sole source of truth for
// whether a purchase was paid and for how much.
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*model.CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error)
}

type CheckoutSessionParams struct {
	ProductName        string
	ProductDescription string
	AmountCents        int64
	Currency           string
	CustomerEmail      string
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
}

type stripeClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: stripeCfg.BaseApiURL,
		secretKey:  stripeCfg.SecretKey,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*model.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	if params.ProductDescription != "" {
		form.Set("line_items[0][price_data][product_data][description]", params.ProductDescription)
	}
	form.Set("customer_email", params.CustomerEmail)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeStripeError(resp)
	}

	var session model.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}

	return &session, nil
}

func (c *stripeClientImpl) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/checkout/sessions/%s", c.baseApiURL, url.PathEscape(sessionID)),
		nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeStripeError(resp)
	}

	var session model.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}

	return &session, nil
}

func decodeStripeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp model.StripeErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return fmt.Errorf("stripe error %d (%s): %s",
			resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
	}
	return fmt.Errorf("stripe error %d: %s", resp.StatusCode, string(body))
}
