package model

// Wire shapes for the Stripe Checkout REST API, trimmed to the fields the
// fulfillment flow reads.

type StripeCustomerDetails struct {
	Email string `json:"email"`
}

type CheckoutSession struct {
	ID              string                `json:"id"`
	URL             string                `json:"url"`
	PaymentStatus   string                `json:"payment_status"`
	Status          string                `json:"status"`
	AmountTotal     int64                 `json:"amount_total"`
	Currency        string                `json:"currency"`
	CustomerEmail   string                `json:"customer_email"`
	CustomerDetails StripeCustomerDetails `json:"customer_details"`
	Metadata        map[string]string     `json:"metadata"`
}

// PurchaserEmail prefers the email Stripe collected on the hosted page and
// falls back to the one the session was opened with.
func (s *CheckoutSession) PurchaserEmail() string {
	if s.CustomerDetails.Email != "" {
		return s.CustomerDetails.Email
	}
	return s.CustomerEmail
}

type StripeError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StripeErrorResponse struct {
	Error StripeError `json:"error"`
}
