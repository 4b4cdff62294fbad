package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"audio-marketplace/internal/model"
)

// ---- checkout ----

type PaidCheckoutRequest struct {
	AudioID    uint   `json:"audioId"`
	Email      string `json:"email"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

type CustomCheckoutRequest struct {
	AudioRequest string `json:"audioRequest"`
	Email        string `json:"email"`
	// Amount is in minor units (cents), as the processor expects.
	Amount      int64  `json:"amount"`
	ProductName string `json:"productName"`
	SuccessURL  string `json:"successUrl"`
	CancelURL   string `json:"cancelUrl"`
}

type CheckoutSessionResponse struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

type ConfirmCustomPaymentRequest struct {
	SessionID string `json:"sessionId"`
}

// PaidAudioFulfillment is the public-facing slice of the fulfilled item
// returned after a confirmed purchase.
type PaidAudioFulfillment struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	AudioURL    string          `json:"audioUrl"`
	PriceAmount decimal.Decimal `json:"priceAmount"`
	Duration    int             `json:"duration"`
}

// ---- catalog ----

type FreeAudioView struct {
	*model.FreeAudio
	AudioURL string `json:"audioUrl"`
}

type PaidAudioView struct {
	*model.PaidAudio
	AudioURL string `json:"audioUrl"`
}

type PaidAudioListResponse struct {
	Success        bool             `json:"success"`
	Data           []*PaidAudioView `json:"data"`
	Count          int              `json:"count"`
	TotalRevenue   decimal.Decimal  `json:"totalRevenue"`
	TotalDownloads int64            `json:"totalDownloads"`
}

type SendFreeAudioRequest struct {
	AudioID uint   `json:"audioId"`
	Email   string `json:"email"`
}

// ---- custom audio ----

type CreateCustomRequestRequest struct {
	Email       string          `json:"email"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
	Deadline    *time.Time      `json:"deadline"`
}

type UpdateCustomRequestRequest struct {
	Status     string           `json:"status"`
	AmountPaid *decimal.Decimal `json:"amountPaid"`
	Notes      string           `json:"notes"`
}

type CustomRequestListResponse struct {
	Success       bool                        `json:"success"`
	Data          []*model.CustomAudioRequest `json:"data"`
	TotalPages    int64                       `json:"totalPages"`
	CurrentPage   int                         `json:"currentPage"`
	TotalRequests int64                       `json:"totalRequests"`
	TotalRevenue  decimal.Decimal             `json:"totalRevenue"`
}

// ---- auth ----

type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ReferredByCode  string `json:"referredByCode"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type UserResponse struct {
	ID           uint      `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsAdmin      bool      `json:"isAdmin"`
	ReferralCode string    `json:"referralCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserWithReferrer struct {
	UserResponse
	ReferredBy string `json:"referredBy,omitempty"`
}

// ---- reports ----

type PurchaseReportEntry struct {
	Email      string          `json:"email"`
	AudioID    uint            `json:"audioId"`
	AudioTitle string          `json:"audioTitle"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

type DownloadReportEntry struct {
	Email      string    `json:"email"`
	AudioID    uint      `json:"audioId"`
	AudioTitle string    `json:"audioTitle"`
	Date       time.Time `json:"date"`
}
