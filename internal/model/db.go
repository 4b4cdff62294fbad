package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CategoryName string `gorm:"size:128;uniqueIndex;not null" json:"categoryName"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SubCategory struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:128;not null" json:"name"`
	CategoryID uint   `gorm:"index;not null" json:"categoryId"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type FreeAudio struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Title         string   `gorm:"size:255;not null" json:"title"`
	Description   string   `gorm:"type:text;not null" json:"description"`
	Rating        float64  `gorm:"not null" json:"rating"`
	CategoryID    uint     `gorm:"index;not null" json:"categoryId"`
	SubCategoryID uint     `gorm:"index" json:"subCategoryId"`
	Language      string   `gorm:"size:64" json:"language"`
	Voice         string   `gorm:"size:64" json:"voice"`
	AudioFile     MediaRef `gorm:"size:512;not null" json:"audioFile"`
	// Duration is seconds, best-effort extracted at ingestion; 0 means
	// extraction failed.
	Duration  int `gorm:"not null;default:0" json:"duration"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PaidAudio struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Rating        float64         `gorm:"not null" json:"rating"`
	CategoryID    uint            `gorm:"index;not null" json:"categoryId"`
	SubCategoryID uint            `gorm:"index" json:"subCategoryId"`
	Language      string          `gorm:"size:64" json:"language"`
	Voice         string          `gorm:"size:64" json:"voice"`
	AudioFile     MediaRef        `gorm:"size:512;not null" json:"audioFile"`
	Duration      int             `gorm:"not null;default:0" json:"duration"`
	PriceAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"priceAmount"`
	Downloads     int64           `gorm:"not null;default:0" json:"downloads"`
	Revenue       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"revenue"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// PaidAudioPurchase is written exactly once per confirmed checkout session.
// SessionID carries the processor's session id and doubles as the
// deduplication key, so re-confirming the same session cannot record a
// second sale.
type PaidAudioPurchase struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Email     string          `gorm:"size:255;index;not null" json:"email"`
	AudioID   uint            `gorm:"index;not null" json:"audioId"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	SessionID string          `gorm:"size:128;uniqueIndex;not null" json:"sessionId"`
	Date      time.Time       `gorm:"index" json:"date"`
}

// CustomAudioRequest is written by two paths with different field sets:
// the direct request endpoint fills Budget/Deadline, the payment
// confirmation fills AmountPaid/SessionID. Both land in this table.
type CustomAudioRequest struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Email       string          `gorm:"size:255;index;not null" json:"email"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Budget      decimal.Decimal `gorm:"type:decimal(10,2)" json:"budget"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	Status      string          `gorm:"size:32;index;not null;default:pending" json:"status"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"amountPaid"`
	// SessionID is set only on records created by payment confirmation;
	// nullable so direct requests don't collide on the unique index.
	SessionID   *string         `gorm:"size:128;uniqueIndex" json:"sessionId,omitempty"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`
	RequestDate time.Time       `gorm:"index" json:"requestDate"`
}

type FreeAudioDownload struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Email   string    `gorm:"size:255;index;not null" json:"email"`
	AudioID uint      `gorm:"index;not null" json:"audioId"`
	Date    time.Time `gorm:"index" json:"date"`
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"size:128;not null" json:"firstName"`
	LastName     string `gorm:"size:128;not null" json:"lastName"`
	Username     string `gorm:"size:128;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"isAdmin"`
	ReferralCode string `gorm:"size:16;uniqueIndex;not null" json:"referralCode"`
	ReferredBy   *uint  `gorm:"index" json:"referredBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
