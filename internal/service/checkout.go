package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"audio-marketplace/internal/apperr"
	"audio-marketplace/internal/client"
	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/model"
	"audio-marketplace/internal/repository"
)

// CheckoutService turns priced intents into hosted payment sessions and,
// after the buyer returns from the processor, performs fulfillment.
//
// Confirmation ordering contract: verify the session first, persist the
// purchase second, deliver email last. A persistence failure aborts before
// any email; a delivery failure after persistence leaves the purchase
// committed and reports the mail error. The processor session id is the
// deduplication key, so re-confirming a session never records a second sale
// or sends a second delivery.
type CheckoutService interface {
	InitiatePaidCheckout(ctx context.Context, req *dto.PaidCheckoutRequest) (*dto.CheckoutSessionResponse, error)
	InitiateCustomCheckout(ctx context.Context, req *dto.CustomCheckoutRequest) (*dto.CheckoutSessionResponse, error)
	ConfirmPaidPurchase(ctx context.Context, sessionID string) (*dto.PaidAudioFulfillment, error)
	ConfirmCustomPayment(ctx context.Context, sessionID string) error
}

type checkoutServiceImpl struct {
	stripeClient client.StripeClient
	paidRepo     repository.PaidAudioRepository
	purchaseRepo repository.PurchaseRepository
	requestRepo  repository.CustomRequestRepository
	notifier     NotificationService
	mediaBaseURL string
	logger       *zap.Logger
}

func NewCheckoutService(
	stripeClient client.StripeClient,
	paidRepo repository.PaidAudioRepository,
	purchaseRepo repository.PurchaseRepository,
	requestRepo repository.CustomRequestRepository,
	notifier NotificationService,
	mediaBaseURL string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		stripeClient: stripeClient,
		paidRepo:     paidRepo,
		purchaseRepo: purchaseRepo,
		requestRepo:  requestRepo,
		notifier:     notifier,
		mediaBaseURL: mediaBaseURL,
		logger:       logger,
	}
}

const maxProductDescriptionLen = 200

func (s *checkoutServiceImpl) InitiatePaidCheckout(ctx context.Context, req *dto.PaidCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	if req.Email == "" {
		return nil, apperr.Validation("email is required")
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		return nil, apperr.Validation("successUrl and cancelUrl are required")
	}

	audio, err := s.paidRepo.FindByID(ctx, req.AudioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("audio not found")
		}
		return nil, apperr.Database("failed to load audio", err)
	}

	description := audio.Description
	if len(description) > maxProductDescriptionLen {
		description = description[:maxProductDescriptionLen]
	}

	// Price comes from the catalog, never from the client. The session
	// metadata is the only record of the pending transaction.
	session, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		ProductName:        audio.Title,
		ProductDescription: description,
		AmountCents:        audio.PriceAmount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
		Currency:           "usd",
		CustomerEmail:      req.Email,
		SuccessURL:         req.SuccessURL,
		CancelURL:          req.CancelURL,
		Metadata: map[string]string{
			"audioId": strconv.FormatUint(uint64(audio.ID), 10),
			"email":   req.Email,
			"title":   audio.Title,
		},
	})
	if err != nil {
		return nil, apperr.Upstream("failed to create checkout session", err)
	}

	return &dto.CheckoutSessionResponse{URL: session.URL, ID: session.ID}, nil
}

func (s *checkoutServiceImpl) InitiateCustomCheckout(ctx context.Context, req *dto.CustomCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	if req.Email == "" {
		return nil, apperr.Validation("email is required")
	}
	if req.AudioRequest == "" {
		return nil, apperr.Validation("audio request description is required")
	}
	if req.Amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}
	if req.SuccessURL == "" || req.CancelURL == "" {
		return nil, apperr.Validation("successUrl and cancelUrl are required")
	}

	productName := req.ProductName
	if productName == "" {
		productName = "Custom Audio Request"
	}

	session, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		ProductName:   productName,
		AmountCents:   req.Amount,
		Currency:      "usd",
		CustomerEmail: req.Email,
		SuccessURL:    req.SuccessURL,
		CancelURL:     req.CancelURL,
		Metadata: map[string]string{
			"audioRequest": req.AudioRequest,
			"email":        req.Email,
		},
	})
	if err != nil {
		return nil, apperr.Upstream("failed to create payment session", err)
	}

	return &dto.CheckoutSessionResponse{URL: session.URL, ID: session.ID}, nil
}

func (s *checkoutServiceImpl) retrievePaidSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	if sessionID == "" {
		return nil, apperr.Validation("session id is required")
	}

	session, err := s.stripeClient.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, apperr.Upstream("stripe session retrieval failed", err)
	}
	if session.PaymentStatus != "paid" {
		return nil, apperr.Validation("payment not completed")
	}
	return session, nil
}

func (s *checkoutServiceImpl) ConfirmPaidPurchase(ctx context.Context, sessionID string) (*dto.PaidAudioFulfillment, error) {
	session, err := s.retrievePaidSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	audioID, err := strconv.ParseUint(session.Metadata["audioId"], 10, 64)
	if err != nil {
		return nil, apperr.Validation("session carries no audio reference")
	}

	audio, err := s.paidRepo.FindByID(ctx, uint(audioID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("audio not found")
		}
		return nil, apperr.Database("failed to load audio", err)
	}

	// The session's amount_total is authoritative; the client never
	// supplies an amount on this path.
	amount := decimal.NewFromInt(session.AmountTotal).Div(decimal.NewFromInt(100))
	email := session.PurchaserEmail()
	audioURL := audio.AudioFile.Resolve(s.mediaBaseURL)

	inserted, err := s.purchaseRepo.CreateIfAbsent(ctx, &model.PaidAudioPurchase{
		Email:     email,
		AudioID:   audio.ID,
		Amount:    amount,
		SessionID: session.ID,
		Date:      time.Now(),
	})
	if err != nil {
		return nil, apperr.Database("failed to record purchase", err)
	}

	if inserted {
		if err := s.paidRepo.RecordSale(ctx, audio.ID, amount); err != nil {
			s.logger.Error("purchase recorded but counters not updated",
				zap.Uint("audio_id", audio.ID),
				zap.String("session_id", session.ID),
				zap.Error(err))
			return nil, apperr.Database("failed to update sale counters", err)
		}

		if err := s.notifier.SendPurchaseDelivery(email, audio.Title, audio.Description, audioURL); err != nil {
			// Purchase stays committed; losing a paid order is worse
			// than a missed delivery.
			s.logger.Error("purchase recorded but delivery email failed",
				zap.String("email", email),
				zap.String("session_id", session.ID),
				zap.Error(err))
			return nil, apperr.Mail("email sending error", err)
		}

		s.logger.Info("paid audio fulfilled",
			zap.Uint("audio_id", audio.ID),
			zap.String("session_id", session.ID),
			zap.String("amount", amount.StringFixed(2)))
	} else {
		s.logger.Info("duplicate confirmation, purchase already fulfilled",
			zap.String("session_id", session.ID))
	}

	return &dto.PaidAudioFulfillment{
		ID:          audio.ID,
		Title:       audio.Title,
		Description: audio.Description,
		AudioURL:    audioURL,
		PriceAmount: audio.PriceAmount,
		Duration:    audio.Duration,
	}, nil
}

func (s *checkoutServiceImpl) ConfirmCustomPayment(ctx context.Context, sessionID string) error {
	session, err := s.retrievePaidSession(ctx, sessionID)
	if err != nil {
		return err
	}

	description := session.Metadata["audioRequest"]
	email := session.PurchaserEmail()
	if email == "" {
		email = session.Metadata["email"]
	}

	amount := decimal.NewFromInt(session.AmountTotal).Div(decimal.NewFromInt(100))
	sid := session.ID

	inserted, err := s.requestRepo.CreateIfAbsent(ctx, &model.CustomAudioRequest{
		Email:       email,
		Description: description,
		Status:      "pending",
		AmountPaid:  amount,
		SessionID:   &sid,
		RequestDate: time.Now(),
	})
	if err != nil {
		return apperr.Database("failed to record custom request", err)
	}

	if inserted {
		if err := s.notifier.SendAdminPaymentAlert(email, description, amount, sid); err != nil {
			s.logger.Error("custom request recorded but admin email failed",
				zap.String("session_id", sid),
				zap.Error(err))
			return apperr.Mail("email sending error", err)
		}

		s.logger.Info("custom audio request fulfilled",
			zap.String("session_id", sid),
			zap.String("amount", amount.StringFixed(2)))
	} else {
		s.logger.Info("duplicate confirmation, custom request already recorded",
			zap.String("session_id", sid))
	}

	return nil
}
