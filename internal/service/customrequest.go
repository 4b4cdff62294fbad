package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"audio-marketplace/internal/apperr"
	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/model"
	"audio-marketplace/internal/repository"
)

// CustomRequestService handles the direct (pre-payment) request path and
// the admin screens over custom audio requests. The paid path lives in
// CheckoutService.
type CustomRequestService interface {
	CreateRequest(ctx context.Context, req *dto.CreateCustomRequestRequest) (*model.CustomAudioRequest, error)
	UpdateRequest(ctx context.Context, id uint, req *dto.UpdateCustomRequestRequest) (*model.CustomAudioRequest, error)
	ListRequests(ctx context.Context, filter *repository.CustomRequestFilter) (*dto.CustomRequestListResponse, error)
}

type customRequestServiceImpl struct {
	requestRepo repository.CustomRequestRepository
	notifier    NotificationService
	logger      *zap.Logger
}

func NewCustomRequestService(
	requestRepo repository.CustomRequestRepository,
	notifier NotificationService,
	logger *zap.Logger,
) CustomRequestService {
	return &customRequestServiceImpl{
		requestRepo: requestRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *customRequestServiceImpl) CreateRequest(ctx context.Context, req *dto.CreateCustomRequestRequest) (*model.CustomAudioRequest, error) {
	if req.Email == "" || req.Description == "" || req.Deadline == nil || req.Budget.IsZero() {
		return nil, apperr.Validation("Email, description, budget, and deadline are required")
	}
	if !req.Deadline.After(time.Now()) {
		return nil, apperr.Validation("Deadline must be in the future")
	}

	request := &model.CustomAudioRequest{
		Email:       req.Email,
		Description: req.Description,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Status:      "pending",
		RequestDate: time.Now(),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, apperr.Database("failed to create custom audio request", err)
	}

	// Admin alert is best-effort here; a relay failure must not fail the
	// customer's request.
	s.notifier.NotifyAdminRequestAsync(req.Email, req.Description)

	return request, nil
}

func (s *customRequestServiceImpl) UpdateRequest(ctx context.Context, id uint, req *dto.UpdateCustomRequestRequest) (*model.CustomAudioRequest, error) {
	updates := map[string]interface{}{}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.AmountPaid != nil {
		updates["amount_paid"] = *req.AmountPaid
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("nothing to update")
	}

	request, err := s.requestRepo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Custom audio request not found")
		}
		return nil, apperr.Database("failed to update custom audio request", err)
	}

	return request, nil
}

func (s *customRequestServiceImpl) ListRequests(ctx context.Context, filter *repository.CustomRequestFilter) (*dto.CustomRequestListResponse, error) {
	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Database("failed to list custom audio requests", err)
	}

	revenue, err := s.requestRepo.SumAmountPaid(ctx, filter)
	if err != nil {
		return nil, apperr.Database("failed to sum custom audio revenue", err)
	}

	page, limit := 1, 0
	if filter != nil {
		if filter.Page > 0 {
			page = filter.Page
		}
		limit = filter.Limit
	}
	var totalPages int64 = 1
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}

	return &dto.CustomRequestListResponse{
		Success:       true,
		Data:          requests,
		TotalPages:    totalPages,
		CurrentPage:   page,
		TotalRequests: total,
		TotalRevenue:  revenue,
	}, nil
}
