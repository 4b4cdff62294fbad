package service

import (
	"context"

	"audio-marketplace/internal/apperr"
	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/model"
	"audio-marketplace/internal/repository"
)

// ReportService backs the admin report screens: who downloaded what for
// free, who bought what, and the custom-request ledger.
type ReportService interface {
	FreeAudioReports(ctx context.Context) ([]*dto.DownloadReportEntry, error)
	PaidAudioReports(ctx context.Context) ([]*dto.PurchaseReportEntry, error)
	CustomAudioReports(ctx context.Context) ([]*model.CustomAudioRequest, error)
}

type reportServiceImpl struct {
	downloadRepo repository.DownloadRepository
	purchaseRepo repository.PurchaseRepository
	requestRepo  repository.CustomRequestRepository
	freeRepo     repository.FreeAudioRepository
	paidRepo     repository.PaidAudioRepository
}

func NewReportService(
	downloadRepo repository.DownloadRepository,
	purchaseRepo repository.PurchaseRepository,
	requestRepo repository.CustomRequestRepository,
	freeRepo repository.FreeAudioRepository,
	paidRepo repository.PaidAudioRepository,
) ReportService {
	return &reportServiceImpl{
		downloadRepo: downloadRepo,
		purchaseRepo: purchaseRepo,
		requestRepo:  requestRepo,
		freeRepo:     freeRepo,
		paidRepo:     paidRepo,
	}
}

func (s *reportServiceImpl) FreeAudioReports(ctx context.Context) ([]*dto.DownloadReportEntry, error) {
	downloads, err := s.downloadRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to load download reports", err)
	}

	audios, err := s.freeRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to load audios", err)
	}
	titles := make(map[uint]string, len(audios))
	for _, audio := range audios {
		titles[audio.ID] = audio.Title
	}

	entries := make([]*dto.DownloadReportEntry, len(downloads))
	for i, d := range downloads {
		entries[i] = &dto.DownloadReportEntry{
			Email:      d.Email,
			AudioID:    d.AudioID,
			AudioTitle: titles[d.AudioID],
			Date:       d.Date,
		}
	}
	return entries, nil
}

func (s *reportServiceImpl) PaidAudioReports(ctx context.Context) ([]*dto.PurchaseReportEntry, error) {
	purchases, err := s.purchaseRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to load purchase reports", err)
	}

	audios, err := s.paidRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to load audios", err)
	}
	titles := make(map[uint]string, len(audios))
	for _, audio := range audios {
		titles[audio.ID] = audio.Title
	}

	entries := make([]*dto.PurchaseReportEntry, len(purchases))
	for i, p := range purchases {
		entries[i] = &dto.PurchaseReportEntry{
			Email:      p.Email,
			AudioID:    p.AudioID,
			AudioTitle: titles[p.AudioID],
			Amount:     p.Amount,
			Date:       p.Date,
		}
	}
	return entries, nil
}

func (s *reportServiceImpl) CustomAudioReports(ctx context.Context) ([]*model.CustomAudioRequest, error) {
	requests, err := s.requestRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to load custom audio reports", err)
	}
	return requests, nil
}
