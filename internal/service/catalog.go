package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"audio-marketplace/internal/apperr"
	"audio-marketplace/internal/client"
	"audio-marketplace/internal/dto"
	"audio-marketplace/internal/media"
	"audio-marketplace/internal/model"
	"audio-marketplace/internal/repository"
)

// Upload is a raw audio file received at the boundary.
type Upload struct {
	Data         []byte
	MimeType     string
	OriginalName string
}

type AudioInput struct {
	Title         string
	Description   string
	Rating        float64
	CategoryID    uint
	SubCategoryID uint
	Language      string
	Voice         string
	// PriceAmount applies to paid audio only.
	PriceAmount decimal.Decimal
}

// CatalogService manages the free/paid audio catalog. Creating or replacing
// an item's media goes through ingestion: MIME allow-list check, best-effort
// duration extraction, object-store upload. A failed upload means no catalog
// record is written.
type CatalogService interface {
	CreateFreeAudio(ctx context.Context, input *AudioInput, upload *Upload) (*dto.FreeAudioView, error)
	ListFreeAudios(ctx context.Context) ([]*dto.FreeAudioView, error)
	UpdateFreeAudio(ctx context.Context, id uint, updates map[string]interface{}, upload *Upload) (*dto.FreeAudioView, error)
	DeleteFreeAudio(ctx context.Context, id uint) (*model.FreeAudio, error)
	SendFreeAudio(ctx context.Context, audioID uint, email string) error

	CreatePaidAudio(ctx context.Context, input *AudioInput, upload *Upload) (*dto.PaidAudioView, error)
	ListPaidAudios(ctx context.Context) (*dto.PaidAudioListResponse, error)
	UpdatePaidAudio(ctx context.Context, id uint, updates map[string]interface{}, upload *Upload) (*dto.PaidAudioView, error)
	DeletePaidAudio(ctx context.Context, id uint) (*model.PaidAudio, error)
}

type catalogServiceImpl struct {
	storage      client.StorageClient
	freeRepo     repository.FreeAudioRepository
	paidRepo     repository.PaidAudioRepository
	downloadRepo repository.DownloadRepository
	notifier     NotificationService
	mediaBaseURL string
	logger       *zap.Logger
}

func NewCatalogService(
	storage client.StorageClient,
	freeRepo repository.FreeAudioRepository,
	paidRepo repository.PaidAudioRepository,
	downloadRepo repository.DownloadRepository,
	notifier NotificationService,
	mediaBaseURL string,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{
		storage:      storage,
		freeRepo:     freeRepo,
		paidRepo:     paidRepo,
		downloadRepo: downloadRepo,
		notifier:     notifier,
		mediaBaseURL: mediaBaseURL,
		logger:       logger,
	}
}

// ingest validates the upload, extracts duration and stores the binary.
// The MIME check runs before anything touches the network.
func (s *catalogServiceImpl) ingest(ctx context.Context, upload *Upload, folder string) (model.MediaRef, int, error) {
	if !media.MimeAllowed(upload.MimeType) {
		return "", 0, apperr.Validation("unsupported audio type: " + upload.MimeType)
	}

	duration := media.Duration(upload.Data, upload.MimeType)
	if duration == 0 {
		s.logger.Warn("duration extraction failed, defaulting to 0",
			zap.String("name", upload.OriginalName))
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), path.Ext(upload.OriginalName))
	url, err := s.storage.Upload(ctx, upload.Data, folder, name, upload.MimeType)
	if err != nil {
		return "", 0, apperr.Upstream("failed to upload audio", err)
	}

	return model.MediaRef(url), duration, nil
}

func validateAudioInput(input *AudioInput, paid bool) error {
	if input.Title == "" || input.Description == "" {
		return apperr.Validation("title and description are required")
	}
	if input.Rating < 0 || input.Rating > 5 {
		return apperr.Validation("rating must be between 0 and 5")
	}
	if input.CategoryID == 0 {
		return apperr.Validation("categoryId is required")
	}
	if input.Language == "" || input.Voice == "" {
		return apperr.Validation("language and voice are required")
	}
	if paid && input.PriceAmount.IsNegative() {
		return apperr.Validation("priceAmount must be greater than or equal to 0")
	}
	return nil
}

func (s *catalogServiceImpl) CreateFreeAudio(ctx context.Context, input *AudioInput, upload *Upload) (*dto.FreeAudioView, error) {
	if err := validateAudioInput(input, false); err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, apperr.Validation("audioFile is required")
	}

	ref, duration, err := s.ingest(ctx, upload, "audio/free")
	if err != nil {
		return nil, err
	}

	audio := &model.FreeAudio{
		Title:         input.Title,
		Description:   input.Description,
		Rating:        input.Rating,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		Language:      input.Language,
		Voice:         input.Voice,
		AudioFile:     ref,
		Duration:      duration,
	}
	if err := s.freeRepo.Create(ctx, audio); err != nil {
		return nil, apperr.Database("failed to store audio", err)
	}

	return s.freeView(audio), nil
}

func (s *catalogServiceImpl) freeView(audio *model.FreeAudio) *dto.FreeAudioView {
	return &dto.FreeAudioView{
		FreeAudio: audio,
		AudioURL:  audio.AudioFile.Resolve(s.mediaBaseURL),
	}
}

func (s *catalogServiceImpl) paidView(audio *model.PaidAudio) *dto.PaidAudioView {
	return &dto.PaidAudioView{
		PaidAudio: audio,
		AudioURL:  audio.AudioFile.Resolve(s.mediaBaseURL),
	}
}

func (s *catalogServiceImpl) ListFreeAudios(ctx context.Context) ([]*dto.FreeAudioView, error) {
	audios, err := s.freeRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to list audios", err)
	}

	views := make([]*dto.FreeAudioView, len(audios))
	for i, audio := range audios {
		views[i] = s.freeView(audio)
	}
	return views, nil
}

func (s *catalogServiceImpl) UpdateFreeAudio(ctx context.Context, id uint, updates map[string]interface{}, upload *Upload) (*dto.FreeAudioView, error) {
	if upload != nil {
		ref, duration, err := s.ingest(ctx, upload, "audio/free")
		if err != nil {
			return nil, err
		}
		updates["audio_file"] = ref
		updates["duration"] = duration
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("nothing to update")
	}

	audio, err := s.freeRepo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("audio not found")
		}
		return nil, apperr.Database("failed to update audio", err)
	}

	return s.freeView(audio), nil
}

func (s *catalogServiceImpl) DeleteFreeAudio(ctx context.Context, id uint) (*model.FreeAudio, error) {
	audio, err := s.freeRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("audio not found")
		}
		return nil, apperr.Database("failed to delete audio", err)
	}
	return audio, nil
}

// SendFreeAudio records the download and emails the asset link. The record
// is written before the send, matching the fulfillment ordering contract.
func (s *catalogServiceImpl) SendFreeAudio(ctx context.Context, audioID uint, email string) error {
	if email == "" {
		return apperr.Validation("email is required")
	}

	audio, err := s.freeRepo.FindByID(ctx, audioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("audio not found")
		}
		return apperr.Database("failed to load audio", err)
	}

	if err := s.downloadRepo.Create(ctx, &model.FreeAudioDownload{
		Email:   email,
		AudioID: audio.ID,
		Date:    time.Now(),
	}); err != nil {
		return apperr.Database("failed to record download", err)
	}

	audioURL := audio.AudioFile.Resolve(s.mediaBaseURL)
	if err := s.notifier.SendFreeAudioDelivery(email, audio.Title, audio.Description, audioURL); err != nil {
		return apperr.Mail("email sending error", err)
	}

	return nil
}

func (s *catalogServiceImpl) CreatePaidAudio(ctx context.Context, input *AudioInput, upload *Upload) (*dto.PaidAudioView, error) {
	if err := validateAudioInput(input, true); err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, apperr.Validation("audioFile is required")
	}

	ref, duration, err := s.ingest(ctx, upload, "audio/paid")
	if err != nil {
		return nil, err
	}

	audio := &model.PaidAudio{
		Title:         input.Title,
		Description:   input.Description,
		Rating:        input.Rating,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		Language:      input.Language,
		Voice:         input.Voice,
		AudioFile:     ref,
		Duration:      duration,
		PriceAmount:   input.PriceAmount,
		Revenue:       decimal.Zero,
	}
	if err := s.paidRepo.Create(ctx, audio); err != nil {
		return nil, apperr.Database("failed to store audio", err)
	}

	return s.paidView(audio), nil
}

func (s *catalogServiceImpl) ListPaidAudios(ctx context.Context) (*dto.PaidAudioListResponse, error) {
	audios, err := s.paidRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Database("failed to list audios", err)
	}

	views := make([]*dto.PaidAudioView, len(audios))
	totalRevenue := decimal.Zero
	var totalDownloads int64
	for i, audio := range audios {
		views[i] = s.paidView(audio)
		totalRevenue = totalRevenue.Add(audio.Revenue)
		totalDownloads += audio.Downloads
	}

	return &dto.PaidAudioListResponse{
		Success:        true,
		Data:           views,
		Count:          len(views),
		TotalRevenue:   totalRevenue,
		TotalDownloads: totalDownloads,
	}, nil
}

func (s *catalogServiceImpl) UpdatePaidAudio(ctx context.Context, id uint, updates map[string]interface{}, upload *Upload) (*dto.PaidAudioView, error) {
	if upload != nil {
		ref, duration, err := s.ingest(ctx, upload, "audio/paid")
		if err != nil {
			return nil, err
		}
		updates["audio_file"] = ref
		updates["duration"] = duration
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("nothing to update")
	}

	audio, err := s.paidRepo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("audio not found")
		}
		return nil, apperr.Database("failed to update audio", err)
	}

	return s.paidView(audio), nil
}

func (s *catalogServiceImpl) DeletePaidAudio(ctx context.Context, id uint) (*model.PaidAudio, error) {
	audio, err := s.paidRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("audio not found")
		}
		return nil, apperr.Database("failed to delete audio", err)
	}
	return audio, nil
}
