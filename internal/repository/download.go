package repository

import (
	"context"

	"audio-marketplace/internal/model"

	"gorm.io/gorm"
)

type DownloadRepository interface {
	Create(ctx context.Context, download *model.FreeAudioDownload) error
	FindAll(ctx context.Context) ([]*model.FreeAudioDownload, error)
}

type downloadRepoImpl struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &downloadRepoImpl{
		db: db,
	}
}

func (r *downloadRepoImpl) Create(ctx context.Context, download *model.FreeAudioDownload) error {
	return r.db.WithContext(ctx).Create(download).Error
}

func (r *downloadRepoImpl) FindAll(ctx context.Context) ([]*model.FreeAudioDownload, error) {
	var downloads []*model.FreeAudioDownload
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Find(&downloads).Error

	if err != nil {
		return nil, err
	}

	return downloads, nil
}
