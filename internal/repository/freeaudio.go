package repository

import (
	"context"

	"audio-marketplace/internal/model"

	"gorm.io/gorm"
)

type FreeAudioRepository interface {
	Create(ctx context.Context, audio *model.FreeAudio) error
	FindAll(ctx context.Context) ([]*model.FreeAudio, error)
	FindByID(ctx context.Context, id uint) (*model.FreeAudio, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.FreeAudio, error)
	Delete(ctx context.Context, id uint) (*model.FreeAudio, error)
}

type freeAudioRepoImpl struct {
	db *gorm.DB
}

func NewFreeAudioRepository(db *gorm.DB) FreeAudioRepository {
	return &freeAudioRepoImpl{
		db: db,
	}
}

func (r *freeAudioRepoImpl) Create(ctx context.Context, audio *model.FreeAudio) error {
	return r.db.WithContext(ctx).Create(audio).Error
}

func (r *freeAudioRepoImpl) FindAll(ctx context.Context) ([]*model.FreeAudio, error) {
	var audios []*model.FreeAudio
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&audios).Error

	if err != nil {
		return nil, err
	}

	return audios, nil
}

func (r *freeAudioRepoImpl) FindByID(ctx context.Context, id uint) (*model.FreeAudio, error) {
	var audio model.FreeAudio
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&audio).Error

	if err != nil {
		return nil, err
	}

	return &audio, nil
}

func (r *freeAudioRepoImpl) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.FreeAudio, error) {
	result := r.db.WithContext(ctx).Model(&model.FreeAudio{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *freeAudioRepoImpl) Delete(ctx context.Context, id uint) (*model.FreeAudio, error) {
	audio, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&model.FreeAudio{}, id).Error; err != nil {
		return nil, err
	}

	return audio, nil
}
