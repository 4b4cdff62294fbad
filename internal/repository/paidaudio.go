package repository

import (
	"context"

	"audio-marketplace/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaidAudioRepository interface {
	Create(ctx context.Context, audio *model.PaidAudio) error
	FindAll(ctx context.Context) ([]*model.PaidAudio, error)
	FindByID(ctx context.Context, id uint) (*model.PaidAudio, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.PaidAudio, error)
	Delete(ctx context.Context, id uint) (*model.PaidAudio, error)
	RecordSale(ctx context.Context, id uint, amount decimal.Decimal) error
}

type paidAudioRepoImpl struct {
	db *gorm.DB
}

func NewPaidAudioRepository(db *gorm.DB) PaidAudioRepository {
	return &paidAudioRepoImpl{
		db: db,
	}
}

func (r *paidAudioRepoImpl) Create(ctx context.Context, audio *model.PaidAudio) error {
	return r.db.WithContext(ctx).Create(audio).Error
}

func (r *paidAudioRepoImpl) FindAll(ctx context.Context) ([]*model.PaidAudio, error) {
	var audios []*model.PaidAudio
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&audios).Error

	if err != nil {
		return nil, err
	}

	return audios, nil
}

func (r *paidAudioRepoImpl) FindByID(ctx context.Context, id uint) (*model.PaidAudio, error) {
	var audio model.PaidAudio
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&audio).Error

	if err != nil {
		return nil, err
	}

	return &audio, nil
}

func (r *paidAudioRepoImpl) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.PaidAudio, error) {
	result := r.db.WithContext(ctx).Model(&model.PaidAudio{}).
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

func (r *paidAudioRepoImpl) Delete(ctx context.Context, id uint) (*model.PaidAudio, error) {
	audio, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&model.PaidAudio{}, id).Error; err != nil {
		return nil, err
	}

	return audio, nil
}

// RecordSale bumps the download and revenue counters in a single UPDATE so
// concurrent confirmations for the same item cannot lose increments.
func (r *paidAudioRepoImpl) RecordSale(ctx context.Context, id uint, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&model.PaidAudio{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"downloads": gorm.Expr("downloads + 1"),
			"revenue":   gorm.Expr("revenue + ?", amount),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
