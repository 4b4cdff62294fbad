package repository

import (
	"context"

	"audio-marketplace/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	// CreateIfAbsent inserts the purchase unless a record with the same
	// session id already exists. It reports whether a row was written, so
	// the confirm flow can skip counters and delivery on replays.
	CreateIfAbsent(ctx context.Context, purchase *model.PaidAudioPurchase) (bool, error)
	FindBySessionID(ctx context.Context, sessionID string) (*model.PaidAudioPurchase, error)
	FindAll(ctx context.Context) ([]*model.PaidAudioPurchase, error)
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) CreateIfAbsent(ctx context.Context, purchase *model.PaidAudioPurchase) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(purchase)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *purchaseRepoImpl) FindBySessionID(ctx context.Context, sessionID string) (*model.PaidAudioPurchase, error) {
	var purchase model.PaidAudioPurchase
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&purchase).Error

	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseRepoImpl) FindAll(ctx context.Context) ([]*model.PaidAudioPurchase, error) {
	var purchases []*model.PaidAudioPurchase
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Find(&purchases).Error

	if err != nil {
		return nil, err
	}

	return purchases, nil
}
