package repository

import (
	"context"
	"time"

	"audio-marketplace/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomRequestFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
	Page      int
	Limit     int
}

type CustomRequestRepository interface {
	Create(ctx context.Context, request *model.CustomAudioRequest) error
	// CreateIfAbsent is the confirm-path write, deduplicated on session id.
	CreateIfAbsent(ctx context.Context, request *model.CustomAudioRequest) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.CustomAudioRequest, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.CustomAudioRequest, error)
	List(ctx context.Context, filter *CustomRequestFilter) ([]*model.CustomAudioRequest, int64, error)
	SumAmountPaid(ctx context.Context, filter *CustomRequestFilter) (decimal.Decimal, error)
	FindAll(ctx context.Context) ([]*model.CustomAudioRequest, error)
}

type customRequestRepoImpl struct {
	db *gorm.DB
}

func NewCustomRequestRepository(db *gorm.DB) CustomRequestRepository {
	return &customRequestRepoImpl{
		db: db,
	}
}

func (r *customRequestRepoImpl) Create(ctx context.Context, request *model.CustomAudioRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *customRequestRepoImpl) CreateIfAbsent(ctx context.Context, request *model.CustomAudioRequest) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(request)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *customRequestRepoImpl) FindByID(ctx context.Context, id uint) (*model.CustomAudioRequest, error) {
	var request model.CustomAudioRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error

	if err != nil {
		return nil, err
	}

	return &request, nil
}

func (r *customRequestRepoImpl) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.CustomAudioRequest, error) {
	result := r.db.WithContext(ctx).Model(&model.CustomAudioRequest{}).
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

func (r *customRequestRepoImpl) filtered(ctx context.Context, filter *CustomRequestFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.CustomAudioRequest{})
	if filter == nil {
		return query
	}
	if filter.StartDate != nil {
		query = query.Where("request_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("request_date <= ?", *filter.EndDate)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

func (r *customRequestRepoImpl) List(ctx context.Context, filter *CustomRequestFilter) ([]*model.CustomAudioRequest, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filtered(ctx, filter).Order("request_date DESC")
	if filter != nil && filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.Limit).Offset((page - 1) * filter.Limit)
	}

	var requests []*model.CustomAudioRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *customRequestRepoImpl) SumAmountPaid(ctx context.Context, filter *CustomRequestFilter) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.filtered(ctx, filter).
		Select("SUM(amount_paid)").
		Scan(&total).Error

	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *customRequestRepoImpl) FindAll(ctx context.Context) ([]*model.CustomAudioRequest, error) {
	var requests []*model.CustomAudioRequest
	err := r.db.WithContext(ctx).
		Order("request_date DESC").
		Find(&requests).Error

	if err != nil {
		return nil, err
	}

	return requests, nil
}
