package implementation

import (
	"context"
	"time"

	"benixspace-be/internal/entity"
	"benixspace-be/internal/mapper"
	"benixspace-be/internal/model"
	"benixspace-be/internal/repository/contract"

	"gorm.io/gorm"
)

type UsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewUsageRepository(db *gorm.DB) contract.UsageRepository {
	return &UsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *UsageRepositoryImpl) Append(ctx context.Context, rec *entity.UsageRecord) error {
	m := r.mapper.UsageToModel(rec)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*rec = *r.mapper.UsageToEntity(m)
	return nil
}

func (r *UsageRepositoryImpl) CountBetween(ctx context.Context, userID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SongUsage{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}
