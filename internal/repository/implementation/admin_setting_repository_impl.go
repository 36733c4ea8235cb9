package implementation

import (
	"context"
	"errors"

	"benixspace-be/internal/entity"
	"benixspace-be/internal/model"
	"benixspace-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminSettingRepositoryImpl struct {
	db *gorm.DB
}

func NewAdminSettingRepository(db *gorm.DB) contract.AdminSettingRepository {
	return &AdminSettingRepositoryImpl{db: db}
}

func (r *AdminSettingRepositoryImpl) Get(ctx context.Context, key string) (*entity.AdminSetting, error) {
	var m model.AdminSetting
	err := r.db.WithContext(ctx).Where("config_key = ?", key).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.AdminSetting{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt}, nil
}

func (r *AdminSettingRepositoryImpl) GetAll(ctx context.Context) ([]*entity.AdminSetting, error) {
	var models []*model.AdminSetting
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	settings := make([]*entity.AdminSetting, len(models))
	for i, m := range models {
		settings[i] = &entity.AdminSetting{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt}
	}
	return settings, nil
}

func (r *AdminSettingRepositoryImpl) Set(ctx context.Context, key, value string) error {
	m := model.AdminSetting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value"}),
	}).Create(&m).Error
}
