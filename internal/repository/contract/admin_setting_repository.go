package contract

import (
	"context"

	"benixspace-be/internal/entity"
)

type AdminSettingRepository interface {
	// Get returns the setting for key, or nil when the key is absent.
	Get(ctx context.Context, key string) (*entity.AdminSetting, error)
	GetAll(ctx context.Context) ([]*entity.AdminSetting, error)
	Set(ctx context.Context, key, value string) error
}
