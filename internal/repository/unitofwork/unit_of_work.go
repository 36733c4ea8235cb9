package unitofwork

import (
	"context"

	"benixspace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	UsageRepository() contract.UsageRepository
	GenerationRepository() contract.GenerationRepository
	AdminSettingRepository() contract.AdminSettingRepository
}
