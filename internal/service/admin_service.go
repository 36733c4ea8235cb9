// Service for admin configuration and reporting
package service

import (
	"context"
	"encoding/json"
	"time"

	"benixspace-be/internal/dto"
	"benixspace-be/internal/entity"
	"benixspace-be/internal/pkg/logger"
	"benixspace-be/internal/repository/unitofwork"
)

type AdminService interface {
	Settings(ctx context.Context) (map[string]string, error)
	UpdatePlanSettings(ctx context.Context, req *dto.UpdatePlanSettingsRequest) error
	UpdateTrialSettings(ctx context.Context, req *dto.UpdateTrialSettingsRequest) error
	SubscriberStats(ctx context.Context) (*dto.SubscriberStatsResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	catalog    PlanCatalog
	logger     logger.ILogger
	now        func() time.Time
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, catalog PlanCatalog, log logger.ILogger) AdminService {
	return &adminService{
		uowFactory: uowFactory,
		catalog:    catalog,
		logger:     log,
		now:        time.Now,
	}
}

func (s *adminService) Settings(ctx context.Context) (map[string]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.AdminSettingRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}

func (s *adminService) UpdatePlanSettings(ctx context.Context, req *dto.UpdatePlanSettingsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AdminSettingRepository()

	if len(req.Prices) > 0 {
		if err := s.writeJSONSetting(ctx, repo, entity.SettingPlanPrices, req.Prices); err != nil {
			return err
		}
	}
	if len(req.Limits) > 0 {
		if err := s.writeJSONSetting(ctx, repo, entity.SettingSongLimits, req.Limits); err != nil {
			return err
		}
	}

	// Overrides take effect on the next catalog read.
	s.catalog.Invalidate()

	s.logger.Info("ADMIN", "Plan settings updated", map[string]interface{}{
		"prices": req.Prices,
		"limits": req.Limits,
	})
	return nil
}

func (s *adminService) UpdateTrialSettings(ctx context.Context, req *dto.UpdateTrialSettingsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AdminSettingRepository()

	if req.DurationDays != nil {
		if err := s.writeJSONSetting(ctx, repo, entity.SettingFreeTrialDays, *req.DurationDays); err != nil {
			return err
		}
	}
	if req.DailySongLimit != nil {
		if err := s.writeJSONSetting(ctx, repo, entity.SettingTrialSongLimit, *req.DailySongLimit); err != nil {
			return err
		}
	}

	s.catalog.Invalidate()

	s.logger.Info("ADMIN", "Trial settings updated", nil)
	return nil
}

func (s *adminService) writeJSONSetting(ctx context.Context, repo interface {
	Set(ctx context.Context, key, value string) error
}, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return repo.Set(ctx, key, string(data))
}

func (s *adminService) SubscriberStats(ctx context.Context) (*dto.SubscriberStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SubscriptionRepository()
	now := s.now()

	byPlan := make(map[string]int64)
	for _, plan := range []entity.PlanID{entity.PlanTrial, entity.PlanBasic, entity.PlanStandard, entity.PlanPremium} {
		count, err := repo.CountActiveByPlan(ctx, plan, now)
		if err != nil {
			return nil, err
		}
		byPlan[string(plan)] = count
	}

	revenue, err := repo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.SubscriberStatsResponse{
		ActiveByPlan: byPlan,
		TotalRevenue: revenue,
	}, nil
}
