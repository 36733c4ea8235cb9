// Service for subscription entitlement and daily usage accounting
package service

import (
	"context"
	"time"

	"benixspace-be/internal/dto"
	"benixspace-be/internal/entity"
	"benixspace-be/internal/pkg/logger"
	"benixspace-be/internal/repository/unitofwork"
)

// EntitlementService is the single gate for "may this user generate a
// song right now". Quota state is derived fresh on every call; business
// outcomes (no subscription, no quota) are data, not errors. Repository
// failures propagate so callers fail closed.
type EntitlementService interface {
	GetStatus(ctx context.Context, userID uint, now time.Time) (*dto.EntitlementStatus, error)
	CanGenerate(ctx context.Context, userID uint, now time.Time) (bool, error)

	// RecordUsage appends one usage row. Call it exactly once per
	// successful generation, after the provider call succeeds.
	RecordUsage(ctx context.Context, userID uint, songType string, now time.Time) error
}

type entitlementService struct {
	uowFactory unitofwork.RepositoryFactory
	catalog    PlanCatalog
	logger     logger.ILogger
}

func NewEntitlementService(uowFactory unitofwork.RepositoryFactory, catalog PlanCatalog, log logger.ILogger) EntitlementService {
	return &entitlementService{
		uowFactory: uowFactory,
		catalog:    catalog,
		logger:     log,
	}
}

// dayWindow returns the UTC calendar day containing t as [start, end).
// The same window is used when counting and when appending usage, so the
// quota never drifts by one at day rollover. UTC is a deliberate choice:
// the stored timestamps carry no timezone and the service may run in any
// region.
func dayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (s *entitlementService) GetStatus(ctx context.Context, userID uint, now time.Time) (*dto.EntitlementStatus, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Usage is counted even without an active subscription, for audit;
	// remaining is forced to zero in that case.
	dayStart, dayEnd := dayWindow(now)
	used, err := uow.UsageRepository().CountBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	status := &dto.EntitlementStatus{
		Active:         false,
		Plan:           entity.PlanNone,
		PlanName:       "None",
		Features:       entity.FeatureSet{},
		SongsLimit:     entity.LimitedQuota(0),
		SongsUsedToday: int(used),
		SongsRemaining: entity.LimitedQuota(0),
	}

	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return status, nil
	}

	limit, features, planName, err := s.resolveEntitlementInputs(ctx, sub.Plan)
	if err != nil {
		return nil, err
	}

	expiry := sub.ExpiresAt
	status.Active = true
	status.Plan = sub.Plan
	status.PlanName = planName
	status.Expiry = &expiry
	status.Features = features
	status.SongsLimit = limit
	status.SongsRemaining = limit.RemainingAfter(int(used))

	return status, nil
}

// resolveEntitlementInputs maps a plan id to its effective daily limit and
// feature set. The trial special case lives here and nowhere else: trial
// entitlement uses the trial config, never a paid plan's limits.
func (s *entitlementService) resolveEntitlementInputs(ctx context.Context, plan entity.PlanID) (entity.Quota, entity.FeatureSet, string, error) {
	if plan == entity.PlanTrial {
		trial, err := s.catalog.Trial(ctx)
		if err != nil {
			return entity.Quota{}, entity.FeatureSet{}, "", err
		}
		return trial.DailySongLimit, trial.Features, "Free Trial", nil
	}

	cfg, err := s.catalog.Plan(ctx, plan)
	if err != nil {
		return entity.Quota{}, entity.FeatureSet{}, "", err
	}
	return cfg.DailySongLimit, cfg.Features, cfg.Name, nil
}

func (s *entitlementService) CanGenerate(ctx context.Context, userID uint, now time.Time) (bool, error) {
	status, err := s.GetStatus(ctx, userID, now)
	if err != nil {
		return false, err
	}
	return status.CanGenerate(), nil
}

func (s *entitlementService) RecordUsage(ctx context.Context, userID uint, songType string, now time.Time) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rec := &entity.UsageRecord{
		UserID:    userID,
		SongType:  songType,
		CreatedAt: now,
	}
	if err := uow.UsageRepository().Append(ctx, rec); err != nil {
		return err
	}

	s.logger.Info("ENTITLEMENT", "Recorded song usage", map[string]interface{}{
		"user_id":   userID,
		"song_type": songType,
	})
	return nil
}
