// PlanCatalog resolves plan configuration with admin overrides applied.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"benixspace-be/internal/entity"
	"benixspace-be/internal/pkg/logger"
	"benixspace-be/internal/repository/unitofwork"

	gocache "github.com/patrickmn/go-cache"
)

// ErrInvalidPlan means a subscription references a plan id with no
// configuration behind it. This is a deployment problem, not a user error.
var ErrInvalidPlan = errors.New("unknown subscription plan")

// PlanCatalog is the single source of plan and trial configuration.
// Admin settings may override prices and daily limits; plan identity and
// feature sets are fixed.
type PlanCatalog interface {
	Plan(ctx context.Context, id entity.PlanID) (*entity.SubscriptionPlan, error)
	Plans(ctx context.Context) ([]*entity.SubscriptionPlan, error)
	Trial(ctx context.Context) (*entity.TrialConfig, error)

	// Invalidate drops cached overrides; called after admin updates.
	Invalidate()
}

const (
	catalogCacheKeyPlans = "catalog:plans"
	catalogCacheKeyTrial = "catalog:trial"
)

// Built-in tiers. Order matters for the public pricing listing.
func builtinPlans() []*entity.SubscriptionPlan {
	allFeatures := entity.FeatureSet{Vocal: true, Instrumental: true, Chorus: true}
	return []*entity.SubscriptionPlan{
		{ID: entity.PlanBasic, Name: "Basic", Price: 5.00, Features: allFeatures, DailySongLimit: entity.LimitedQuota(2)},
		{ID: entity.PlanStandard, Name: "Standard", Price: 10.00, Features: allFeatures, DailySongLimit: entity.LimitedQuota(5)},
		{ID: entity.PlanPremium, Name: "Premium", Price: 20.00, Features: allFeatures, DailySongLimit: entity.UnlimitedQuota()},
	}
}

func builtinTrial() *entity.TrialConfig {
	return &entity.TrialConfig{
		DurationDays:   14,
		DailySongLimit: entity.LimitedQuota(2),
		Features:       entity.FeatureSet{Vocal: true},
	}
}

type planCatalog struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
	logger     logger.ILogger
}

func NewPlanCatalog(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) PlanCatalog {
	return &planCatalog{
		uowFactory: uowFactory,
		cache:      gocache.New(time.Minute, 5*time.Minute),
		logger:     log,
	}
}

func (c *planCatalog) Plans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	if cached, found := c.cache.Get(catalogCacheKeyPlans); found {
		return cached.([]*entity.SubscriptionPlan), nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AdminSettingRepository()

	plans := builtinPlans()

	prices, err := readJSONSetting[map[string]float64](ctx, repo, entity.SettingPlanPrices, c.logger)
	if err != nil {
		return nil, err
	}
	limits, err := readJSONSetting[map[string]int](ctx, repo, entity.SettingSongLimits, c.logger)
	if err != nil {
		return nil, err
	}

	for _, plan := range plans {
		if prices != nil {
			if p, ok := (*prices)[string(plan.ID)]; ok && p > 0 {
				plan.Price = p
			}
		}
		if limits != nil {
			if n, ok := (*limits)[string(plan.ID)]; ok {
				if n < 0 {
					plan.DailySongLimit = entity.UnlimitedQuota()
				} else {
					plan.DailySongLimit = entity.LimitedQuota(n)
				}
			}
		}
	}

	c.cache.SetDefault(catalogCacheKeyPlans, plans)
	return plans, nil
}

func (c *planCatalog) Plan(ctx context.Context, id entity.PlanID) (*entity.SubscriptionPlan, error) {
	plans, err := c.Plans(ctx)
	if err != nil {
		return nil, err
	}
	for _, plan := range plans {
		if plan.ID == id {
			return plan, nil
		}
	}
	return nil, ErrInvalidPlan
}

func (c *planCatalog) Trial(ctx context.Context) (*entity.TrialConfig, error) {
	if cached, found := c.cache.Get(catalogCacheKeyTrial); found {
		return cached.(*entity.TrialConfig), nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.AdminSettingRepository()

	trial := builtinTrial()

	days, err := readJSONSetting[int](ctx, repo, entity.SettingFreeTrialDays, c.logger)
	if err != nil {
		return nil, err
	}
	if days != nil && *days > 0 {
		trial.DurationDays = *days
	}

	limit, err := readJSONSetting[int](ctx, repo, entity.SettingTrialSongLimit, c.logger)
	if err != nil {
		return nil, err
	}
	if limit != nil && *limit >= 0 {
		trial.DailySongLimit = entity.LimitedQuota(*limit)
	}

	c.cache.SetDefault(catalogCacheKeyTrial, trial)
	return trial, nil
}

func (c *planCatalog) Invalidate() {
	c.cache.Delete(catalogCacheKeyPlans)
	c.cache.Delete(catalogCacheKeyTrial)
}

// readJSONSetting loads an admin setting and decodes its JSON value.
// Missing keys return nil; malformed values are logged and skipped so a
// bad admin write never takes entitlement checking down.
func readJSONSetting[T any](ctx context.Context, repo interface {
	Get(ctx context.Context, key string) (*entity.AdminSetting, error)
}, key string, log logger.ILogger) (*T, error) {
	setting, err := repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	var value T
	if err := json.Unmarshal([]byte(setting.Value), &value); err != nil {
		log.Warn("CATALOG", "Ignoring malformed admin setting", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, nil
	}
	return &value, nil
}
