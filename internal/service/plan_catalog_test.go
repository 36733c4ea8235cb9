package service

import (
	"context"
	"testing"

	"benixspace-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestPlanCatalogDefaults(t *testing.T) {
	store := newFakeStore()
	catalog := NewPlanCatalog(store, nopLogger{})

	plans, err := catalog.Plans(context.Background())
	assert.NoError(t, err)
	assert.Len(t, plans, 3)

	basic, err := catalog.Plan(context.Background(), entity.PlanBasic)
	assert.NoError(t, err)
	assert.Equal(t, 5.00, basic.Price)
	assert.Equal(t, entity.LimitedQuota(2), basic.DailySongLimit)

	premium, err := catalog.Plan(context.Background(), entity.PlanPremium)
	assert.NoError(t, err)
	assert.True(t, premium.DailySongLimit.IsUnlimited())
}

func TestPlanCatalogUnknownPlan(t *testing.T) {
	store := newFakeStore()
	catalog := NewPlanCatalog(store, nopLogger{})

	_, err := catalog.Plan(context.Background(), entity.PlanID("gold"))
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestPlanCatalogAdminOverrides(t *testing.T) {
	store := newFakeStore()
	store.settings.values[entity.SettingPlanPrices] = `{"basic":7.5,"premium":25}`
	store.settings.values[entity.SettingSongLimits] = `{"basic":4,"standard":-1}`

	catalog := NewPlanCatalog(store, nopLogger{})

	basic, err := catalog.Plan(context.Background(), entity.PlanBasic)
	assert.NoError(t, err)
	assert.Equal(t, 7.5, basic.Price)
	assert.Equal(t, entity.LimitedQuota(4), basic.DailySongLimit)

	standard, err := catalog.Plan(context.Background(), entity.PlanStandard)
	assert.NoError(t, err)
	assert.Equal(t, 10.00, standard.Price) // untouched
	assert.True(t, standard.DailySongLimit.IsUnlimited())

	// Identity and features are never overridable.
	assert.True(t, basic.Features.Vocal)
	assert.True(t, basic.Features.Instrumental)
}

func TestPlanCatalogMalformedOverrideIgnored(t *testing.T) {
	store := newFakeStore()
	store.settings.values[entity.SettingPlanPrices] = `{not json`

	catalog := NewPlanCatalog(store, nopLogger{})

	basic, err := catalog.Plan(context.Background(), entity.PlanBasic)
	assert.NoError(t, err)
	assert.Equal(t, 5.00, basic.Price)
}

func TestPlanCatalogTrialOverrides(t *testing.T) {
	store := newFakeStore()
	store.settings.values[entity.SettingFreeTrialDays] = `7`
	store.settings.values[entity.SettingTrialSongLimit] = `3`

	catalog := NewPlanCatalog(store, nopLogger{})

	trial, err := catalog.Trial(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, trial.DurationDays)
	assert.Equal(t, entity.LimitedQuota(3), trial.DailySongLimit)
	assert.True(t, trial.Features.Vocal)
	assert.False(t, trial.Features.Instrumental)
}

func TestPlanCatalogInvalidateRefreshes(t *testing.T) {
	store := newFakeStore()
	catalog := NewPlanCatalog(store, nopLogger{})

	basic, err := catalog.Plan(context.Background(), entity.PlanBasic)
	assert.NoError(t, err)
	assert.Equal(t, 5.00, basic.Price)

	store.settings.values[entity.SettingPlanPrices] = `{"basic":9}`

	// Cached value until invalidated.
	basic, err = catalog.Plan(context.Background(), entity.PlanBasic)
	assert.NoError(t, err)
	assert.Equal(t, 5.00, basic.Price)

	catalog.Invalidate()

	basic, err = catalog.Plan(context.Background(), entity.PlanBasic)
	assert.NoError(t, err)
	assert.Equal(t, 9.00, basic.Price)
}
