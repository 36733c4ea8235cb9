package service

import (
	"context"
	"testing"
	"time"

	"benixspace-be/internal/dto"
	"benixspace-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func newSubscriptionFixture(t *testing.T) (*fakeStore, SubscriptionService, time.Time) {
	t.Helper()
	store := newFakeStore()
	catalog := NewPlanCatalog(store, nopLogger{})
	entitlement := NewEntitlementService(store, catalog, nopLogger{})
	svc := NewSubscriptionService(store, catalog, entitlement, nil, nopLogger{})

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.(*subscriptionService).now = func() time.Time { return now }
	return store, svc, now
}

func TestStartTrial(t *testing.T) {
	store, svc, now := newSubscriptionFixture(t)

	res, err := svc.StartTrial(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, entity.PlanTrial, res.Plan)
	assert.Equal(t, now.AddDate(0, 0, 14), res.ExpiresAt)
	assert.Len(t, store.subs.rows, 1)
}

func TestStartTrialOnlyOnce(t *testing.T) {
	_, svc, _ := newSubscriptionFixture(t)

	_, err := svc.StartTrial(context.Background(), 1)
	assert.NoError(t, err)

	_, err = svc.StartTrial(context.Background(), 1)
	assert.ErrorIs(t, err, dto.ErrTrialAlreadyUsed)
}

func TestStartTrialBlockedAfterExpiry(t *testing.T) {
	store, svc, now := newSubscriptionFixture(t)
	// An old, long-expired trial still burns the one-shot.
	seedSubscription(store, 1, entity.PlanTrial, now.AddDate(-1, 0, 0), now.AddDate(-1, 0, 14))

	_, err := svc.StartTrial(context.Background(), 1)
	assert.ErrorIs(t, err, dto.ErrTrialAlreadyUsed)
}

func TestStartTrialHonorsConfiguredDuration(t *testing.T) {
	store, svc, now := newSubscriptionFixture(t)
	store.settings.values[entity.SettingFreeTrialDays] = `7`

	res, err := svc.StartTrial(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 7), res.ExpiresAt)
}

func TestSubscribe(t *testing.T) {
	_, svc, now := newSubscriptionFixture(t)

	res, err := svc.Subscribe(context.Background(), 1, &dto.SubscribeRequest{
		Plan:           "standard",
		DurationMonths: 2,
		TransactionID:  "tx-123",
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.PlanStandard, res.Plan)
	assert.Equal(t, 20.00, res.Amount) // 2 months at list price
	assert.Equal(t, now.AddDate(0, 0, 60), res.ExpiresAt)
}

func TestSubscribeRejectsUnknownAndTrialPlans(t *testing.T) {
	_, svc, _ := newSubscriptionFixture(t)

	_, err := svc.Subscribe(context.Background(), 1, &dto.SubscribeRequest{Plan: "gold"})
	assert.ErrorIs(t, err, ErrInvalidPlan)

	_, err = svc.Subscribe(context.Background(), 1, &dto.SubscribeRequest{Plan: "trial"})
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestCancelClosesEntitlementImmediately(t *testing.T) {
	_, svc, _ := newSubscriptionFixture(t)

	_, err := svc.Subscribe(context.Background(), 1, &dto.SubscribeRequest{Plan: "premium"})
	assert.NoError(t, err)

	status, err := svc.Status(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, status.Active)

	assert.NoError(t, svc.Cancel(context.Background(), 1))

	status, err = svc.Status(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, status.Active)
	assert.False(t, status.CanGenerate())
}

func TestCancelWithoutSubscription(t *testing.T) {
	_, svc, _ := newSubscriptionFixture(t)

	err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, dto.ErrNoActiveSubscription)
}

func TestPlansListing(t *testing.T) {
	_, svc, _ := newSubscriptionFixture(t)

	plans, err := svc.Plans(context.Background())
	assert.NoError(t, err)
	assert.Len(t, plans, 3)
	assert.Equal(t, entity.PlanBasic, plans[0].ID)
	assert.True(t, plans[2].DailySongLimit.IsUnlimited())
}
