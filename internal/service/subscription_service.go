// Service for subscription lifecycle: trial, paid plans, cancellation.
package service

import (
	"context"
	"time"

	"benixspace-be/internal/dto"
	"benixspace-be/internal/entity"
	pkgevents "benixspace-be/internal/pkg/events"
	"benixspace-be/internal/pkg/logger"
	"benixspace-be/internal/repository/unitofwork"
)

type SubscriptionService interface {
	// StartTrial grants the one-time free trial. A second attempt fails
	// with dto.ErrTrialAlreadyUsed even if the first trial expired.
	StartTrial(ctx context.Context, userID uint) (*dto.SubscriptionResponse, error)

	Subscribe(ctx context.Context, userID uint, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error)

	// Cancel ends the active subscription immediately by moving its
	// expiry to now. Returns dto.ErrNoActiveSubscription when there is
	// nothing to cancel.
	Cancel(ctx context.Context, userID uint) error

	Status(ctx context.Context, userID uint) (*dto.EntitlementStatus, error)
	Plans(ctx context.Context) ([]*dto.PlanResponse, error)
}

type subscriptionService struct {
	uowFactory  unitofwork.RepositoryFactory
	catalog     PlanCatalog
	entitlement EntitlementService
	publisher   pkgevents.Publisher
	logger      logger.ILogger
	now         func() time.Time
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	catalog PlanCatalog,
	entitlement EntitlementService,
	publisher pkgevents.Publisher,
	log logger.ILogger,
) SubscriptionService {
	return &subscriptionService{
		uowFactory:  uowFactory,
		catalog:     catalog,
		entitlement: entitlement,
		publisher:   publisher,
		logger:      log,
		now:         time.Now,
	}
}

func (s *subscriptionService) StartTrial(ctx context.Context, userID uint) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	used, err := uow.SubscriptionRepository().HasUsedTrial(ctx, userID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, dto.ErrTrialAlreadyUsed
	}

	trial, err := s.catalog.Trial(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub := &entity.Subscription{
		UserID:    userID,
		Plan:      entity.PlanTrial,
		Amount:    0,
		StartedAt: now,
		ExpiresAt: now.AddDate(0, 0, trial.DurationDays),
		CreatedAt: now,
	}
	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Free trial started", map[string]interface{}{
		"user_id":    userID,
		"expires_at": sub.ExpiresAt,
	})
	if s.publisher != nil {
		s.publisher.PublishTrialStarted(ctx, userID, sub.ExpiresAt)
	}

	return toSubscriptionResponse(sub), nil
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID uint, req *dto.SubscribeRequest) (*dto.SubscriptionResponse, error) {
	planID := entity.PlanID(req.Plan)
	if planID == entity.PlanTrial {
		// The trial has its own endpoint and its own one-shot rule.
		return nil, ErrInvalidPlan
	}

	plan, err := s.catalog.Plan(ctx, planID)
	if err != nil {
		return nil, err
	}

	months := req.DurationMonths
	if months <= 0 {
		months = 1
	}

	amount := req.Amount
	if amount <= 0 {
		amount = plan.Price * float64(months)
	}

	now := s.now()
	sub := &entity.Subscription{
		UserID:    userID,
		Plan:      plan.ID,
		Amount:    amount,
		StartedAt: now,
		ExpiresAt: now.AddDate(0, 0, 30*months),
		CreatedAt: now,
	}
	if req.TransactionID != "" {
		txID := req.TransactionID
		sub.TransactionID = &txID
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Subscription started", map[string]interface{}{
		"user_id":    userID,
		"plan":       plan.ID,
		"expires_at": sub.ExpiresAt,
	})
	if s.publisher != nil {
		s.publisher.PublishSubscriptionStarted(ctx, userID, string(plan.ID), amount, sub.ExpiresAt)
	}

	return toSubscriptionResponse(sub), nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userID uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userID, now)
	if err != nil {
		return err
	}
	if sub == nil {
		return dto.ErrNoActiveSubscription
	}

	// The row is kept for history; only the window closes.
	sub.ExpiresAt = now
	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return err
	}

	s.logger.Info("SUBSCRIPTION", "Subscription canceled", map[string]interface{}{
		"user_id": userID,
		"plan":    sub.Plan,
	})
	if s.publisher != nil {
		s.publisher.PublishSubscriptionCanceled(ctx, userID, string(sub.Plan))
	}
	return nil
}

func (s *subscriptionService) Status(ctx context.Context, userID uint) (*dto.EntitlementStatus, error) {
	return s.entitlement.GetStatus(ctx, userID, s.now())
}

func (s *subscriptionService) Plans(ctx context.Context) ([]*dto.PlanResponse, error) {
	plans, err := s.catalog.Plans(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		result = append(result, &dto.PlanResponse{
			ID:             p.ID,
			Name:           p.Name,
			Price:          p.Price,
			Features:       p.Features,
			DailySongLimit: p.DailySongLimit,
		})
	}
	return result, nil
}

func toSubscriptionResponse(sub *entity.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:        sub.ID,
		Plan:      sub.Plan,
		Amount:    sub.Amount,
		StartedAt: sub.StartedAt,
		ExpiresAt: sub.ExpiresAt,
	}
}
