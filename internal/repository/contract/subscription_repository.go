package contract

import (
	"context"
	"time"

	"benixspace-be/internal/entity"
	"benixspace-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	Update(ctx context.Context, sub *entity.Subscription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)

	// FindActiveByUser returns the subscription covering `now` for the
	// user, or nil when none exists. When concurrent writes left several
	// overlapping rows the one with the highest id wins.
	FindActiveByUser(ctx context.Context, userID uint, now time.Time) (*entity.Subscription, error)

	HasUsedTrial(ctx context.Context, userID uint) (bool, error)
	CountActiveByPlan(ctx context.Context, plan entity.PlanID, now time.Time) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
}
