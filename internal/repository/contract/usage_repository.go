package contract

import (
	"context"
	"time"

	"benixspace-be/internal/entity"
)

type UsageRepository interface {
	// Append inserts one usage row. Callers invoke it exactly once per
	// successful generation, after the provider call.
	Append(ctx context.Context, rec *entity.UsageRecord) error

	// CountBetween counts a user's usage rows created in [from, to).
	CountBetween(ctx context.Context, userID uint, from, to time.Time) (int64, error)
}
