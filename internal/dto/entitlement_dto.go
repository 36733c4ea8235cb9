// DTOs and business errors for entitlement checking
package dto

import (
	"errors"
	"time"

	"benixspace-be/internal/entity"
)

// EntitlementStatus is the point-in-time answer to "what can this user do
// right now". It is recomputed on every check and never cached.
type EntitlementStatus struct {
	Active         bool              `json:"active"`
	Plan           entity.PlanID     `json:"plan"`
	PlanName       string            `json:"plan_name"`
	Expiry         *time.Time        `json:"expiry,omitempty"`
	Features       entity.FeatureSet `json:"features"`
	SongsLimit     entity.Quota      `json:"songs_limit"`
	SongsUsedToday int               `json:"songs_used_today"`
	SongsRemaining entity.Quota      `json:"songs_remaining"`
}

// CanGenerate reports whether one more generation is allowed under this
// snapshot.
func (s *EntitlementStatus) CanGenerate() bool {
	return s.Active && s.SongsLimit.CanUse(s.SongsUsedToday)
}

// ErrNoActiveSubscription is returned by the generation path when the user
// has no entitlement window covering now.
var ErrNoActiveSubscription = errors.New("no active subscription")

// QuotaExceededError carries the usage details for the daily-limit 403.
type QuotaExceededError struct {
	Limit      entity.Quota `json:"limit"`
	Used       int          `json:"used"`
	ResetAfter time.Time    `json:"reset_after"`
}

func (e *QuotaExceededError) Error() string {
	return "daily generation limit reached"
}
