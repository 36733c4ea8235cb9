package entity

import (
	"encoding/json"
	"time"
)

type PlanID string

const (
	PlanNone     PlanID = "none"
	PlanTrial    PlanID = "trial"
	PlanBasic    PlanID = "basic"
	PlanStandard PlanID = "standard"
	PlanPremium  PlanID = "premium"
)

// FeatureSet holds the capability flags a plan grants.
type FeatureSet struct {
	Vocal        bool `json:"vocal"`
	Instrumental bool `json:"instrumental"`
	Chorus       bool `json:"chorus"`
}

// Quota is the daily generation allowance: either a finite count or
// unlimited. Modeled as a tagged value instead of a numeric sentinel so
// comparisons never go through float infinity or overflow tricks.
type Quota struct {
	unlimited bool
	limit     int
}

func LimitedQuota(n int) Quota {
	if n < 0 {
		n = 0
	}
	return Quota{limit: n}
}

func UnlimitedQuota() Quota {
	return Quota{unlimited: true}
}

func (q Quota) IsUnlimited() bool {
	return q.unlimited
}

// Limit returns the finite limit. Meaningless when unlimited; check
// IsUnlimited first.
func (q Quota) Limit() int {
	return q.limit
}

// RemainingAfter returns the quota left once `used` generations are spent.
// Unlimited stays unlimited; finite quotas floor at zero.
func (q Quota) RemainingAfter(used int) Quota {
	if q.unlimited {
		return q
	}
	rest := q.limit - used
	if rest < 0 {
		rest = 0
	}
	return Quota{limit: rest}
}

// CanUse reports whether one more generation fits under this quota.
func (q Quota) CanUse(used int) bool {
	if q.unlimited {
		return true
	}
	return used < q.limit
}

// MarshalJSON keeps the wire convention of -1 for unlimited.
func (q Quota) MarshalJSON() ([]byte, error) {
	if q.unlimited {
		return json.Marshal(-1)
	}
	return json.Marshal(q.limit)
}

func (q *Quota) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n < 0 {
		*q = UnlimitedQuota()
	} else {
		*q = LimitedQuota(n)
	}
	return nil
}

// SubscriptionPlan is a named tier. Plans are configuration, not rows a
// user can mutate: identity and features are fixed, price and daily limit
// may be overridden by admin settings.
type SubscriptionPlan struct {
	ID             PlanID
	Name           string
	Price          float64
	Features       FeatureSet
	DailySongLimit Quota
}

// TrialConfig drives the free-trial entitlement. The feature set is
// table-driven here rather than hardcoded at the call sites.
type TrialConfig struct {
	DurationDays   int
	DailySongLimit Quota
	Features       FeatureSet
}

// Subscription is one user's entitlement window. Historical records are
// kept; cancellation sets ExpiresAt to the cancel instant instead of
// deleting the row.
type Subscription struct {
	ID            uint
	UserID        uint
	Plan          PlanID
	Amount        float64
	TransactionID *string
	StartedAt     time.Time
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

// ActiveAt reports whether the window covers the given instant.
func (s *Subscription) ActiveAt(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
