package dto

import (
	"errors"
	"time"

	"benixspace-be/internal/entity"
)

var ErrTrialAlreadyUsed = errors.New("free trial already used")

type SubscribeRequest struct {
	Plan           string  `json:"plan"`
	DurationMonths int     `json:"duration_months"`
	TransactionID  string  `json:"transaction_id"`
	Amount         float64 `json:"amount"`
}

type SubscriptionResponse struct {
	ID        uint          `json:"id"`
	Plan      entity.PlanID `json:"plan"`
	Amount    float64       `json:"amount"`
	StartedAt time.Time     `json:"started_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

type PlanResponse struct {
	ID             entity.PlanID     `json:"id"`
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	Features       entity.FeatureSet `json:"features"`
	DailySongLimit entity.Quota      `json:"daily_song_limit"`
}
