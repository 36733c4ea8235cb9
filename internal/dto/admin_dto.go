package dto

// UpdatePlanSettingsRequest carries admin overrides for plan pricing and
// daily limits. Only price and limit can be overridden, never identity or
// features.
type UpdatePlanSettingsRequest struct {
	Prices map[string]float64 `json:"prices"`
	Limits map[string]int     `json:"limits"` // -1 = unlimited
}

type UpdateTrialSettingsRequest struct {
	DurationDays   *int `json:"duration_days"`
	DailySongLimit *int `json:"daily_song_limit"`
}

type SubscriberStatsResponse struct {
	ActiveByPlan map[string]int64 `json:"active_by_plan"`
	TotalRevenue float64          `json:"total_revenue"`
}
