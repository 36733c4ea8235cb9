package entity

import "time"

// AdminSetting is one key/value row of app-wide configuration. Values are
// stored as JSON strings and parsed by the consumer (plan catalog, trial
// settings).
type AdminSetting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Well-known setting keys.
const (
	SettingPlanPrices     = "plan_prices"
	SettingSongLimits     = "song_limits"
	SettingFreeTrialDays  = "free_trial_days"
	SettingTrialSongLimit = "trial_song_limit"
)
