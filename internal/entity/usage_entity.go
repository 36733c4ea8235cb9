package entity

import "time"

// UsageRecord logs one consumed generation. Rows are append-only; the
// daily quota is derived by counting them inside a UTC day window.
type UsageRecord struct {
	ID        uint
	UserID    uint
	SongType  string
	CreatedAt time.Time
}
