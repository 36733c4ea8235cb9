package model

import "time"

type SongUsage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"not null;index:idx_song_usage_user_day"`
	SongType  string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_song_usage_user_day"`
}

func (SongUsage) TableName() string {
	return "song_usage"
}
