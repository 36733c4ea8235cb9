package model

import "time"

type MusicGeneration struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	UserID            uint      `gorm:"not null;index"`
	OriginalVoicePath string    `gorm:"type:varchar(500)"`
	InstrumentalPath  string    `gorm:"type:varchar(500)"`
	BeatPath          string    `gorm:"type:varchar(500)"`
	VocalsPath        string    `gorm:"type:varchar(500)"`
	ChorusPath        string    `gorm:"type:varchar(500)"`
	FinalSongPath     string    `gorm:"type:varchar(500)"`
	SongStructure     string    `gorm:"type:varchar(50);default:'verse'"`
	NumVerses         int       `gorm:"default:1"`
	HasBridge         bool      `gorm:"default:false"`
	HasChorus         bool      `gorm:"default:false"`
	BPM               int       `gorm:"default:90"`
	ServiceUsed       string    `gorm:"type:varchar(50)"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
}

func (MusicGeneration) TableName() string {
	return "music_generations"
}
