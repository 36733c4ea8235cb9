package model

import "time"

type Subscription struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	UserID        uint      `gorm:"not null;index"`
	Plan          string    `gorm:"type:varchar(50);not null;index"`
	Amount        float64   `gorm:"type:decimal(10,2);default:0"`
	TransactionID *string   `gorm:"type:varchar(255)"`
	StartedAt     time.Time `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
