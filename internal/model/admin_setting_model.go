package model

import "time"

type AdminSetting struct {
	Key       string    `gorm:"column:config_key;primaryKey;type:varchar(100)"`
	Value     string    `gorm:"column:config_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AdminSetting) TableName() string {
	return "admin_config"
}
