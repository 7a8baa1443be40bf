package models

import "time"

const SettingsID = "main"

// Settings - единственный документ настроек сайта
type Settings struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	SiteName     string    `json:"siteName"`
	SupportEmail string    `json:"supportEmail"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
