package models

import "time"

type File struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	TenantID uint  `gorm:"index" json:"tenant_id"`
	UserID   *uint `json:"user_id"`

	Type         string `gorm:"size:50" json:"type"`
	Path         string `gorm:"size:255;not null" json:"path"`
	OriginalName string `gorm:"size:255" json:"original_name"`
	Mime         string `gorm:"size:100" json:"mime"`
	Size         int64  `json:"size"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
