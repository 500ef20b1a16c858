package models

import "time"

type WhatsappInstance struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Number   string `gorm:"size:20" json:"number"`
	OwnerJid string `gorm:"size:100" json:"owner_jid"`
	Status   string `gorm:"size:20;default:'created'" json:"status"`

	CreatedBy uint `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
