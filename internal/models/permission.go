package models

import "time"

type Permission struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Key      string  `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Name     string  `gorm:"size:100;not null" json:"name"`
	ModuleID *uint   `json:"module_id"`
	Module   *Module `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"module,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserPermission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TenantID     uint       `gorm:"uniqueIndex:idx_user_perm" json:"tenant_id"`
	UserID       uint       `gorm:"uniqueIndex:idx_user_perm" json:"user_id"`
	PermissionID uint       `gorm:"uniqueIndex:idx_user_perm" json:"permission_id"`
	Permission   Permission `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"permission"`

	CreatedAt time.Time `json:"created_at"`
}
