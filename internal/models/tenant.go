package models

import "time"

type Tenant struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Document string `gorm:"size:20" json:"document"`
	Phone    string `gorm:"size:20" json:"phone"`
	Timezone string `gorm:"size:50" json:"timezone"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Module struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Key    string `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TenantModule ativa um módulo para um tenant
type TenantModule struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"uniqueIndex:idx_tenant_module" json:"tenant_id"`
	ModuleID uint   `gorm:"uniqueIndex:idx_tenant_module" json:"module_id"`
	Module   Module `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"module"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
