package models

import "time"

type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	ModuleID uint   `json:"module_id"`
	Module   Module `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"module"`

	Name            string `gorm:"size:100;not null" json:"name"`
	Slug            string `gorm:"size:100" json:"slug"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	Active          bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServicePrice guarda o histórico de preços; apenas um ativo por serviço
type ServicePrice struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TenantID  uint `gorm:"index" json:"tenant_id"`
	ServiceID uint `gorm:"index" json:"service_id"`

	Price     float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency  string     `gorm:"size:3;default:'BRL'" json:"currency"`
	Active    bool       `gorm:"default:true" json:"active"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
