package models

import "time"

type Provider struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	PersonID uint   `json:"person_id"`
	Person   Person `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"person"`

	// serviços que o profissional pode executar
	ServiceIDs []uint `gorm:"serializer:json;type:jsonb" json:"service_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
