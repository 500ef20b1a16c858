package models

import "time"

// ProfessionalAvailability é a janela semanal recorrente do profissional.
// Weekday segue time.Weekday: 0 = domingo ... 6 = sábado.
// No máximo uma linha por (provider, weekday) — ver sync.
type ProfessionalAvailability struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"uniqueIndex:idx_provider_weekday;index:idx_provider_active" json:"provider_id"`

	Weekday   int    `gorm:"uniqueIndex:idx_provider_weekday" json:"weekday"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`
	Active    bool   `gorm:"default:true;index:idx_provider_active" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfessionalBlock é um intervalo fechado em que o profissional não atende
// (férias, afastamento)
type ProfessionalBlock struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TenantID   uint `gorm:"index" json:"tenant_id"`
	ProviderID uint `gorm:"index" json:"provider_id"`

	StartAt time.Time `gorm:"not null" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`
	Reason  string    `gorm:"size:255" json:"reason"`

	CreatedBy uint `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TenantBusinessHour é a janela semanal do tenant, independente de profissional
type TenantBusinessHour struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"uniqueIndex:idx_tenant_weekday" json:"tenant_id"`

	Weekday   int    `gorm:"uniqueIndex:idx_tenant_weekday" json:"weekday"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
