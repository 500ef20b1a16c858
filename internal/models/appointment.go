package models

import "time"

type StatusAgenda struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Key  string `gorm:"size:50;uniqueIndex;not null" json:"key"`
	Name string `gorm:"size:100;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Appointment struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index:idx_appt_tenant_provider_start;index:idx_appt_tenant_range" json:"tenant_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	ProviderID uint     `gorm:"index:idx_appt_tenant_provider_start" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"provider"`

	ClientID uint `json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	// DateEnd é sempre derivado de DateStart + Service.DurationMinutes
	DateStart time.Time `gorm:"index:idx_appt_tenant_provider_start;index:idx_appt_tenant_range" json:"date_start"`
	DateEnd   time.Time `gorm:"index:idx_appt_tenant_range" json:"date_end"`

	StatusAgendaID *uint         `json:"status_agenda_id"`
	StatusAgenda   *StatusAgenda `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"status_agenda,omitempty"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
