package models

import "time"

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	TenantID *uint   `gorm:"index" json:"tenant_id"`
	Tenant   *Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"tenant,omitempty"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'user'" json:"role"`
	Active       bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Person carrega os dados pessoais de um usuário (documentos, endereço, foto)
type Person struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	CPF       string     `gorm:"size:14" json:"cpf"`
	RG        string     `gorm:"size:20" json:"rg"`
	BirthDate *time.Time `json:"birth_date"`
	Phone     string     `gorm:"size:20" json:"phone"`

	AddressStreet       string `gorm:"size:255" json:"address_street"`
	AddressNumber       string `gorm:"size:20" json:"address_number"`
	AddressComplement   string `gorm:"size:100" json:"address_complement"`
	AddressNeighborhood string `gorm:"size:100" json:"address_neighborhood"`
	AddressCity         string `gorm:"size:100" json:"address_city"`
	AddressState        string `gorm:"size:2" json:"address_state"`
	AddressZip          string `gorm:"size:10" json:"address_zip"`

	PhotoURL string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
