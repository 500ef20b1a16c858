package models

import "time"

// Tipos e status de transação
const (
	TransactionTypeIn  = "IN"
	TransactionTypeOut = "OUT"

	TransactionStatusPending   = "PENDING"
	TransactionStatusConfirmed = "CONFIRMED"
	TransactionStatusCancelled = "CANCELLED"

	CommissionStatusPending   = "PENDING"
	CommissionStatusPaid      = "PAID"
	CommissionStatusCancelled = "CANCELLED"
)

type FinancialOrigin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"index" json:"tenant_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FinancialCategory struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TenantID      uint   `gorm:"index" json:"tenant_id"`
	Name          string `gorm:"size:100;not null" json:"name"`
	IsOperational bool   `gorm:"default:false" json:"is_operational"`
	Active        bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaymentMethod struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"index" json:"tenant_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FinancialTransaction struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index:idx_tx_tenant_type;index:idx_tx_tenant_occurred" json:"tenant_id"`

	Type   string  `gorm:"size:3;not null;index:idx_tx_tenant_type" json:"type"`
	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`

	Description string `gorm:"type:text" json:"description"`

	OriginID        uint              `json:"origin_id"`
	Origin          FinancialOrigin   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"origin"`
	CategoryID      uint              `json:"category_id"`
	Category        FinancialCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	PaymentMethodID uint              `json:"payment_method_id"`
	PaymentMethod   PaymentMethod     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"payment_method"`

	ReferenceType string `gorm:"size:50;index:idx_tx_reference" json:"reference_type"`
	ReferenceID   *uint  `gorm:"index:idx_tx_reference" json:"reference_id"`

	ServicePriceID *uint `json:"service_price_id"`

	Status     string    `gorm:"size:20;default:'PENDING';index:idx_tx_tenant_type" json:"status"`
	OccurredAt time.Time `gorm:"not null;index:idx_tx_tenant_occurred" json:"occurred_at"`

	CreatedBy uint `json:"created_by"`
	Creator   User `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"creator"`

	Commissions []Commission `gorm:"foreignKey:TransactionID" json:"commissions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Commission struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	ProviderID uint     `gorm:"index" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"provider"`

	TransactionID uint                 `json:"transaction_id"`
	Transaction   FinancialTransaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"transaction"`

	ReferenceType string `gorm:"size:50" json:"reference_type"`
	ReferenceID   uint   `json:"reference_id"`

	BaseAmount       float64 `gorm:"type:decimal(10,2);not null" json:"base_amount"`
	CommissionRate   float64 `gorm:"type:decimal(5,2);not null" json:"commission_rate"`
	CommissionAmount float64 `gorm:"type:decimal(10,2);not null" json:"commission_amount"`

	Status string     `gorm:"size:20;default:'PENDING'" json:"status"`
	PaidAt *time.Time `json:"paid_at"`

	PaymentTransactionID *uint                 `json:"payment_transaction_id"`
	PaymentTransaction   *FinancialTransaction `gorm:"foreignKey:PaymentTransactionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"payment_transaction,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderCommissionConfig define a taxa de comissão com hierarquia:
// service > origin > padrão (ambos nulos)
type ProviderCommissionConfig struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	ProviderID uint  `gorm:"index" json:"provider_id"`
	ServiceID  *uint `json:"service_id"`
	OriginID   *uint `json:"origin_id"`

	CommissionRate float64 `gorm:"type:decimal(5,2);not null" json:"commission_rate"`
	Active         bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
