package handlers

import (
	"errors"

	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/models"
)

// CommissionService resolve a taxa e gera comissões a partir de
// transações de entrada
type CommissionService struct {
	db *gorm.DB
}

func NewCommissionService(db *gorm.DB) *CommissionService {
	return &CommissionService{db: db}
}

// ResolveRate busca a config mais específica primeiro:
// serviço > origem > padrão (service_id e origin_id nulos).
// Sem config nenhuma, a taxa é zero e não há comissão.
func (s *CommissionService) ResolveRate(
	tx *gorm.DB,
	tenantID uint,
	providerID uint,
	serviceID *uint,
	originID uint,
) (float64, bool, error) {

	var cfg models.ProviderCommissionConfig

	base := tx.Where("tenant_id = ? AND provider_id = ? AND active = ?",
		tenantID, providerID, true)

	if serviceID != nil {
		err := base.Session(&gorm.Session{}).
			Where("service_id = ?", *serviceID).
			First(&cfg).Error
		if err == nil {
			return cfg.CommissionRate, true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, err
		}
	}

	err := base.Session(&gorm.Session{}).
		Where("service_id IS NULL AND origin_id = ?", originID).
		First(&cfg).Error
	if err == nil {
		return cfg.CommissionRate, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	err = base.Session(&gorm.Session{}).
		Where("service_id IS NULL AND origin_id IS NULL").
		First(&cfg).Error
	if err == nil {
		return cfg.CommissionRate, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	return 0, false, nil
}

// CreateFromTransaction gera a comissão pendente de uma entrada.
// Deve rodar dentro da mesma transação de banco que criou a entrada.
func (s *CommissionService) CreateFromTransaction(
	tx *gorm.DB,
	financialTx *models.FinancialTransaction,
	providerID uint,
	serviceID *uint,
) error {

	rate, found, err := s.ResolveRate(
		tx,
		financialTx.TenantID,
		providerID,
		serviceID,
		financialTx.OriginID,
	)
	if err != nil {
		return err
	}
	if !found || rate <= 0 {
		return nil
	}

	commission := models.Commission{
		TenantID:         financialTx.TenantID,
		ProviderID:       providerID,
		TransactionID:    financialTx.ID,
		ReferenceType:    financialTx.ReferenceType,
		BaseAmount:       financialTx.Amount,
		CommissionRate:   rate,
		CommissionAmount: round2(financialTx.Amount * rate / 100),
		Status:           models.CommissionStatusPending,
	}
	if financialTx.ReferenceID != nil {
		commission.ReferenceID = *financialTx.ReferenceID
	}

	return tx.Create(&commission).Error
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
