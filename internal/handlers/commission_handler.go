package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/audit"
	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type CommissionHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCommissionHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *CommissionHandler {
	return &CommissionHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type PayCommissionRequest struct {
	PaymentMethodID uint       `json:"payment_method_id" binding:"required"`
	CategoryID      uint       `json:"category_id" binding:"required"`
	OriginID        uint       `json:"origin_id" binding:"required"`
	OccurredAt      *time.Time `json:"occurred_at"`
}

// --------- Handlers ---------

func (h *CommissionHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.
		Preload("Provider.Person.User").
		Preload("Transaction").
		Where("tenant_id = ?", tenantID)

	if providerID := c.Query("provider_id"); providerID != "" {
		q = q.Where("provider_id = ?", providerID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var commissions []models.Commission
	if err := q.Order("created_at DESC").Find(&commissions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_commissions", "erro ao listar comissões")
		return
	}

	httpresp.List(c, commissions)
}

func (h *CommissionHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var commission models.Commission
	if err := h.db.
		Preload("Provider.Person.User").
		Preload("Transaction").
		Preload("PaymentTransaction").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&commission).Error; err != nil {

		httperr.NotFound(c, "commission_not_found", "comissão não encontrada")
		return
	}

	httpresp.OK(c, commission)
}

// Pay liquida a comissão: cria a transação OUT do repasse e marca a
// comissão como paga, tudo ou nada
func (h *CommissionHandler) Pay(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var commission models.Commission
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&commission).Error; err != nil {

		httperr.NotFound(c, "commission_not_found", "comissão não encontrada")
		return
	}

	if commission.Status != models.CommissionStatusPending {
		httperr.UnprocessableEntity(c, "commission_not_pending", "só comissões pendentes podem ser pagas")
		return
	}

	var req PayCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		payout := models.FinancialTransaction{
			TenantID:        tenantID,
			Type:            models.TransactionTypeOut,
			Amount:          commission.CommissionAmount,
			Description:     "Pagamento de comissão",
			OriginID:        req.OriginID,
			CategoryID:      req.CategoryID,
			PaymentMethodID: req.PaymentMethodID,
			ReferenceType:   "commission",
			ReferenceID:     &commission.ID,
			Status:          models.TransactionStatusConfirmed,
			OccurredAt:      occurredAt,
			CreatedBy:       userID,
		}
		if err := tx.Create(&payout).Error; err != nil {
			return err
		}

		now := time.Now()
		commission.Status = models.CommissionStatusPaid
		commission.PaidAt = &now
		commission.PaymentTransactionID = &payout.ID

		return tx.Save(&commission).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_pay_commission", "erro ao pagar comissão")
		return
	}

	commissionID := commission.ID
	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "commission_paid",
		Entity:   "commission",
		EntityID: &commissionID,
	})

	httpresp.OK(c, commission)
}

// Cancel só vale para comissões ainda não pagas
func (h *CommissionHandler) Cancel(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var commission models.Commission
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&commission).Error; err != nil {

		httperr.NotFound(c, "commission_not_found", "comissão não encontrada")
		return
	}

	if commission.Status == models.CommissionStatusPaid {
		httperr.UnprocessableEntity(c, "commission_already_paid", "comissão paga não pode ser cancelada")
		return
	}

	commission.Status = models.CommissionStatusCancelled
	if err := h.db.Save(&commission).Error; err != nil {
		httperr.Internal(c, "failed_to_cancel_commission", "erro ao cancelar comissão")
		return
	}

	commissionID := commission.ID
	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "commission_cancelled",
		Entity:   "commission",
		EntityID: &commissionID,
	})

	httpresp.OK(c, commission)
}

// --------- Configuração de taxas ---------

type SaveCommissionConfigRequest struct {
	ProviderID     uint    `json:"provider_id" binding:"required"`
	ServiceID      *uint   `json:"service_id"`
	OriginID       *uint   `json:"origin_id"`
	CommissionRate float64 `json:"commission_rate" binding:"required,gte=0,lte=100"`
}

func (h *CommissionHandler) ListConfigs(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.Where("tenant_id = ?", tenantID)
	if providerID := c.Query("provider_id"); providerID != "" {
		q = q.Where("provider_id = ?", providerID)
	}

	var configs []models.ProviderCommissionConfig
	if err := q.Order("provider_id ASC").Find(&configs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_configs", "erro ao listar configurações")
		return
	}

	httpresp.List(c, configs)
}

// SaveConfig desativa a config vigente do mesmo escopo antes de criar a nova
func (h *CommissionHandler) SaveConfig(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req SaveCommissionConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.Provider{}).
		Where("id = ? AND tenant_id = ?", req.ProviderID, tenantID).
		Count(&count)
	if count == 0 {
		httperr.NotFound(c, "provider_not_found", "profissional não encontrado")
		return
	}

	var config models.ProviderCommissionConfig

	err := h.db.Transaction(func(tx *gorm.DB) error {
		scope := tx.Model(&models.ProviderCommissionConfig{}).
			Where("tenant_id = ? AND provider_id = ? AND active = ?",
				tenantID, req.ProviderID, true)

		if req.ServiceID != nil {
			scope = scope.Where("service_id = ?", *req.ServiceID)
		} else if req.OriginID != nil {
			scope = scope.Where("service_id IS NULL AND origin_id = ?", *req.OriginID)
		} else {
			scope = scope.Where("service_id IS NULL AND origin_id IS NULL")
		}

		if err := scope.Update("active", false).Error; err != nil {
			return err
		}

		config = models.ProviderCommissionConfig{
			TenantID:       tenantID,
			ProviderID:     req.ProviderID,
			ServiceID:      req.ServiceID,
			OriginID:       req.OriginID,
			CommissionRate: req.CommissionRate,
			Active:         true,
		}
		return tx.Create(&config).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_config", "erro ao salvar configuração")
		return
	}

	httpresp.Created(c, config)
}

func (h *CommissionHandler) DeleteConfig(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	res := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		Delete(&models.ProviderCommissionConfig{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_config", "erro ao remover configuração")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "config_not_found", "configuração não encontrada")
		return
	}

	c.JSON(200, gin.H{"status": "ok"})
}
