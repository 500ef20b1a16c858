package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/audit"
	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
	"github.com/agendafacil/agenda-saas/internal/payments"
)

type TransactionHandler struct {
	db      *gorm.DB
	gateway *payments.Gateway
	audit   *audit.Dispatcher
	commSvc *CommissionService
}

func NewTransactionHandler(
	db *gorm.DB,
	gateway *payments.Gateway,
	auditDispatcher *audit.Dispatcher,
	commSvc *CommissionService,
) *TransactionHandler {
	return &TransactionHandler{
		db:      db,
		gateway: gateway,
		audit:   auditDispatcher,
		commSvc: commSvc,
	}
}

// --------- Requests ---------

type CreateTransactionRequest struct {
	Type            string  `json:"type" binding:"required,oneof=IN OUT"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	Description     string  `json:"description"`
	OriginID        uint    `json:"origin_id" binding:"required"`
	CategoryID      uint    `json:"category_id" binding:"required"`
	PaymentMethodID uint    `json:"payment_method_id" binding:"required"`
	ReferenceType   string  `json:"reference_type"`
	ReferenceID     *uint   `json:"reference_id"`
	ServicePriceID  *uint   `json:"service_price_id"`
	OccurredAt      *string `json:"occurred_at"`

	// comissão opcional gerada junto com a transação IN
	ProviderID *uint `json:"provider_id"`
	ServiceID  *uint `json:"service_id"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

// --------- Handlers ---------

func (h *TransactionHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.
		Preload("Origin").
		Preload("Category").
		Preload("PaymentMethod").
		Where("tenant_id = ?", tenantID)

	if txType := c.Query("type"); txType != "" {
		q = q.Where("type = ?", txType)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("occurred_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("occurred_at <= ?", to)
	}

	var transactions []models.FinancialTransaction
	if err := q.Order("occurred_at DESC").Find(&transactions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_transactions", "erro ao listar transações")
		return
	}

	httpresp.List(c, transactions)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var tx models.FinancialTransaction
	if err := h.db.
		Preload("Origin").
		Preload("Category").
		Preload("PaymentMethod").
		Preload("Commissions").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&tx).Error; err != nil {

		httperr.NotFound(c, "transaction_not_found", "transação não encontrada")
		return
	}

	httpresp.OK(c, tx)
}

// Create grava a transação e, quando há profissional vinculado numa
// entrada, gera a comissão na mesma transação de banco
func (h *TransactionHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		var tenant models.Tenant
		h.db.First(&tenant, tenantID)
		parsed, err := parseDateTimeInTenant(&tenant, *req.OccurredAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "occurred_at inválido")
			return
		}
		occurredAt = parsed
	}

	var count int64
	h.db.Model(&models.FinancialOrigin{}).
		Where("id = ? AND tenant_id = ?", req.OriginID, tenantID).Count(&count)
	if count == 0 {
		httperr.UnprocessableEntity(c, "origin_not_found", "origem financeira não encontrada")
		return
	}
	h.db.Model(&models.FinancialCategory{}).
		Where("id = ? AND tenant_id = ?", req.CategoryID, tenantID).Count(&count)
	if count == 0 {
		httperr.UnprocessableEntity(c, "category_not_found", "categoria não encontrada")
		return
	}
	h.db.Model(&models.PaymentMethod{}).
		Where("id = ? AND tenant_id = ?", req.PaymentMethodID, tenantID).Count(&count)
	if count == 0 {
		httperr.UnprocessableEntity(c, "payment_method_not_found", "forma de pagamento não encontrada")
		return
	}

	tx := models.FinancialTransaction{
		TenantID:        tenantID,
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		OriginID:        req.OriginID,
		CategoryID:      req.CategoryID,
		PaymentMethodID: req.PaymentMethodID,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		ServicePriceID:  req.ServicePriceID,
		Status:          models.TransactionStatusPending,
		OccurredAt:      occurredAt,
		CreatedBy:       userID,
	}

	err := h.db.Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Create(&tx).Error; err != nil {
			return err
		}

		if req.Type == models.TransactionTypeIn && req.ProviderID != nil {
			return h.commSvc.CreateFromTransaction(dbtx, &tx, *req.ProviderID, req.ServiceID)
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_transaction", "erro ao criar transação")
		return
	}

	txID := tx.ID
	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "transaction_created",
		Entity:   "financial_transaction",
		EntityID: &txID,
	})

	h.db.Preload("Origin").Preload("Category").Preload("PaymentMethod").
		Preload("Commissions").First(&tx, tx.ID)

	httpresp.Created(c, tx)
}

func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var tx models.FinancialTransaction
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&tx).Error; err != nil {

		httperr.NotFound(c, "transaction_not_found", "transação não encontrada")
		return
	}

	var req UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if tx.Status == models.TransactionStatusCancelled {
		httperr.UnprocessableEntity(c, "transaction_cancelled", "transação cancelada não pode mudar de status")
		return
	}

	tx.Status = req.Status
	if err := h.db.Save(&tx).Error; err != nil {
		httperr.Internal(c, "failed_to_update_transaction", "erro ao atualizar transação")
		return
	}

	httpresp.OK(c, tx)
}

// PaymentLink gera o link de checkout no Mercado Pago para uma entrada
func (h *TransactionHandler) PaymentLink(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	if !h.gateway.Enabled() {
		httperr.UnprocessableEntity(c, "payments_disabled", "integração de pagamentos não configurada")
		return
	}

	var tx models.FinancialTransaction
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&tx).Error; err != nil {

		httperr.NotFound(c, "transaction_not_found", "transação não encontrada")
		return
	}

	if tx.Type != models.TransactionTypeIn {
		httperr.UnprocessableEntity(c, "invalid_transaction_type", "link de pagamento só vale para entradas")
		return
	}
	if tx.Status != models.TransactionStatusPending {
		httperr.UnprocessableEntity(c, "transaction_not_pending", "transação já liquidada ou cancelada")
		return
	}

	url, err := h.gateway.PaymentLink(c.Request.Context(), &tx, c.Query("payer_email"))
	if err != nil {
		httperr.Internal(c, "failed_to_create_payment_link", "erro ao criar link de pagamento")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_url": url})
}
