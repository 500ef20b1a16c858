package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type FinancialReportHandler struct {
	db *gorm.DB
}

func NewFinancialReportHandler(db *gorm.DB) *FinancialReportHandler {
	return &FinancialReportHandler{db: db}
}

type categoryTotal struct {
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Type         string  `json:"type"`
	Total        float64 `json:"total"`
}

// Summary totaliza entradas, saídas e saldo do período, ignorando
// transações canceladas
func (h *FinancialReportHandler) Summary(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		httperr.BadRequest(c, "missing_period", "parâmetros from e to são obrigatórios")
		return
	}

	base := h.db.Model(&models.FinancialTransaction{}).
		Where("tenant_id = ? AND status <> ? AND occurred_at BETWEEN ? AND ?",
			tenantID, models.TransactionStatusCancelled, from, to)

	var totalIn, totalOut float64

	if err := base.Session(&gorm.Session{}).
		Where("type = ?", models.TransactionTypeIn).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalIn).Error; err != nil {

		httperr.Internal(c, "failed_to_build_report", "erro ao montar relatório")
		return
	}

	if err := base.Session(&gorm.Session{}).
		Where("type = ?", models.TransactionTypeOut).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalOut).Error; err != nil {

		httperr.Internal(c, "failed_to_build_report", "erro ao montar relatório")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":      from,
		"to":        to,
		"total_in":  totalIn,
		"total_out": totalOut,
		"balance":   totalIn - totalOut,
	})
}

// ByCategory agrupa o período por categoria e tipo
func (h *FinancialReportHandler) ByCategory(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		httperr.BadRequest(c, "missing_period", "parâmetros from e to são obrigatórios")
		return
	}

	var totals []categoryTotal
	err := h.db.Model(&models.FinancialTransaction{}).
		Select(`financial_transactions.category_id,
			financial_categories.name AS category_name,
			financial_transactions.type,
			COALESCE(SUM(financial_transactions.amount), 0) AS total`).
		Joins("JOIN financial_categories ON financial_categories.id = financial_transactions.category_id").
		Where("financial_transactions.tenant_id = ? AND financial_transactions.status <> ? AND financial_transactions.occurred_at BETWEEN ? AND ?",
			tenantID, models.TransactionStatusCancelled, from, to).
		Group("financial_transactions.category_id, financial_categories.name, financial_transactions.type").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "erro ao montar relatório")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from": from,
		"to":   to,
		"rows": totals,
	})
}

// PendingCommissions totaliza o passivo de comissões por profissional
func (h *FinancialReportHandler) PendingCommissions(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	type providerTotal struct {
		ProviderID uint    `json:"provider_id"`
		Count      int64   `json:"count"`
		Total      float64 `json:"total"`
	}

	var totals []providerTotal
	err := h.db.Model(&models.Commission{}).
		Select("provider_id, COUNT(*) AS count, COALESCE(SUM(commission_amount), 0) AS total").
		Where("tenant_id = ? AND status = ?", tenantID, models.CommissionStatusPending).
		Group("provider_id").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		httperr.Internal(c, "failed_to_build_report", "erro ao montar relatório")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": totals})
}
