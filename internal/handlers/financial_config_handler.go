package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

// Cadastros auxiliares do financeiro: origens, categorias e formas de
// pagamento. CRUD simples escopado ao tenant.

type FinancialConfigHandler struct {
	db *gorm.DB
}

func NewFinancialConfigHandler(db *gorm.DB) *FinancialConfigHandler {
	return &FinancialConfigHandler{db: db}
}

// --------- Requests ---------

type NamedConfigRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

type CategoryRequest struct {
	Name          string `json:"name" binding:"required"`
	IsOperational *bool  `json:"is_operational"`
	Active        *bool  `json:"active"`
}

// --------- Origens ---------

func (h *FinancialConfigHandler) ListOrigins(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var origins []models.FinancialOrigin
	if err := h.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&origins).Error; err != nil {
		httperr.Internal(c, "failed_to_list_origins", "erro ao listar origens")
		return
	}
	httpresp.List(c, origins)
}

func (h *FinancialConfigHandler) CreateOrigin(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req NamedConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	origin := models.FinancialOrigin{TenantID: tenantID, Name: req.Name, Active: true}
	if req.Active != nil {
		origin.Active = *req.Active
	}

	if err := h.db.Create(&origin).Error; err != nil {
		httperr.Internal(c, "failed_to_create_origin", "erro ao criar origem")
		return
	}
	httpresp.Created(c, origin)
}

func (h *FinancialConfigHandler) UpdateOrigin(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var origin models.FinancialOrigin
	if err := h.db.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&origin).Error; err != nil {
		httperr.NotFound(c, "origin_not_found", "origem não encontrada")
		return
	}

	var req NamedConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	origin.Name = req.Name
	if req.Active != nil {
		origin.Active = *req.Active
	}

	if err := h.db.Save(&origin).Error; err != nil {
		httperr.Internal(c, "failed_to_update_origin", "erro ao atualizar origem")
		return
	}
	httpresp.OK(c, origin)
}

func (h *FinancialConfigHandler) DeleteOrigin(c *gin.Context) {
	h.deleteScoped(c, &models.FinancialOrigin{}, "origin_not_found", "origem não encontrada")
}

// --------- Categorias ---------

func (h *FinancialConfigHandler) ListCategories(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var categories []models.FinancialCategory
	if err := h.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "erro ao listar categorias")
		return
	}
	httpresp.List(c, categories)
}

func (h *FinancialConfigHandler) CreateCategory(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category := models.FinancialCategory{TenantID: tenantID, Name: req.Name, Active: true}
	if req.IsOperational != nil {
		category.IsOperational = *req.IsOperational
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "erro ao criar categoria")
		return
	}
	httpresp.Created(c, category)
}

func (h *FinancialConfigHandler) UpdateCategory(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var category models.FinancialCategory
	if err := h.db.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&category).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "categoria não encontrada")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category.Name = req.Name
	if req.IsOperational != nil {
		category.IsOperational = *req.IsOperational
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := h.db.Save(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", "erro ao atualizar categoria")
		return
	}
	httpresp.OK(c, category)
}

func (h *FinancialConfigHandler) DeleteCategory(c *gin.Context) {
	h.deleteScoped(c, &models.FinancialCategory{}, "category_not_found", "categoria não encontrada")
}

// --------- Formas de pagamento ---------

func (h *FinancialConfigHandler) ListPaymentMethods(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var methods []models.PaymentMethod
	if err := h.db.Where("tenant_id = ?", tenantID).Order("name ASC").Find(&methods).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payment_methods", "erro ao listar formas de pagamento")
		return
	}
	httpresp.List(c, methods)
}

func (h *FinancialConfigHandler) CreatePaymentMethod(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req NamedConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	method := models.PaymentMethod{TenantID: tenantID, Name: req.Name, Active: true}
	if req.Active != nil {
		method.Active = *req.Active
	}

	if err := h.db.Create(&method).Error; err != nil {
		httperr.Internal(c, "failed_to_create_payment_method", "erro ao criar forma de pagamento")
		return
	}
	httpresp.Created(c, method)
}

func (h *FinancialConfigHandler) UpdatePaymentMethod(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var method models.PaymentMethod
	if err := h.db.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&method).Error; err != nil {
		httperr.NotFound(c, "payment_method_not_found", "forma de pagamento não encontrada")
		return
	}

	var req NamedConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	method.Name = req.Name
	if req.Active != nil {
		method.Active = *req.Active
	}

	if err := h.db.Save(&method).Error; err != nil {
		httperr.Internal(c, "failed_to_update_payment_method", "erro ao atualizar forma de pagamento")
		return
	}
	httpresp.OK(c, method)
}

func (h *FinancialConfigHandler) DeletePaymentMethod(c *gin.Context) {
	h.deleteScoped(c, &models.PaymentMethod{}, "payment_method_not_found", "forma de pagamento não encontrada")
}

func (h *FinancialConfigHandler) deleteScoped(c *gin.Context, model any, code, message string) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	res := h.db.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).Delete(model)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete", "erro ao remover registro")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, code, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
