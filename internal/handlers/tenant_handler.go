package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/models"
	"github.com/agendafacil/agenda-saas/internal/timezone"
)

// Rotas administrativas: só o papel admin chega aqui

type TenantHandler struct {
	db *gorm.DB
}

func NewTenantHandler(db *gorm.DB) *TenantHandler {
	return &TenantHandler{db: db}
}

// --------- Requests ---------

type CreateTenantRequest struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	Document  string `json:"document"`
	Phone     string `json:"phone"`
	Timezone  string `json:"timezone"`
	ModuleIDs []uint `json:"module_ids"`
}

type UpdateTenantRequest struct {
	Name      *string `json:"name,omitempty"`
	Document  *string `json:"document,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	ModuleIDs *[]uint `json:"module_ids,omitempty"`
}

// --------- Handlers ---------

func (h *TenantHandler) List(c *gin.Context) {
	var tenants []models.Tenant
	if err := h.db.Order("name ASC").Find(&tenants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_tenants"})
		return
	}

	httpresp.List(c, tenants)
}

func (h *TenantHandler) Get(c *gin.Context) {
	var tenant models.Tenant
	if err := h.db.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant_not_found"})
		return
	}

	var activations []models.TenantModule
	h.db.Preload("Module").Where("tenant_id = ?", tenant.ID).Find(&activations)

	c.JSON(http.StatusOK, gin.H{
		"tenant":  tenant,
		"modules": activations,
	})
}

// Create cria o tenant e ativa os módulos numa única transação
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Tenant{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "slug_already_exists"})
		return
	}

	tz := req.Timezone
	if !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	var tenant models.Tenant

	err := h.db.Transaction(func(tx *gorm.DB) error {
		tenant = models.Tenant{
			Name:     req.Name,
			Slug:     slug,
			Document: req.Document,
			Phone:    req.Phone,
			Timezone: tz,
			Active:   true,
		}

		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		for _, moduleID := range req.ModuleIDs {
			activation := models.TenantModule{
				TenantID: tenant.ID,
				ModuleID: moduleID,
				Active:   true,
			}
			if err := tx.Create(&activation).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_tenant"})
		return
	}

	httpresp.Created(c, tenant)
}

func (h *TenantHandler) Update(c *gin.Context) {
	var tenant models.Tenant
	if err := h.db.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant_not_found"})
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Document != nil {
		tenant.Document = *req.Document
	}
	if req.Phone != nil {
		tenant.Phone = *req.Phone
	}
	if req.Timezone != nil && timezone.IsValid(*req.Timezone) {
		tenant.Timezone = *req.Timezone
	}
	if req.Active != nil {
		tenant.Active = *req.Active
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&tenant).Error; err != nil {
			return err
		}

		if req.ModuleIDs != nil {
			if err := tx.Where("tenant_id = ?", tenant.ID).
				Delete(&models.TenantModule{}).Error; err != nil {
				return err
			}
			for _, moduleID := range *req.ModuleIDs {
				activation := models.TenantModule{
					TenantID: tenant.ID,
					ModuleID: moduleID,
					Active:   true,
				}
				if err := tx.Create(&activation).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_tenant"})
		return
	}

	httpresp.OK(c, tenant)
}

func (h *TenantHandler) Destroy(c *gin.Context) {
	ids, ok := batchIDsFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	result := httpresp.BatchDeleteResponse{Deleted: []uint{}, NotFound: []uint{}}

	for _, id := range ids {
		res := h.db.Delete(&models.Tenant{}, id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_tenant"})
			return
		}
		if res.RowsAffected > 0 {
			result.Deleted = append(result.Deleted, id)
		} else {
			result.NotFound = append(result.NotFound, id)
		}
	}

	httpresp.OK(c, result)
}
