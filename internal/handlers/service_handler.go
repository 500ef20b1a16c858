package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	ModuleID        uint     `json:"module_id" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`
	Price           *float64 `json:"price"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	Price           *float64 `json:"price,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.Preload("Module").Where("tenant_id = ?", tenantID)

	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}
	if moduleID := c.Query("module_id"); moduleID != "" {
		q = q.Where("module_id = ?", moduleID)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var service models.Service
	if err := h.db.
		Preload("Module").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var price models.ServicePrice
	hasPrice := h.db.
		Where("service_id = ? AND active = ?", service.ID, true).
		Order("created_at DESC").
		First(&price).Error == nil

	resp := gin.H{"service": service}
	if hasPrice {
		resp["price"] = price
	}

	c.JSON(http.StatusOK, resp)
}

// Create exige que o módulo esteja ativo para o tenant
func (h *ServiceHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var count int64
	h.db.Model(&models.TenantModule{}).
		Where("tenant_id = ? AND module_id = ? AND active = ?", tenantID, req.ModuleID, true).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "module_not_active"})
		return
	}

	var service models.Service

	err := h.db.Transaction(func(tx *gorm.DB) error {
		service = models.Service{
			TenantID:        tenantID,
			ModuleID:        req.ModuleID,
			Name:            req.Name,
			Slug:            slugify(req.Name),
			DurationMinutes: req.DurationMinutes,
			Active:          true,
		}
		if err := tx.Create(&service).Error; err != nil {
			return err
		}

		if req.Price != nil {
			price := models.ServicePrice{
				TenantID:  tenantID,
				ServiceID: service.ID,
				Price:     *req.Price,
				Currency:  "BRL",
				Active:    true,
			}
			if err := tx.Create(&price).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	httpresp.Created(c, service)
}

// Update troca o preço desativando o vigente antes de criar o novo
func (h *ServiceHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var service models.Service
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_duration"})
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
		service.Slug = slugify(*req.Name)
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&service).Error; err != nil {
			return err
		}

		if req.Price != nil {
			if err := tx.Model(&models.ServicePrice{}).
				Where("service_id = ? AND active = ?", service.ID, true).
				Update("active", false).Error; err != nil {
				return err
			}

			price := models.ServicePrice{
				TenantID:  tenantID,
				ServiceID: service.ID,
				Price:     *req.Price,
				Currency:  "BRL",
				Active:    true,
			}
			if err := tx.Create(&price).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Destroy(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	ids, ok := batchIDsFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	result := httpresp.BatchDeleteResponse{Deleted: []uint{}, NotFound: []uint{}}

	for _, id := range ids {
		res := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Service{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
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

// --------- Preços ---------

func (h *ServiceHandler) ListPrices(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var prices []models.ServicePrice
	if err := h.db.
		Where("tenant_id = ? AND service_id = ?", tenantID, c.Param("id")).
		Order("created_at DESC").
		Find(&prices).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_prices"})
		return
	}

	httpresp.List(c, prices)
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")

	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
