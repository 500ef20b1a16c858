package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type ModuleHandler struct {
	db *gorm.DB
}

func NewModuleHandler(db *gorm.DB) *ModuleHandler {
	return &ModuleHandler{db: db}
}

func (h *ModuleHandler) List(c *gin.Context) {
	var modules []models.Module
	if err := h.db.Where("active = ?", true).Order("name ASC").Find(&modules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_modules"})
		return
	}

	httpresp.List(c, modules)
}

// ListForTenant devolve os módulos ativos para o tenant do chamador
func (h *ModuleHandler) ListForTenant(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var activations []models.TenantModule
	if err := h.db.
		Preload("Module").
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Find(&activations).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_modules"})
		return
	}

	httpresp.List(c, activations)
}
