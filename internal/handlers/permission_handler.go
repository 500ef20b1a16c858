package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type PermissionHandler struct {
	db       *gorm.DB
	resolver *middleware.PermissionResolver
}

func NewPermissionHandler(db *gorm.DB, resolver *middleware.PermissionResolver) *PermissionHandler {
	return &PermissionHandler{db: db, resolver: resolver}
}

// --------- Requests ---------

type SaveUserPermissionsRequest struct {
	PermissionIDs []uint `json:"permission_ids" binding:"required"`
}

// --------- Handlers ---------

// ListCatalog devolve o catálogo completo de permissões
func (h *PermissionHandler) ListCatalog(c *gin.Context) {
	var permissions []models.Permission
	if err := h.db.Preload("Module").Order("key ASC").Find(&permissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_permissions"})
		return
	}

	httpresp.List(c, permissions)
}

// GetUserPermissions lista as permissões concedidas a um usuário do tenant
func (h *PermissionHandler) GetUserPermissions(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	userID, ok := parseUintParam(c.Param("user_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}

	var grants []models.UserPermission
	if err := h.db.
		Preload("Permission").
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Find(&grants).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_permissions"})
		return
	}

	httpresp.List(c, grants)
}

// SaveUserPermissions substitui o conjunto de permissões do usuário e
// invalida o cache
func (h *PermissionHandler) SaveUserPermissions(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	userID, ok := parseUintParam(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND tenant_id = ?", userID, tenantID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	var req SaveUserPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND user_id = ?", tenantID, userID).
			Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}

		for _, permID := range req.PermissionIDs {
			grant := models.UserPermission{
				TenantID:     tenantID,
				UserID:       userID,
				PermissionID: permID,
			}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_permissions"})
		return
	}

	h.resolver.Invalidate(c.Request.Context(), tenantID, userID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
