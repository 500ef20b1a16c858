package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type AuditLogHandler struct {
	db *gorm.DB
}

func NewAuditLogHandler(db *gorm.DB) *AuditLogHandler {
	return &AuditLogHandler{db: db}
}

func (h *AuditLogHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.Where("tenant_id = ?", tenantID)

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Limit(200).Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "erro ao listar auditoria")
		return
	}

	httpresp.List(c, logs)
}
