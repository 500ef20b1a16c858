package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
	usecase "github.com/agendafacil/agenda-saas/internal/usecase/agenda"
)

type BusinessHourHandler struct {
	db     *gorm.DB
	syncUC *usecase.SyncBusinessHours
	repo   domain.Repository
}

func NewBusinessHourHandler(
	db *gorm.DB,
	syncUC *usecase.SyncBusinessHours,
	repo domain.Repository,
) *BusinessHourHandler {
	return &BusinessHourHandler{db: db, syncUC: syncUC, repo: repo}
}

func (h *BusinessHourHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	hours, err := h.repo.ListBusinessHours(c.Request.Context(), tenantID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_business_hours", "erro ao listar horários de funcionamento")
		return
	}

	httpresp.List(c, hours)
}

func (h *BusinessHourHandler) Sync(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req SyncWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	hours, err := h.syncUC.Execute(c.Request.Context(), tenantID, req.toUpserts())
	if err != nil {
		mapAgendaError(c, err)
		return
	}

	httpresp.OK(c, hours)
}

func (h *BusinessHourHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	res := h.db.
		Where("tenant_id = ? AND id = ?", tenantID, c.Param("id")).
		Delete(&models.TenantBusinessHour{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_business_hour", "erro ao remover horário")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "business_hour_not_found", "horário não encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
