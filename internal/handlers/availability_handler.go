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

type AvailabilityHandler struct {
	db     *gorm.DB
	syncUC *usecase.SyncAvailabilities
	repo   domain.Repository
}

func NewAvailabilityHandler(
	db *gorm.DB,
	syncUC *usecase.SyncAvailabilities,
	repo domain.Repository,
) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, syncUC: syncUC, repo: repo}
}

// --------- Requests ---------

type WindowRow struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    *bool  `json:"active"`
}

type SyncWindowsRequest struct {
	Windows []WindowRow `json:"windows" binding:"required,min=1"`
}

func (r SyncWindowsRequest) toUpserts() []domain.WindowUpsert {
	rows := make([]domain.WindowUpsert, 0, len(r.Windows))
	for _, w := range r.Windows {
		active := true
		if w.Active != nil {
			active = *w.Active
		}
		rows = append(rows, domain.WindowUpsert{
			Weekday:   w.Weekday,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			Active:    active,
		})
	}
	return rows
}

// --------- Handlers ---------

func (h *AvailabilityHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	providerID, ok := parseUintParam(c.Param("provider_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_provider_id", "provider_id inválido")
		return
	}

	if _, err := h.repo.GetProvider(c.Request.Context(), tenantID, providerID); err != nil {
		httperr.NotFound(c, "provider_not_found", "profissional não encontrado")
		return
	}

	windows, err := h.repo.ListAvailabilities(c.Request.Context(), providerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_availabilities", "erro ao listar disponibilidades")
		return
	}

	httpresp.List(c, windows)
}

// Sync faz o upsert por weekday — idempotente, lote inteiro numa transação
func (h *AvailabilityHandler) Sync(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	providerID, ok := parseUintParam(c.Param("provider_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_provider_id", "provider_id inválido")
		return
	}

	var req SyncWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	windows, err := h.syncUC.Execute(c.Request.Context(), tenantID, providerID, req.toUpserts())
	if err != nil {
		mapAgendaError(c, err)
		return
	}

	httpresp.OK(c, windows)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	providerID, ok := parseUintParam(c.Param("provider_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_provider_id", "provider_id inválido")
		return
	}

	if _, err := h.repo.GetProvider(c.Request.Context(), tenantID, providerID); err != nil {
		httperr.NotFound(c, "provider_not_found", "profissional não encontrado")
		return
	}

	res := h.db.
		Where("provider_id = ? AND id = ?", providerID, c.Param("id")).
		Delete(&models.ProfessionalAvailability{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_availability", "erro ao remover disponibilidade")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "availability_not_found", "disponibilidade não encontrada")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
