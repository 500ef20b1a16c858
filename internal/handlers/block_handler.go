package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/agendafacil/agenda-saas/internal/domain/agenda"
	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

// Bloqueios pontuais (férias, afastamentos) de um profissional

type BlockHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewBlockHandler(db *gorm.DB, repo domain.Repository) *BlockHandler {
	return &BlockHandler{db: db, repo: repo}
}

// --------- Requests ---------

type CreateBlockRequest struct {
	StartAt string `json:"start_at" binding:"required"`
	EndAt   string `json:"end_at" binding:"required"`
	Reason  string `json:"reason"`
}

type UpdateBlockRequest struct {
	StartAt *string `json:"start_at,omitempty"`
	EndAt   *string `json:"end_at,omitempty"`
	Reason  *string `json:"reason,omitempty"`
}

// --------- Handlers ---------

func (h *BlockHandler) List(c *gin.Context) {
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

	var tenant models.Tenant
	h.db.First(&tenant, tenantID)

	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := parseDateTimeInTenant(&tenant, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "parâmetro from inválido")
			return
		}
		from = &parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := parseDateTimeInTenant(&tenant, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "parâmetro to inválido")
			return
		}
		to = &parsed
	}

	blocks, err := h.repo.ListBlocks(c.Request.Context(), providerID, from, to)
	if err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "erro ao listar bloqueios")
		return
	}

	httpresp.List(c, blocks)
}

func (h *BlockHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	providerID, ok := parseUintParam(c.Param("provider_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_provider_id", "provider_id inválido")
		return
	}

	if _, err := h.repo.GetProvider(c.Request.Context(), tenantID, providerID); err != nil {
		httperr.NotFound(c, "provider_not_found", "profissional não encontrado")
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var tenant models.Tenant
	h.db.First(&tenant, tenantID)

	startAt, err := parseDateTimeInTenant(&tenant, req.StartAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "start_at inválido")
		return
	}
	endAt, err := parseDateTimeInTenant(&tenant, req.EndAt)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "end_at inválido")
		return
	}

	if err := domain.ValidateInterval(startAt, endAt); err != nil {
		mapAgendaError(c, err)
		return
	}

	block := models.ProfessionalBlock{
		TenantID:   tenantID,
		ProviderID: providerID,
		StartAt:    startAt,
		EndAt:      endAt,
		Reason:     req.Reason,
		CreatedBy:  userID,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "erro ao criar bloqueio")
		return
	}

	httpresp.Created(c, block)
}

func (h *BlockHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var block models.ProfessionalBlock
	if err := h.db.
		Where("id = ? AND tenant_id = ? AND provider_id = ?",
			c.Param("id"), tenantID, c.Param("provider_id")).
		First(&block).Error; err != nil {

		httperr.NotFound(c, "block_not_found", "bloqueio não encontrado")
		return
	}

	var req UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var tenant models.Tenant
	h.db.First(&tenant, tenantID)

	if req.StartAt != nil {
		parsed, err := parseDateTimeInTenant(&tenant, *req.StartAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "start_at inválido")
			return
		}
		block.StartAt = parsed
	}
	if req.EndAt != nil {
		parsed, err := parseDateTimeInTenant(&tenant, *req.EndAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "end_at inválido")
			return
		}
		block.EndAt = parsed
	}
	if req.Reason != nil {
		block.Reason = *req.Reason
	}

	if err := domain.ValidateInterval(block.StartAt, block.EndAt); err != nil {
		mapAgendaError(c, err)
		return
	}

	if err := h.db.Save(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_update_block", "erro ao atualizar bloqueio")
		return
	}

	httpresp.OK(c, block)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	res := h.db.
		Where("id = ? AND tenant_id = ? AND provider_id = ?",
			c.Param("id"), tenantID, c.Param("provider_id")).
		Delete(&models.ProfessionalBlock{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_block", "erro ao remover bloqueio")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "block_not_found", "bloqueio não encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
