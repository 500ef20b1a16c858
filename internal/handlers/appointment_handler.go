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
	usecase "github.com/agendafacil/agenda-saas/internal/usecase/agenda"
)

type AppointmentHandler struct {
	db *gorm.DB

	createUC    *usecase.CreateAppointment
	updateUC    *usecase.UpdateAppointment
	deleteUC    *usecase.DeleteAppointment
	getAgendaUC *usecase.GetAgenda
	checkSlotUC *usecase.CheckSlot

	repo domain.Repository
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *usecase.CreateAppointment,
	updateUC *usecase.UpdateAppointment,
	deleteUC *usecase.DeleteAppointment,
	getAgendaUC *usecase.GetAgenda,
	checkSlotUC *usecase.CheckSlot,
	repo domain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:          db,
		createUC:    createUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		getAgendaUC: getAgendaUC,
		checkSlotUC: checkSlotUC,
		repo:        repo,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ServiceID      uint   `json:"service_id" binding:"required"`
	ProviderID     uint   `json:"provider_id" binding:"required"`
	ClientID       uint   `json:"client_id" binding:"required"`
	DateStart      string `json:"date_start" binding:"required"`
	StatusAgendaID *uint  `json:"status_agenda_id"`
	Notes          string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ServiceID      *uint   `json:"service_id,omitempty"`
	ProviderID     *uint   `json:"provider_id,omitempty"`
	ClientID       *uint   `json:"client_id,omitempty"`
	DateStart      *string `json:"date_start,omitempty"`
	StatusAgendaID *uint   `json:"status_agenda_id,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// mapAgendaError traduz os códigos de negócio da agenda para HTTP:
// ausências viram 404, violações de regra viram 422, o resto 400
func mapAgendaError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "serviço não encontrado")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "agendamento não encontrado")
	case httperr.IsBusiness(err, "provider_not_found"):
		httperr.NotFound(c, "provider_not_found", "profissional não encontrado")
	case httperr.IsBusiness(err, "schedule_conflict"):
		httperr.UnprocessableEntity(c, "schedule_conflict", "horário em conflito com outro agendamento")
	case httperr.IsBusiness(err, "invalid_time_range"):
		httperr.UnprocessableEntity(c, "invalid_time_range", "intervalo de horário inválido")
	case httperr.IsBusiness(err, "invalid_weekday"):
		httperr.UnprocessableEntity(c, "invalid_weekday", "dia da semana inválido")
	case httperr.IsBusiness(err, "invalid_time_format"):
		httperr.UnprocessableEntity(c, "invalid_time_format", "horário deve estar no formato HH:MM:SS")
	default:
		httperr.BadRequest(c, "invalid_request", err.Error())
	}
}

func (h *AppointmentHandler) tenant(c *gin.Context) *models.Tenant {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		return nil
	}
	return &tenant
}

// --------- Handlers ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	tenant := h.tenant(c)

	filter := domain.AppointmentFilter{}

	if providerStr := c.Query("provider_id"); providerStr != "" {
		providerID, ok := parseUintParam(providerStr)
		if !ok {
			httperr.BadRequest(c, "invalid_provider_id", "provider_id inválido")
			return
		}
		filter.ProviderID = &providerID
	}

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := parseDateTimeInTenant(tenant, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "parâmetro from inválido")
			return
		}
		filter.DateStart = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := parseDateTimeInTenant(tenant, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "parâmetro to inválido")
			return
		}
		filter.DateEnd = &to
	}

	appointments, err := h.repo.ListAppointments(c.Request.Context(), tenantID, filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "erro ao listar agendamentos")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id inválido")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), tenantID, id)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "agendamento não encontrado")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	dateStart, err := parseDateTimeInTenant(h.tenant(c), req.DateStart)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date_start inválido")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		TenantID:       tenantID,
		UserID:         userID,
		ServiceID:      req.ServiceID,
		ProviderID:     req.ProviderID,
		ClientID:       req.ClientID,
		DateStart:      dateStart,
		StatusAgendaID: req.StatusAgendaID,
		Notes:          req.Notes,
	})
	if err != nil {
		mapAgendaError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id inválido")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var dateStart *time.Time
	if req.DateStart != nil {
		parsed, err := parseDateTimeInTenant(h.tenant(c), *req.DateStart)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "date_start inválido")
			return
		}
		dateStart = &parsed
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), usecase.UpdateAppointmentInput{
		TenantID:       tenantID,
		UserID:         userID,
		AppointmentID:  id,
		ServiceID:      req.ServiceID,
		ProviderID:     req.ProviderID,
		ClientID:       req.ClientID,
		DateStart:      dateStart,
		StatusAgendaID: req.StatusAgendaID,
		Notes:          req.Notes,
	})
	if err != nil {
		mapAgendaError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Destroy(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "id inválido")
		return
	}

	found, err := h.deleteUC.Execute(c.Request.Context(), tenantID, userID, id)
	if err != nil {
		httperr.Internal(c, "failed_to_delete_appointment", "erro ao remover agendamento")
		return
	}
	if !found {
		httperr.NotFound(c, "appointment_not_found", "agendamento não encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetAgenda devolve a visão completa da agenda de um profissional
func (h *AppointmentHandler) GetAgenda(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	tenant := h.tenant(c)

	providerID, ok := parseUintParam(c.Param("provider_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_provider_id", "provider_id inválido")
		return
	}

	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := parseDateTimeInTenant(tenant, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "parâmetro from inválido")
			return
		}
		from = &parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := parseDateTimeInTenant(tenant, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "parâmetro to inválido")
			return
		}
		to = &parsed
	}

	out, err := h.getAgendaUC.Execute(c.Request.Context(), tenantID, providerID, from, to)
	if err != nil {
		mapAgendaError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// CheckSlot responde as quatro portas de um horário candidato sem
// criar nada
func (h *AppointmentHandler) CheckSlot(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	tenant := h.tenant(c)

	providerID, ok := parseUintParam(c.Query("provider_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_provider_id", "provider_id inválido")
		return
	}

	start, err := parseDateTimeInTenant(tenant, c.Query("start"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "parâmetro start inválido")
		return
	}

	end, err := parseDateTimeInTenant(tenant, c.Query("end"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "parâmetro end inválido")
		return
	}

	result, err := h.checkSlotUC.Execute(c.Request.Context(), tenantID, providerID, start, end)
	if err != nil {
		mapAgendaError(c, err)
		return
	}

	httpresp.OK(c, result)
}
