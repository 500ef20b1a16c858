package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
	"github.com/agendafacil/agenda-saas/internal/whatsapp"
)

type WhatsappHandler struct {
	db     *gorm.DB
	client *whatsapp.Client
}

func NewWhatsappHandler(db *gorm.DB, client *whatsapp.Client) *WhatsappHandler {
	return &WhatsappHandler{db: db, client: client}
}

// --------- Requests ---------

type CreateInstanceRequest struct {
	Number string `json:"number"`
}

type SendMessageRequest struct {
	Number string `json:"number" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// --------- Handlers ---------

func (h *WhatsappHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var instances []models.WhatsappInstance
	if err := h.db.Where("tenant_id = ?", tenantID).Find(&instances).Error; err != nil {
		httperr.Internal(c, "failed_to_list_instances", "erro ao listar instâncias")
		return
	}

	httpresp.List(c, instances)
}

// Create registra a instância na Evolution API e devolve o QR code de
// pareamento. Uma instância por tenant.
func (h *WhatsappHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if !h.client.Enabled() {
		httperr.UnprocessableEntity(c, "whatsapp_disabled", "integração de WhatsApp não configurada")
		return
	}

	var req CreateInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.WhatsappInstance{}).Where("tenant_id = ?", tenantID).Count(&count)
	if count > 0 {
		httperr.UnprocessableEntity(c, "instance_already_exists", "tenant já possui uma instância")
		return
	}

	name := fmt.Sprintf("tenant-%d", tenantID)

	body, err := h.client.CreateInstance(c.Request.Context(), name, req.Number)
	if err != nil {
		httperr.Internal(c, "failed_to_create_instance", "erro ao criar instância")
		return
	}

	instance := models.WhatsappInstance{
		TenantID:  tenantID,
		Name:      name,
		Number:    req.Number,
		Status:    "created",
		CreatedBy: userID,
	}
	if err := h.db.Create(&instance).Error; err != nil {
		httperr.Internal(c, "failed_to_save_instance", "erro ao registrar instância")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"instance": instance,
		"gateway":  body,
	})
}

func (h *WhatsappHandler) instanceForTenant(c *gin.Context) (*models.WhatsappInstance, bool) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var instance models.WhatsappInstance
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&instance).Error; err != nil {

		httperr.NotFound(c, "instance_not_found", "instância não encontrada")
		return nil, false
	}
	return &instance, true
}

// Status consulta o estado de conexão direto no gateway
func (h *WhatsappHandler) Status(c *gin.Context) {
	instance, ok := h.instanceForTenant(c)
	if !ok {
		return
	}

	body, err := h.client.ConnectionState(c.Request.Context(), instance.Name)
	if err != nil {
		httperr.Internal(c, "failed_to_get_status", "erro ao consultar status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"gateway": body})
}

// Connect força uma nova tentativa de pareamento (novo QR code)
func (h *WhatsappHandler) Connect(c *gin.Context) {
	instance, ok := h.instanceForTenant(c)
	if !ok {
		return
	}

	body, err := h.client.Connect(c.Request.Context(), instance.Name)
	if err != nil {
		httperr.Internal(c, "failed_to_connect", "erro ao conectar instância")
		return
	}

	c.JSON(http.StatusOK, gin.H{"gateway": body})
}

func (h *WhatsappHandler) SendMessage(c *gin.Context) {
	instance, ok := h.instanceForTenant(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	body, err := h.client.SendText(c.Request.Context(), instance.Name, req.Number, req.Text)
	if err != nil {
		httperr.Internal(c, "failed_to_send_message", "erro ao enviar mensagem")
		return
	}

	c.JSON(http.StatusOK, gin.H{"gateway": body})
}

// Destroy remove no gateway e depois no banco
func (h *WhatsappHandler) Destroy(c *gin.Context) {
	instance, ok := h.instanceForTenant(c)
	if !ok {
		return
	}

	if h.client.Enabled() {
		if err := h.client.DeleteInstance(c.Request.Context(), instance.Name); err != nil {
			httperr.Internal(c, "failed_to_delete_instance", "erro ao remover instância no gateway")
			return
		}
	}

	if err := h.db.Delete(instance).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_instance", "erro ao remover instância")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
