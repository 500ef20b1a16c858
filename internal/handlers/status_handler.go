package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/models"
)

// Catálogos de status (leitura)

type StatusHandler struct {
	db *gorm.DB
}

func NewStatusHandler(db *gorm.DB) *StatusHandler {
	return &StatusHandler{db: db}
}

func (h *StatusHandler) ListAgenda(c *gin.Context) {
	var statuses []models.StatusAgenda
	if err := h.db.Order("id ASC").Find(&statuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_statuses"})
		return
	}
	httpresp.List(c, statuses)
}

func (h *StatusHandler) GetAgenda(c *gin.Context) {
	var status models.StatusAgenda
	if err := h.db.First(&status, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "status_not_found"})
		return
	}
	httpresp.OK(c, status)
}

func (h *StatusHandler) ListStudent(c *gin.Context) {
	var statuses []models.StatusStudent
	if err := h.db.Order("id ASC").Find(&statuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_statuses"})
		return
	}
	httpresp.List(c, statuses)
}

func (h *StatusHandler) GetStudent(c *gin.Context) {
	var status models.StatusStudent
	if err := h.db.First(&status, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "status_not_found"})
		return
	}
	httpresp.OK(c, status)
}
