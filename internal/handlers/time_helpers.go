package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/agenda-saas/internal/models"
	"github.com/agendafacil/agenda-saas/internal/timezone"
)

// layouts aceitos para timestamps vindos da borda HTTP
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func locationFromTenant(tenant *models.Tenant) *time.Location {
	if tenant != nil {
		return timezone.Location(tenant.Timezone)
	}
	return timezone.Location("")
}

// parseDateTimeInTenant interpreta timestamps sem offset no timezone do
// tenant; com offset, respeita o offset informado
func parseDateTimeInTenant(tenant *models.Tenant, value string) (time.Time, error) {
	loc := locationFromTenant(tenant)

	var lastErr error
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// --------------------------------------------------
// Batch delete: aceita um id na URL ou {"ids": [...]} no body
// --------------------------------------------------

type batchIDsRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

func batchIDsFromRequest(c *gin.Context) ([]uint, bool) {
	if idStr := c.Param("id"); idStr != "" {
		id, ok := parseUintParam(idStr)
		if !ok {
			return nil, false
		}
		return []uint{id}, true
	}

	var req batchIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, false
	}
	return req.IDs, true
}

func parseUintParam(s string) (uint, bool) {
	var id uint
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		id = id*10 + uint(r-'0')
	}
	if s == "" {
		return 0, false
	}
	return id, true
}
