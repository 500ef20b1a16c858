package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type ProviderHandler struct {
	db *gorm.DB
}

func NewProviderHandler(db *gorm.DB) *ProviderHandler {
	return &ProviderHandler{db: db}
}

// --------- Requests ---------

type CreateProviderRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	CPF        string `json:"cpf"`
	ServiceIDs []uint `json:"service_ids"`
}

type UpdateProviderRequest struct {
	Name       *string `json:"name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	CPF        *string `json:"cpf,omitempty"`
	ServiceIDs *[]uint `json:"service_ids,omitempty"`
}

// --------- Handlers ---------

func (h *ProviderHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.
		Preload("Person.User").
		Where("tenant_id = ?", tenantID)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Joins("JOIN people ON people.id = providers.person_id").
			Joins("JOIN users ON users.id = people.user_id").
			Where("LOWER(users.name) LIKE ?", like)
	}

	var providers []models.Provider
	if err := q.Order("providers.id ASC").Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_providers"})
		return
	}

	httpresp.List(c, providers)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var provider models.Provider
	if err := h.db.
		Preload("Person.User").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&provider).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "provider_not_found"})
		return
	}

	var services []models.Service
	if len(provider.ServiceIDs) > 0 {
		h.db.Where("tenant_id = ? AND id IN ?", tenantID, []uint(provider.ServiceIDs)).
			Find(&services)
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": provider,
		"services": services,
	})
}

// Create cria usuário, pessoa e profissional numa única transação
func (h *ProviderHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email_already_exists"})
		return
	}

	if len(req.ServiceIDs) > 0 {
		h.db.Model(&models.Service{}).
			Where("tenant_id = ? AND id IN ?", tenantID, req.ServiceIDs).
			Count(&count)
		if count != int64(len(req.ServiceIDs)) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "service_not_found"})
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_provider"})
		return
	}

	var provider models.Provider

	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			TenantID:     &tenantID,
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Role:         "provider",
			Active:       true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		person := models.Person{
			UserID: user.ID,
			CPF:    req.CPF,
			Phone:  req.Phone,
		}
		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		provider = models.Provider{
			TenantID:   tenantID,
			PersonID:   person.ID,
			ServiceIDs: req.ServiceIDs,
		}
		return tx.Create(&provider).Error
	})
	if err != nil {
		// corrida entre o Count acima e o insert
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email_already_exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_provider"})
		return
	}

	h.db.Preload("Person.User").First(&provider, provider.ID)

	httpresp.Created(c, provider)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var provider models.Provider
	if err := h.db.
		Preload("Person").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&provider).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "provider_not_found"})
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.ServiceIDs != nil && len(*req.ServiceIDs) > 0 {
		var count int64
		h.db.Model(&models.Service{}).
			Where("tenant_id = ? AND id IN ?", tenantID, *req.ServiceIDs).
			Count(&count)
		if count != int64(len(*req.ServiceIDs)) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "service_not_found"})
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			if err := tx.Model(&models.User{}).
				Where("id = ?", provider.Person.UserID).
				Update("name", *req.Name).Error; err != nil {
				return err
			}
		}

		if req.Phone != nil || req.CPF != nil {
			updates := map[string]any{}
			if req.Phone != nil {
				updates["phone"] = *req.Phone
			}
			if req.CPF != nil {
				updates["cpf"] = *req.CPF
			}
			if err := tx.Model(&models.Person{}).
				Where("id = ?", provider.PersonID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.ServiceIDs != nil {
			provider.ServiceIDs = *req.ServiceIDs
			if err := tx.Model(&models.Provider{}).
				Where("id = ?", provider.ID).
				Update("service_ids", provider.ServiceIDs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_provider"})
		return
	}

	h.db.Preload("Person.User").First(&provider, provider.ID)

	httpresp.OK(c, provider)
}

func (h *ProviderHandler) Destroy(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	ids, ok := batchIDsFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	result := httpresp.BatchDeleteResponse{Deleted: []uint{}, NotFound: []uint{}}

	for _, id := range ids {
		res := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Provider{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_provider"})
			return
		}
		if res.RowsAffected > 0 {
			result.Deleted = append(result.Deleted, id)
		} else {
			result.NotFound = append(result.NotFound, id)
		}
	}

	httpresp.OK(c, result)
}
