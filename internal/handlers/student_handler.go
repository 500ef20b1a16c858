package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/audit"
	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
)

type StudentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStudentHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *StudentHandler {
	return &StudentHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateStudentRequest struct {
	Name            string     `json:"name" binding:"required"`
	Email           string     `json:"email" binding:"required,email"`
	Phone           string     `json:"phone"`
	CPF             string     `json:"cpf"`
	BirthDate       *time.Time `json:"birth_date"`
	StatusStudentID *uint      `json:"status_student_id"`
}

type UpdateStudentRequest struct {
	Name            *string    `json:"name,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	CPF             *string    `json:"cpf,omitempty"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	StatusStudentID *uint      `json:"status_student_id,omitempty"`
}

type CreateStudentNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

type CreateStudentDocumentRequest struct {
	FileID uint   `json:"file_id" binding:"required"`
	Type   string `json:"type"`
}

// --------- Handlers ---------

func (h *StudentHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.
		Preload("User").
		Preload("Person").
		Preload("StatusStudent").
		Where("tenant_id = ?", tenantID)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Joins("JOIN users ON users.id = students.user_id").
			Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?", like, like)
	}

	if statusID := c.Query("status_student_id"); statusID != "" {
		q = q.Where("status_student_id = ?", statusID)
	}

	var students []models.Student
	if err := q.Order("students.id DESC").Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_students"})
		return
	}

	httpresp.List(c, students)
}

func (h *StudentHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var student models.Student
	if err := h.db.
		Preload("User").
		Preload("Person").
		Preload("StatusStudent").
		Preload("Notes").
		Preload("Documents.File").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&student).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "student_not_found"})
		return
	}

	httpresp.OK(c, student)
}

// Create cria usuário, pessoa e aluno numa única transação. A senha
// inicial é aleatória; o aluno troca no primeiro acesso.
func (h *StudentHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateStudentRequest
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

	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_student"})
		return
	}

	var student models.Student

	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			TenantID:     &tenantID,
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Role:         "student",
			Active:       true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		person := models.Person{
			UserID:    user.ID,
			CPF:       req.CPF,
			Phone:     req.Phone,
			BirthDate: req.BirthDate,
		}
		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		student = models.Student{
			TenantID:        tenantID,
			UserID:          user.ID,
			PersonID:        &person.ID,
			StatusStudentID: req.StatusStudentID,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		// corrida entre o Count acima e o insert
		if httperr.IsUniqueViolation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email_already_exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_student"})
		return
	}

	studentID := student.ID
	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "student_created",
		Entity:   "student",
		EntityID: &studentID,
	})

	h.db.Preload("User").Preload("Person").Preload("StatusStudent").
		First(&student, student.ID)

	httpresp.Created(c, student)
}

func (h *StudentHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var student models.Student
	if err := h.db.
		Preload("User").
		Preload("Person").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&student).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "student_not_found"})
		return
	}

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			if err := tx.Model(&models.User{}).
				Where("id = ?", student.UserID).
				Update("name", *req.Name).Error; err != nil {
				return err
			}
		}

		if student.PersonID != nil && (req.Phone != nil || req.CPF != nil || req.BirthDate != nil) {
			updates := map[string]any{}
			if req.Phone != nil {
				updates["phone"] = *req.Phone
			}
			if req.CPF != nil {
				updates["cpf"] = *req.CPF
			}
			if req.BirthDate != nil {
				updates["birth_date"] = *req.BirthDate
			}
			if err := tx.Model(&models.Person{}).
				Where("id = ?", *student.PersonID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.StatusStudentID != nil {
			student.StatusStudentID = req.StatusStudentID
			if err := tx.Model(&models.Student{}).
				Where("id = ?", student.ID).
				Update("status_student_id", *req.StatusStudentID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_student"})
		return
	}

	h.db.Preload("User").Preload("Person").Preload("StatusStudent").
		First(&student, student.ID)

	httpresp.OK(c, student)
}

// Destroy aceita um id na URL ou lote no body; relata item a item
func (h *StudentHandler) Destroy(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ids, ok := batchIDsFromRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	result := httpresp.BatchDeleteResponse{Deleted: []uint{}, NotFound: []uint{}}

	for _, id := range ids {
		res := h.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Student{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_student"})
			return
		}
		if res.RowsAffected > 0 {
			result.Deleted = append(result.Deleted, id)
			deletedID := id
			h.audit.Dispatch(audit.Event{
				TenantID: tenantID,
				UserID:   &userID,
				Action:   "student_deleted",
				Entity:   "student",
				EntityID: &deletedID,
			})
		} else {
			result.NotFound = append(result.NotFound, id)
		}
	}

	httpresp.OK(c, result)
}

// --------- Notas ---------

func (h *StudentHandler) ListNotes(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var notes []models.StudentNote
	if err := h.db.
		Where("tenant_id = ? AND student_id = ?", tenantID, c.Param("id")).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_notes"})
		return
	}

	httpresp.List(c, notes)
}

func (h *StudentHandler) CreateNote(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	studentID, ok := parseUintParam(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_student_id"})
		return
	}

	var count int64
	h.db.Model(&models.Student{}).
		Where("id = ? AND tenant_id = ?", studentID, tenantID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "student_not_found"})
		return
	}

	var req CreateStudentNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	note := models.StudentNote{
		TenantID:  tenantID,
		StudentID: studentID,
		Note:      req.Note,
		CreatedBy: userID,
	}

	if err := h.db.Create(&note).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_note"})
		return
	}

	httpresp.Created(c, note)
}

func (h *StudentHandler) DeleteNote(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	res := h.db.
		Where("id = ? AND student_id = ? AND tenant_id = ?",
			c.Param("note_id"), c.Param("id"), tenantID).
		Delete(&models.StudentNote{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_note"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "note_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Documentos ---------

func (h *StudentHandler) ListDocuments(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var documents []models.StudentDocument
	if err := h.db.
		Preload("File").
		Where("tenant_id = ? AND student_id = ?", tenantID, c.Param("id")).
		Order("created_at DESC").
		Find(&documents).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_documents"})
		return
	}

	httpresp.List(c, documents)
}

// CreateDocument vincula um arquivo já enviado ao prontuário do aluno
func (h *StudentHandler) CreateDocument(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	studentID, ok := parseUintParam(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_student_id"})
		return
	}

	var count int64
	h.db.Model(&models.Student{}).
		Where("id = ? AND tenant_id = ?", studentID, tenantID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "student_not_found"})
		return
	}

	var req CreateStudentDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	h.db.Model(&models.File{}).
		Where("id = ? AND tenant_id = ?", req.FileID, tenantID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "file_not_found"})
		return
	}

	document := models.StudentDocument{
		TenantID:  tenantID,
		StudentID: studentID,
		FileID:    req.FileID,
		Type:      req.Type,
	}

	if err := h.db.Create(&document).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_document"})
		return
	}

	h.db.Preload("File").First(&document, document.ID)

	httpresp.Created(c, document)
}

func (h *StudentHandler) DeleteDocument(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	res := h.db.
		Where("id = ? AND student_id = ? AND tenant_id = ?",
			c.Param("document_id"), c.Param("id"), tenantID).
		Delete(&models.StudentDocument{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_document"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "document_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
