package handlers

import (
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-saas/internal/httperr"
	"github.com/agendafacil/agenda-saas/internal/httpresp"
	"github.com/agendafacil/agenda-saas/internal/imaging"
	"github.com/agendafacil/agenda-saas/internal/middleware"
	"github.com/agendafacil/agenda-saas/internal/models"
	"github.com/agendafacil/agenda-saas/internal/storage"
)

const maxUploadSize = 10 << 20 // 10 MB

const presignTTL = 15 * time.Minute

type FileHandler struct {
	db      *gorm.DB
	storage *storage.Client
}

func NewFileHandler(db *gorm.DB, storageClient *storage.Client) *FileHandler {
	return &FileHandler{db: db, storage: storageClient}
}

// --------- Handlers ---------

func (h *FileHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.Where("tenant_id = ?", tenantID)
	if fileType := c.Query("type"); fileType != "" {
		q = q.Where("type = ?", fileType)
	}

	var files []models.File
	if err := q.Order("created_at DESC").Find(&files).Error; err != nil {
		httperr.Internal(c, "failed_to_list_files", "erro ao listar arquivos")
		return
	}

	httpresp.List(c, files)
}

// Upload recebe multipart (campos: file, type). Avatares são
// normalizados para webp antes do envio ao bucket.
func (h *FileHandler) Upload(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	header, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "campo file é obrigatório")
		return
	}
	if header.Size > maxUploadSize {
		httperr.UnprocessableEntity(c, "file_too_large", "arquivo excede o limite de 10MB")
		return
	}

	fileType := c.PostForm("type")
	if fileType == "" {
		fileType = "anexo"
	}

	f, err := header.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "erro ao ler arquivo")
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "erro ao ler arquivo")
		return
	}

	originalName := header.Filename
	contentType := header.Header.Get("Content-Type")

	if fileType == "avatar" {
		normalized, err := imaging.NormalizeAvatar(content)
		if err != nil {
			httperr.UnprocessableEntity(c, "invalid_image", "arquivo de avatar não é uma imagem válida")
			return
		}
		content = normalized
		contentType = "image/webp"
		originalName = strings.TrimSuffix(originalName, path.Ext(originalName)) + ".webp"
	}

	key := storage.ObjectKey(tenantID, fileType, originalName)

	if err := h.storage.Put(c.Request.Context(), key, content, contentType); err != nil {
		httperr.Internal(c, "failed_to_upload_file", "erro ao enviar arquivo")
		return
	}

	file := models.File{
		TenantID:     tenantID,
		UserID:       &userID,
		Type:         fileType,
		Path:         key,
		OriginalName: originalName,
		Mime:         contentType,
		Size:         int64(len(content)),
	}

	if err := h.db.Create(&file).Error; err != nil {
		httperr.Internal(c, "failed_to_save_file", "erro ao registrar arquivo")
		return
	}

	httpresp.Created(c, file)
}

// Show devolve os metadados e uma URL temporária de download
func (h *FileHandler) Show(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var file models.File
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&file).Error; err != nil {

		httperr.NotFound(c, "file_not_found", "arquivo não encontrado")
		return
	}

	url, err := h.storage.PresignURL(c.Request.Context(), file.Path, presignTTL)
	if err != nil {
		httperr.Internal(c, "failed_to_presign", "erro ao gerar URL de download")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file": file,
		"url":  url,
	})
}

// Download faz o proxy do conteúdo (uso interno; preferir a URL presignada)
func (h *FileHandler) Download(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var file models.File
	if err := h.db.
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&file).Error; err != nil {

		httperr.NotFound(c, "file_not_found", "arquivo não encontrado")
		return
	}

	content, contentType, err := h.storage.Get(c.Request.Context(), file.Path)
	if err != nil {
		httperr.Internal(c, "failed_to_download", "erro ao baixar arquivo")
		return
	}
	if contentType == "" {
		contentType = file.Mime
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.OriginalName+`"`)
	c.Data(http.StatusOK, contentType, content)
}

// Destroy remove do bucket e do banco; aceita lote
func (h *FileHandler) Destroy(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	ids, ok := batchIDsFromRequest(c)
	if !ok {
		httperr.BadRequest(c, "invalid_request", "informe um id ou uma lista ids")
		return
	}

	result := httpresp.BatchDeleteResponse{Deleted: []uint{}, NotFound: []uint{}}

	for _, id := range ids {
		var file models.File
		if err := h.db.
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&file).Error; err != nil {

			result.NotFound = append(result.NotFound, id)
			continue
		}

		if err := h.storage.Delete(c.Request.Context(), file.Path); err != nil {
			httperr.Internal(c, "failed_to_delete_file", "erro ao remover arquivo do bucket")
			return
		}

		if err := h.db.Delete(&file).Error; err != nil {
			httperr.Internal(c, "failed_to_delete_file", "erro ao remover arquivo")
			return
		}
		result.Deleted = append(result.Deleted, id)
	}

	httpresp.OK(c, result)
}
