// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/domain/upload"
	"github.com/your-org/artstore-backend/internal/interfaces/http/middleware"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// UploadHandler handles uploaded file record endpoints
type UploadHandler struct {
	uploadService *upload.Service
	config        *config.Config
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(db *gorm.DB, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		uploadService: upload.NewService(db, cfg),
		config:        cfg,
	}
}

// RecordUpload handles POST /admin/uploads
func (h *UploadHandler) RecordUpload(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, apperr.Validation("authentication required"))
		return
	}

	var req upload.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	file, err := h.uploadService.Record(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "Upload recorded successfully", file)
}

// ListUploads handles GET /admin/uploads
func (h *UploadHandler) ListUploads(c *gin.Context) {
	var req upload.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.uploadService.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Uploads retrieved successfully", result)
}

// DeleteUpload handles DELETE /admin/uploads/:id
func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.uploadService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Upload deleted successfully", nil)
}
