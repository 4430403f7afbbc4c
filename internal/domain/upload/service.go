// internal/domain/upload/service.go
package upload

import (
	"context"
	"errors"
	"net/url"
	"path"
	"strings"

	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles upload record business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new upload service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// RecordRequest represents the metadata the upload widget reports after the
// external service stores the file
type RecordRequest struct {
	URL          string `json:"url" binding:"required,url"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	AltText      string `json:"alt_text"`
}

// ListRequest represents uploaded file list query parameters
type ListRequest struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

// ListResponse represents a page of uploaded file records
type ListResponse struct {
	Files      []UploadedFile `json:"files"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// Record stores an uploaded file record. Re-recording the same URL returns
// the existing record unchanged.
func (s *Service) Record(ctx context.Context, uploadedBy uint, req *RecordRequest) (*UploadedFile, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	var existing UploadedFile
	err := s.db.WithContext(ctx).Where("url = ?", req.URL).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Upstream(err, "failed to check existing upload")
	}

	file := UploadedFile{
		URL:          req.URL,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		AltText:      req.AltText,
		UploadedBy:   uploadedBy,
	}
	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to record upload")
	}

	return &file, nil
}

// List returns uploaded file records, newest first
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&UploadedFile{}).Count(&total).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to count uploads")
	}

	var files []UploadedFile
	offset := (req.Page - 1) * req.Limit
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Offset(offset).
		Limit(req.Limit).
		Find(&files).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve uploads")
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Files:      files,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Delete removes an upload record. The hosted file itself is managed by the
// external service.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&UploadedFile{}, id)
	if result.Error != nil {
		return apperr.Upstream(result.Error, "failed to delete upload")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("upload not found")
	}
	return nil
}

func (s *Service) validate(req *RecordRequest) error {
	parsed, err := url.Parse(req.URL)
	if err != nil || parsed.Scheme != "https" {
		return apperr.Validation("upload url must be an https url")
	}

	if req.Size > s.config.Upload.MaxSize {
		return apperr.Validation("file exceeds maximum size of %d bytes", s.config.Upload.MaxSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(parsed.Path)), ".")
	if ext == "" && req.OriginalName != "" {
		ext = strings.TrimPrefix(strings.ToLower(path.Ext(req.OriginalName)), ".")
	}
	if ext != "" && !s.isAllowedExtension(ext) {
		return apperr.Validation("file extension %q is not allowed", ext)
	}

	return nil
}

func (s *Service) isAllowedExtension(ext string) bool {
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
