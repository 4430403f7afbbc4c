// internal/domain/upload/entity.go
package upload

import (
	"time"

	"gorm.io/gorm"
)

// UploadedFile records an image hosted by the external upload service.
// The file bytes never touch this server; only the returned URL and its
// metadata are kept so admins can browse and reuse artwork images.
type UploadedFile struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	URL          string         `gorm:"size:500;not null;uniqueIndex" json:"url"`
	OriginalName string         `gorm:"size:255" json:"original_name"`
	MimeType     string         `gorm:"size:100" json:"mime_type"`
	Size         int64          `json:"size"`
	AltText      string         `gorm:"size:255" json:"alt_text"`
	UploadedBy   uint           `gorm:"not null;index" json:"uploaded_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for UploadedFile
func (UploadedFile) TableName() string {
	return "uploaded_files"
}
