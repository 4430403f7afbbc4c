// internal/domain/user/admin_service.go
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// AdminService handles admin user management
type AdminService struct {
	db *gorm.DB
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// AdminListRequest represents admin user list query parameters
type AdminListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"q"`
	Role   string `form:"role"`
}

// AdminListResponse represents a page of users
type AdminListResponse struct {
	Users      []User `json:"users"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"total_pages"`
}

// ListUsers returns users with optional search and role filtering
func (s *AdminService) ListUsers(ctx context.Context, req *AdminListRequest) (*AdminListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.WithContext(ctx).Model(&User{})

	if search := strings.TrimSpace(req.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to count users")
	}

	var users []User
	offset := (req.Page - 1) * req.Limit
	err := query.Order("created_at DESC, id ASC").
		Offset(offset).
		Limit(req.Limit).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve users")
	}

	for i := range users {
		users[i].Password = ""
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &AdminListResponse{
		Users:      users,
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// SetRole changes a user's role
func (s *AdminService) SetRole(ctx context.Context, userID uint, role string) (*User, error) {
	if role != RoleAdmin && role != RoleUser {
		return nil, apperr.Validation("unknown role %q", role)
	}

	var u User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve user")
	}

	if err := s.db.WithContext(ctx).Model(&u).Update("role", role).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to update role")
	}

	u.Password = ""
	return &u, nil
}

// SetActive activates or deactivates a user account
func (s *AdminService) SetActive(ctx context.Context, userID uint, active bool) error {
	result := s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Update("is_active", active)
	if result.Error != nil {
		return apperr.Upstream(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
