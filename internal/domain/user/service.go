// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"github.com/your-org/artstore-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation("passwords do not match")
	}
	if err := s.passwordManager.ValidatePassword(req.Password); err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user already exists
	var existing User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&existing)
	if result.Error == nil {
		return nil, apperr.Conflict("user with this email already exists")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.Upstream(result.Error, "failed to check existing user")
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to hash password")
	}

	u := User{
		Email:    email,
		Password: hashedPassword,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     RoleUser,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to create user")
	}

	return s.issueTokens(ctx, &u)
}

// Login authenticates a user
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var u User
	result := s.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&u)
	if result.Error != nil {
		return nil, apperr.Validation("invalid email or password")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, apperr.Validation("invalid email or password")
	}

	return s.issueTokens(ctx, &u)
}

// RefreshToken generates new tokens using a refresh token
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Validation("invalid refresh token")
	}

	var u User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", claims.UserID, true).First(&u)
	if result.Error != nil {
		return nil, apperr.NotFound("user not found or inactive")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to generate access token")
	}

	newRefreshToken := refreshToken
	if s.config.JWT.RefreshTokenRotation {
		newRefreshToken, err = s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
		if err != nil {
			return nil, apperr.Upstream(err, "failed to generate refresh token")
		}
	}

	u.Password = ""
	return &AuthResponse{
		User:         &u,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	var u User
	result := s.db.WithContext(ctx).
		Preload("Addresses").
		Where("id = ? AND is_active = ?", userID, true).
		First(&u)
	if result.Error != nil {
		return nil, apperr.NotFound("user not found")
	}

	u.Password = ""
	return &u, nil
}

// UpdateProfile updates the user's name and phone
func (s *Service) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*User, error) {
	var u User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", userID, true).First(&u)
	if result.Error != nil {
		return nil, apperr.NotFound("user not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&u).Updates(updates).Error; err != nil {
			return nil, apperr.Upstream(err, "failed to update profile")
		}
	}

	u.Password = ""
	return &u, nil
}

// ChangePassword changes user password after verifying the current one
func (s *Service) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	var u User
	result := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", userID, true).First(&u)
	if result.Error != nil {
		return apperr.NotFound("user not found")
	}

	if err := s.passwordManager.VerifyPassword(currentPassword, u.Password); err != nil {
		return apperr.Validation("current password is incorrect")
	}
	if err := s.passwordManager.ValidatePassword(newPassword); err != nil {
		return apperr.Validation("%s", err.Error())
	}

	hashedPassword, err := s.passwordManager.HashPassword(newPassword)
	if err != nil {
		return apperr.Upstream(err, "failed to hash new password")
	}

	if err := s.db.WithContext(ctx).Model(&u).Update("password", hashedPassword).Error; err != nil {
		return apperr.Upstream(err, "failed to update password")
	}
	return nil
}

// GetUserByEmail retrieves user by email
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	result := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&u)
	if result.Error != nil {
		return nil, apperr.NotFound("user not found")
	}

	u.Password = ""
	return &u, nil
}

func (s *Service) issueTokens(ctx context.Context, u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to generate access token")
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to generate refresh token")
	}

	now := time.Now().UTC()
	u.LastLoginAt = &now
	s.db.WithContext(ctx).Model(u).Update("last_login_at", now)

	u.Password = ""
	return &AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessTokenExpiry.Seconds()),
	}, nil
}
