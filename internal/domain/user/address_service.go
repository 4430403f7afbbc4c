// internal/domain/user/address_service.go
package user

import (
	"context"
	"errors"

	"github.com/your-org/artstore-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// AddressService handles saved address management
type AddressService struct {
	db *gorm.DB
}

// NewAddressService creates a new address service
func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{db: db}
}

// AddressRequest represents address create/update data
type AddressRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required"`
	IsDefault     bool   `json:"is_default"`
}

// ListAddresses returns all addresses for a user, default first
func (s *AddressService) ListAddresses(ctx context.Context, userID uint) ([]Address, error) {
	var addresses []Address
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, apperr.Upstream(err, "failed to retrieve addresses")
	}
	return addresses, nil
}

// CreateAddress adds a new address. The first address for a user becomes
// the default automatically.
func (s *AddressService) CreateAddress(ctx context.Context, userID uint, req *AddressRequest) (*Address, error) {
	var addr Address

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return apperr.Upstream(err, "failed to count addresses")
		}

		addr = Address{
			UserID:        userID,
			FullName:      req.FullName,
			StreetAddress: req.StreetAddress,
			City:          req.City,
			PostalCode:    req.PostalCode,
			Country:       req.Country,
			IsDefault:     req.IsDefault || count == 0,
		}

		if addr.IsDefault {
			if err := s.clearDefault(tx, userID); err != nil {
				return err
			}
		}

		if err := tx.Create(&addr).Error; err != nil {
			return apperr.Upstream(err, "failed to create address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &addr, nil
}

// UpdateAddress updates an existing address owned by the user
func (s *AddressService) UpdateAddress(ctx context.Context, userID, addressID uint, req *AddressRequest) (*Address, error) {
	var addr Address

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&addr).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("address not found")
		}
		if err != nil {
			return apperr.Upstream(err, "failed to retrieve address")
		}

		if req.IsDefault && !addr.IsDefault {
			if err := s.clearDefault(tx, userID); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"full_name":      req.FullName,
			"street_address": req.StreetAddress,
			"city":           req.City,
			"postal_code":    req.PostalCode,
			"country":        req.Country,
			"is_default":     req.IsDefault || addr.IsDefault,
		}
		if err := tx.Model(&addr).Updates(updates).Error; err != nil {
			return apperr.Upstream(err, "failed to update address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &addr, nil
}

// DeleteAddress removes an address owned by the user
func (s *AddressService) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&Address{})
	if result.Error != nil {
		return apperr.Upstream(result.Error, "failed to delete address")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("address not found")
	}
	return nil
}

func (s *AddressService) clearDefault(tx *gorm.DB, userID uint) error {
	err := tx.Model(&Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
	if err != nil {
		return apperr.Upstream(err, "failed to clear default address")
	}
	return nil
}
