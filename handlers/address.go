package handlers

import (
	"net/http"

	"quickbite-api/config"
	"quickbite-api/middleware"
	"quickbite-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateAddressRequest struct {
	Label        string  `json:"label" binding:"required"`
	AddressLine1 string  `json:"address_line1" binding:"required"`
	AddressLine2 string  `json:"address_line2"`
	Landmark     string  `json:"landmark"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	Pincode      string  `json:"pincode" binding:"required"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	IsDefault    bool    `json:"is_default"`
}

// CreateAddress saves a delivery location for the caller. The first address,
// or one explicitly flagged, becomes the default; sibling defaults are
// cleared in the same transaction.
func CreateAddress(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	address := models.Address{
		UserID:       user.ID,
		Label:        req.Label,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Landmark:     req.Landmark,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		address.IsDefault = req.IsDefault || count == 0
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to add address")
		return
	}

	respond(c, http.StatusCreated, "Address added successfully", gin.H{"address": address})
}

// GetMyAddresses lists the caller's addresses, default first.
func GetMyAddresses(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("is_default desc, created_at desc").Find(&addresses).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch addresses")
		return
	}
	respond(c, http.StatusOK, "", gin.H{"addresses": addresses})
}

// loadOwnAddress fetches an address and verifies the caller owns it. Writes
// the error response itself and returns nil on failure.
func loadOwnAddress(c *gin.Context, user *models.User) *models.Address {
	var address models.Address
	if err := config.DB.First(&address, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Address not found")
		return nil
	}
	if address.UserID != user.ID {
		fail(c, http.StatusForbidden, "Not authorized")
		return nil
	}
	return &address
}

// GetAddress returns one of the caller's addresses.
func GetAddress(c *gin.Context) {
	user := middleware.CurrentUser(c)
	address := loadOwnAddress(c, user)
	if address == nil {
		return
	}
	respond(c, http.StatusOK, "", gin.H{"address": address})
}

type UpdateAddressRequest struct {
	Label        *string  `json:"label"`
	AddressLine1 *string  `json:"address_line1"`
	AddressLine2 *string  `json:"address_line2"`
	Landmark     *string  `json:"landmark"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	Pincode      *string  `json:"pincode"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

// UpdateAddress edits an address. Coordinates snapshotted onto past orders
// are unaffected.
func UpdateAddress(c *gin.Context) {
	user := middleware.CurrentUser(c)
	address := loadOwnAddress(c, user)
	if address == nil {
		return
	}

	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	if req.Label != nil {
		address.Label = *req.Label
	}
	if req.AddressLine1 != nil {
		address.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		address.AddressLine2 = *req.AddressLine2
	}
	if req.Landmark != nil {
		address.Landmark = *req.Landmark
	}
	if req.City != nil {
		address.City = *req.City
	}
	if req.State != nil {
		address.State = *req.State
	}
	if req.Pincode != nil {
		address.Pincode = *req.Pincode
	}
	if req.Latitude != nil {
		address.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		address.Longitude = *req.Longitude
	}

	if err := config.DB.Save(address).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update address")
		return
	}
	respond(c, http.StatusOK, "Address updated successfully", gin.H{"address": address})
}

// DeleteAddress removes one of the caller's addresses. Orders keep their
// snapshotted coordinates.
func DeleteAddress(c *gin.Context) {
	user := middleware.CurrentUser(c)
	address := loadOwnAddress(c, user)
	if address == nil {
		return
	}
	if err := config.DB.Delete(address).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete address")
		return
	}
	respond(c, http.StatusOK, "Address deleted successfully", nil)
}

// SetDefaultAddress marks one address as the default. Unset-all and set-one
// run in a single transaction so concurrent calls always leave exactly one
// default.
func SetDefaultAddress(c *gin.Context) {
	user := middleware.CurrentUser(c)
	address := loadOwnAddress(c, user)
	if address == nil {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Address{}).Where("id = ?", address.ID).
			Update("is_default", true).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to set default address")
		return
	}
	address.IsDefault = true

	respond(c, http.StatusOK, "Default address set successfully", gin.H{"address": address})
}
