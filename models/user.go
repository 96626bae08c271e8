package models

import "time"

// UserRole defines the allowed roles in the system. A user carries exactly
// one role at a time.
type UserRole string

const (
	RoleCustomer          UserRole = "customer"
	RoleRestaurantPartner UserRole = "restaurant_partner"
	RoleDeliveryPartner   UserRole = "delivery_partner"
	RoleAdmin             UserRole = "admin"
	RoleSupportAdmin      UserRole = "support_admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleCustomer, RoleRestaurantPartner, RoleDeliveryPartner, RoleAdmin, RoleSupportAdmin:
		return true
	}
	return false
}

type User struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	Name          string   `json:"name" gorm:"not null"`
	Email         string   `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string   `json:"-" gorm:"not null"`
	Phone         string   `json:"phone" gorm:"not null"`
	Role          UserRole `json:"role" gorm:"not null;default:'customer'"`
	ProfileImage  string   `json:"profile_image"`
	IsActive      bool     `json:"is_active" gorm:"default:true"`
	PhoneVerified bool     `json:"phone_verified" gorm:"default:false"`

	// OTP login challenge, never serialized.
	PhoneOTP        string     `json:"-"`
	PhoneOTPExpires *time.Time `json:"-"`

	// Single active session: the only refresh token currently honored.
	RefreshToken string     `json:"-"`
	LastLogin    *time.Time `json:"last_login"`

	// Set for restaurant partners once they register a restaurant.
	RestaurantID *uint `json:"restaurant_id"`

	// Delivery partner attributes.
	VehicleType     string  `json:"vehicle_type,omitempty"`
	VehicleNumber   string  `json:"vehicle_number,omitempty"`
	IsAvailable     bool    `json:"is_available" gorm:"default:false"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TotalDeliveries int     `json:"total_deliveries" gorm:"default:0"`
	Rating          float64 `json:"rating" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
