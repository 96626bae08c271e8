package models

import "time"

// Address is a delivery location owned by exactly one user. At most one
// address per user carries IsDefault=true; the set-default operation enforces
// this inside a single transaction.
type Address struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	Label        string    `json:"label" gorm:"not null"`
	AddressLine1 string    `json:"address_line1" gorm:"not null"`
	AddressLine2 string    `json:"address_line2"`
	Landmark     string    `json:"landmark"`
	City         string    `json:"city" gorm:"not null"`
	State        string    `json:"state" gorm:"not null"`
	Pincode      string    `json:"pincode" gorm:"not null"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	IsDefault    bool      `json:"is_default" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
