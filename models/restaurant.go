package models

import "time"

// RestaurantAddress is the vendor's street address, embedded on the
// restaurant row.
type RestaurantAddress struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	Landmark     string `json:"landmark"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// DayHours describes opening hours for one weekday.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	IsOpen bool   `json:"is_open"`
}

// BankDetails holds payout information. Never serialized on any read path.
type BankDetails struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	BankName      string `json:"bank_name"`
}

type Restaurant struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	OwnerID     uint     `json:"owner_id" gorm:"not null;index"`
	Name        string   `json:"name" gorm:"not null"`
	Email       string   `json:"email" gorm:"uniqueIndex;not null"`
	Phone       string   `json:"phone" gorm:"not null"`
	Description string   `json:"description"`
	Cuisines    []string `json:"cuisines" gorm:"serializer:json"`
	Logo        string   `json:"logo"`
	BannerImage string   `json:"banner_image"`

	Address   RestaurantAddress `json:"address" gorm:"embedded;embeddedPrefix:addr_"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`

	OperatingHours map[string]DayHours `json:"operating_hours" gorm:"serializer:json"`

	// Delivery economics.
	DeliveryTimeMins int     `json:"delivery_time_mins" gorm:"default:35"`
	MinimumOrder     float64 `json:"minimum_order" gorm:"default:0"`
	DeliveryRadiusKm float64 `json:"delivery_radius_km" gorm:"default:5"`
	DeliveryFee      float64 `json:"delivery_fee" gorm:"default:30"`

	Rating       float64 `json:"rating" gorm:"default:0"`
	TotalRatings int     `json:"total_ratings" gorm:"default:0"`
	TotalOrders  int     `json:"total_orders" gorm:"default:0"`

	IsActive   bool `json:"is_active" gorm:"default:true"`
	IsApproved bool `json:"is_approved" gorm:"default:false"`
	IsPureVeg  bool `json:"is_pure_veg" gorm:"default:false"`

	FSSAILicense string      `json:"fssai_license"`
	GSTNumber    string      `json:"-"`
	BankDetails  BankDetails `json:"-" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
