package models

import "time"

// FoodType classifies a menu item's dietary category.
type FoodType string

const (
	FoodVeg    FoodType = "veg"
	FoodNonVeg FoodType = "non-veg"
	FoodVegan  FoodType = "vegan"
	FoodEgg    FoodType = "egg"
)

// ValidFoodType reports whether t is a known food type.
func ValidFoodType(t FoodType) bool {
	switch t {
	case FoodVeg, FoodNonVeg, FoodVegan, FoodEgg:
		return true
	}
	return false
}

// Variant is a named sizing of an item with its own price, e.g. "Large".
type Variant struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Addon is an optional extra with its own price.
type Addon struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type MenuItem struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RestaurantID  uint      `json:"restaurant_id" gorm:"not null;index"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	Category      string    `json:"category" gorm:"not null;index"`
	Image         string    `json:"image"`
	FoodType      FoodType  `json:"food_type" gorm:"not null"`
	Price         float64   `json:"price" gorm:"not null"`
	Variants      []Variant `json:"variants" gorm:"serializer:json"`
	Addons        []Addon   `json:"addons" gorm:"serializer:json"`
	IsAvailable   bool      `json:"is_available" gorm:"default:true"`
	IsRecommended bool      `json:"is_recommended" gorm:"default:false"`
	Rating        float64   `json:"rating" gorm:"default:0"`
	TotalRatings  int       `json:"total_ratings" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
