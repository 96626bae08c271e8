package models

import "time"

// ReviewResponse is the restaurant's reply to a review.
type ReviewResponse struct {
	Text string    `json:"text"`
	ByID uint      `json:"by_id"`
	Date time.Time `json:"date"`
}

// Review is customer feedback tied to one delivered order. One review per
// order.
type Review struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	OrderID           uint   `json:"order_id" gorm:"uniqueIndex;not null"`
	CustomerID        uint   `json:"customer_id" gorm:"not null;index"`
	RestaurantID      uint   `json:"restaurant_id" gorm:"not null;index"`
	DeliveryPartnerID *uint  `json:"delivery_partner_id"`
	FoodRating        int    `json:"food_rating" gorm:"not null"`
	DeliveryRating    int    `json:"delivery_rating"`
	ReviewText        string `json:"review_text"`

	Response *ReviewResponse `json:"response,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
