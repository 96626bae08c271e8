package models

import "time"

// OrderStatus is the lifecycle state of an order. Legal transitions are
// defined in the statemachine package.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusPickedUp       OrderStatus = "picked_up"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// PaymentMethod enumerates the accepted payment options. Payment itself is
// simulated; no gateway is called.
type PaymentMethod string

const (
	PayCard       PaymentMethod = "card"
	PayUPI        PaymentMethod = "upi"
	PayWallet     PaymentMethod = "wallet"
	PayNetbanking PaymentMethod = "netbanking"
	PayCOD        PaymentMethod = "cod"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayCard, PayUPI, PayWallet, PayNetbanking, PayCOD:
		return true
	}
	return false
}

// OrderItem is a snapshot of a menu item at order time. Later menu edits do
// not change past orders.
type OrderItem struct {
	MenuItemID          uint    `json:"menu_item_id"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	Price               float64 `json:"price"`
	Variant             string  `json:"variant,omitempty"`
	Addons              []Addon `json:"addons,omitempty"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// Pricing is the order's money breakdown, computed server-side from stored
// menu prices at creation time.
type Pricing struct {
	Subtotal         float64 `json:"subtotal"`
	DeliveryFee      float64 `json:"delivery_fee"`
	TaxAmount        float64 `json:"tax_amount"`
	Discount         float64 `json:"discount"`
	PackagingCharges float64 `json:"packaging_charges"`
	Total            float64 `json:"total"`
}

// StatusHistoryEntry is one record in the order's append-only status log.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

type Order struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	OrderNumber       string `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID        uint   `json:"customer_id" gorm:"not null;index"`
	RestaurantID      uint   `json:"restaurant_id" gorm:"not null;index"`
	DeliveryPartnerID *uint  `json:"delivery_partner_id" gorm:"index"`

	Items []OrderItem `json:"items" gorm:"serializer:json"`

	DeliveryAddressID uint    `json:"delivery_address_id" gorm:"not null"`
	DeliveryLatitude  float64 `json:"delivery_latitude"`
	DeliveryLongitude float64 `json:"delivery_longitude"`

	Pricing Pricing `json:"pricing" gorm:"embedded;embeddedPrefix:pricing_"`

	PaymentMethod PaymentMethod `json:"payment_method" gorm:"not null"`
	PaymentStatus string        `json:"payment_status" gorm:"default:'pending'"`

	Status        OrderStatus          `json:"status" gorm:"not null;default:'placed';index"`
	StatusHistory []StatusHistoryEntry `json:"status_history" gorm:"serializer:json"`

	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time `json:"actual_delivery_time"`

	CancellationReason string `json:"cancellation_reason,omitempty"`
	CancelledByID      *uint  `json:"cancelled_by_id,omitempty"`

	SpecialInstructions string `json:"special_instructions,omitempty"`
	ContactlessDelivery bool   `json:"contactless_delivery" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
