package handlers

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quickbite-api/authz"
	"quickbite-api/config"
	"quickbite-api/middleware"
	"quickbite-api/models"
	"quickbite-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// generateOrderNumber builds a human-readable id from a base-36 timestamp
// and random suffix. Probabilistically unique; the DB unique index catches
// the rare collision.
func generateOrderNumber() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strconv.FormatInt(rand.Int64N(36*36*36*36*36), 36)
	return strings.ToUpper(fmt.Sprintf("ORD-%s-%05s", ts, suffix))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type OrderItemRequest struct {
	MenuItemID          uint     `json:"menu_item_id" binding:"required"`
	Quantity            int      `json:"quantity" binding:"required,min=1"`
	Variant             string   `json:"variant"`
	Addons              []string `json:"addons"`
	SpecialInstructions string   `json:"special_instructions"`
}

type CreateOrderRequest struct {
	RestaurantID        uint                 `json:"restaurant_id" binding:"required"`
	Items               []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
	DeliveryAddressID   uint                 `json:"delivery_address_id" binding:"required"`
	PaymentMethod       models.PaymentMethod `json:"payment_method" binding:"required"`
	SpecialInstructions string               `json:"special_instructions"`
	ContactlessDelivery bool                 `json:"contactless_delivery"`
}

// snapshotItem resolves one requested line against the stored menu item:
// base or variant price, addon prices by name. Prices are always taken from
// the database, never from the client.
func snapshotItem(req OrderItemRequest, item *models.MenuItem) (models.OrderItem, error) {
	price := item.Price
	if req.Variant != "" {
		found := false
		for _, v := range item.Variants {
			if v.Name == req.Variant {
				price = v.Price
				found = true
				break
			}
		}
		if !found {
			return models.OrderItem{}, fmt.Errorf("menu item '%s' has no variant '%s'", item.Name, req.Variant)
		}
	}

	var addons []models.Addon
	for _, name := range req.Addons {
		found := false
		for _, a := range item.Addons {
			if a.Name == name {
				addons = append(addons, a)
				found = true
				break
			}
		}
		if !found {
			return models.OrderItem{}, fmt.Errorf("menu item '%s' has no addon '%s'", item.Name, name)
		}
	}

	return models.OrderItem{
		MenuItemID:          item.ID,
		Name:                item.Name,
		Quantity:            req.Quantity,
		Price:               price,
		Variant:             req.Variant,
		Addons:              addons,
		SpecialInstructions: req.SpecialInstructions,
	}, nil
}

func lineTotal(item models.OrderItem) float64 {
	total := item.Price
	for _, a := range item.Addons {
		total += a.Price
	}
	return total * float64(item.Quantity)
}

// CreateOrder places a new order for the calling customer. Pricing is
// recomputed from stored menu prices; the order insert and the restaurant
// order-count increment share one transaction.
func CreateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		fail(c, http.StatusBadRequest, "Valid payment method required")
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil || !restaurant.IsActive {
		fail(c, http.StatusBadRequest, "Restaurant is not available")
		return
	}

	var address models.Address
	if err := config.DB.First(&address, req.DeliveryAddressID).Error; err != nil || address.UserID != user.ID {
		fail(c, http.StatusBadRequest, "Invalid delivery address")
		return
	}

	var items []models.OrderItem
	var subtotal float64
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			fail(c, http.StatusBadRequest, fmt.Sprintf("Menu item %d not found", reqItem.MenuItemID))
			return
		}
		if menuItem.RestaurantID != restaurant.ID {
			fail(c, http.StatusBadRequest, "Menu item does not belong to this restaurant")
			return
		}
		if !menuItem.IsAvailable {
			fail(c, http.StatusBadRequest, fmt.Sprintf("Menu item '%s' is not available", menuItem.Name))
			return
		}
		snapshot, err := snapshotItem(reqItem, &menuItem)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		items = append(items, snapshot)
		subtotal += lineTotal(snapshot)
	}
	subtotal = round2(subtotal)

	if subtotal < restaurant.MinimumOrder {
		fail(c, http.StatusBadRequest,
			fmt.Sprintf("Order subtotal %.2f is below the restaurant minimum of %.2f", subtotal, restaurant.MinimumOrder))
		return
	}

	tax := round2(subtotal * config.C.TaxRate)
	pricing := models.Pricing{
		Subtotal:    subtotal,
		DeliveryFee: restaurant.DeliveryFee,
		TaxAmount:   tax,
		Total:       round2(subtotal + restaurant.DeliveryFee + tax),
	}

	etaMins := restaurant.DeliveryTimeMins
	if etaMins <= 0 {
		etaMins = 30
	}
	eta := time.Now().Add(time.Duration(etaMins) * time.Minute)

	order := models.Order{
		OrderNumber:       generateOrderNumber(),
		CustomerID:        user.ID,
		RestaurantID:      restaurant.ID,
		Items:             items,
		DeliveryAddressID: address.ID,
		DeliveryLatitude:  address.Latitude,
		DeliveryLongitude: address.Longitude,
		Pricing:           pricing,
		PaymentMethod:     req.PaymentMethod,
		PaymentStatus:     "pending",
		Status:            models.StatusPlaced,
		StatusHistory: []models.StatusHistoryEntry{{
			Status:    models.StatusPlaced,
			Timestamp: time.Now(),
			Note:      "Order placed successfully",
		}},
		EstimatedDeliveryTime: &eta,
		SpecialInstructions:   req.SpecialInstructions,
		ContactlessDelivery:   req.ContactlessDelivery,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
			Update("total_orders", gorm.Expr("total_orders + 1")).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to place order")
		return
	}

	respond(c, http.StatusCreated, "Order placed successfully", gin.H{"order": order})
}

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, limit := parsePage(c, 10)

	query := config.DB.Model(&models.Order{}).Where("customer_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Order("created_at desc").Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respond(c, http.StatusOK, "", gin.H{
		"orders":      orders,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetRestaurantOrders lists orders for the caller's restaurant.
func GetRestaurantOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", user.ID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}

	page, limit := parsePage(c, 20)
	query := config.DB.Model(&models.Order{}).Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Order("created_at desc").Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respond(c, http.StatusOK, "", gin.H{
		"orders":      orders,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetOrder returns one order to the customer, the restaurant owner, the
// assigned delivery partner, or an admin.
func GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, order.RestaurantID).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	if !authz.CanViewOrder(&order, restaurant.OwnerID, user.ID, user.Role) {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}
	respond(c, http.StatusOK, "", gin.H{"order": order})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus moves an order along the lifecycle. Every change must
// follow a legal edge from the current state, admins included. A delivery
// partner claims an unassigned order when taking it to picked_up.
func UpdateOrderStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	if !statemachine.ValidStatus(req.Status) {
		fail(c, http.StatusBadRequest, "Unknown order status")
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, order.RestaurantID).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	if user.Role == models.RoleDeliveryPartner {
		if order.DeliveryPartnerID != nil && *order.DeliveryPartnerID != user.ID {
			fail(c, http.StatusConflict, "Order is already assigned to another delivery partner")
			return
		}
		// An unassigned partner's only move is claiming the order at pickup.
		if order.DeliveryPartnerID == nil && req.Status != models.StatusPickedUp {
			fail(c, http.StatusForbidden, "Claim the order by marking it picked_up first")
			return
		}
	}
	if !authz.CanUpdateOrderStatus(&order, restaurant.OwnerID, user.ID, user.Role) {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	var updated models.Order
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, order.ID).Error; err != nil {
			return err
		}
		if err := statemachine.CanTransition(updated.Status, req.Status); err != nil {
			return err
		}

		if user.Role == models.RoleDeliveryPartner && updated.DeliveryPartnerID == nil &&
			req.Status == models.StatusPickedUp {
			updated.DeliveryPartnerID = &user.ID
		}

		now := time.Now()
		updated.Status = req.Status
		updated.StatusHistory = append(updated.StatusHistory, models.StatusHistoryEntry{
			Status:    req.Status,
			Timestamp: now,
			Note:      req.Note,
		})
		if req.Status == models.StatusDelivered {
			updated.ActualDeliveryTime = &now
		}
		return tx.Save(&updated).Error
	})
	if txErr != nil {
		var terr *statemachine.TransitionError
		if errors.As(txErr, &terr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success":         false,
				"message":         "Invalid state transition",
				"reason":          terr.Error(),
				"currentStatus":   terr.From,
				"validNextStates": statemachine.ValidNext(terr.From),
			})
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	respond(c, http.StatusOK, "Order status updated successfully", gin.H{"order": updated})
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels an order while it is still placed or confirmed;
// customer (owner) or admin only.
func CancelOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		failBinding(c, err)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	if !authz.CanModify(order.CustomerID, user.ID, user.Role) {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	var cancelled models.Order
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cancelled, order.ID).Error; err != nil {
			return err
		}
		if err := statemachine.CanTransition(cancelled.Status, models.StatusCancelled); err != nil {
			return err
		}
		cancelled.Status = models.StatusCancelled
		cancelled.CancellationReason = req.Reason
		cancelled.CancelledByID = &user.ID
		cancelled.StatusHistory = append(cancelled.StatusHistory, models.StatusHistoryEntry{
			Status:    models.StatusCancelled,
			Timestamp: time.Now(),
			Note:      req.Reason,
		})
		return tx.Save(&cancelled).Error
	})
	if txErr != nil {
		var terr *statemachine.TransitionError
		if errors.As(txErr, &terr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success":       false,
				"message":       "Order cannot be cancelled at this stage",
				"currentStatus": terr.From,
			})
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	respond(c, http.StatusOK, "Order cancelled successfully", gin.H{"order": cancelled})
}

// AdminGetAllOrders lists every order on the platform; admin only.
func AdminGetAllOrders(c *gin.Context) {
	page, limit := parsePage(c, 20)

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("order_number LIKE ?", "%"+strings.ToUpper(search)+"%")
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Order("created_at desc").Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respond(c, http.StatusOK, "", gin.H{
		"orders":      orders,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}
