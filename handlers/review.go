package handlers

import (
	"net/http"
	"time"

	"quickbite-api/authz"
	"quickbite-api/config"
	"quickbite-api/middleware"
	"quickbite-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	OrderID        uint   `json:"order_id" binding:"required"`
	FoodRating     int    `json:"food_rating" binding:"required,min=1,max=5"`
	DeliveryRating int    `json:"delivery_rating" binding:"omitempty,min=1,max=5"`
	ReviewText     string `json:"review_text"`
}

// CreateReview records feedback for a delivered order and folds the food
// rating into the restaurant's aggregate in the same transaction.
func CreateReview(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, req.OrderID).Error; err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	if order.CustomerID != user.ID {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}
	if order.Status != models.StatusDelivered {
		fail(c, http.StatusBadRequest, "Only delivered orders can be reviewed")
		return
	}

	var existing models.Review
	if err := config.DB.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
		fail(c, http.StatusConflict, "This order has already been reviewed")
		return
	}

	review := models.Review{
		OrderID:           order.ID,
		CustomerID:        user.ID,
		RestaurantID:      order.RestaurantID,
		DeliveryPartnerID: order.DeliveryPartnerID,
		FoodRating:        req.FoodRating,
		DeliveryRating:    req.DeliveryRating,
		ReviewText:        req.ReviewText,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, order.RestaurantID).Error; err != nil {
			return err
		}
		newCount := restaurant.TotalRatings + 1
		newRating := (restaurant.Rating*float64(restaurant.TotalRatings) + float64(req.FoodRating)) / float64(newCount)
		return tx.Model(&restaurant).Updates(map[string]interface{}{
			"total_ratings": newCount,
			"rating":        newRating,
		}).Error
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	respond(c, http.StatusCreated, "Review submitted successfully", gin.H{"review": review})
}

// GetRestaurantReviews lists a restaurant's reviews, newest first.
func GetRestaurantReviews(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("restaurantId")).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}

	page, limit := parsePage(c, 10)
	query := config.DB.Model(&models.Review{}).Where("restaurant_id = ?", restaurant.ID)

	var total int64
	query.Count(&total)

	var reviews []models.Review
	if err := query.Order("created_at desc").Limit(limit).Offset((page - 1) * limit).
		Find(&reviews).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	respond(c, http.StatusOK, "", gin.H{
		"reviews":     reviews,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

type ReviewResponseRequest struct {
	Text string `json:"text" binding:"required"`
}

// RespondToReview lets the restaurant owner (or an admin) reply to a review.
func RespondToReview(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var review models.Review
	if err := config.DB.First(&review, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Review not found")
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, review.RestaurantID).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	if !authz.CanModify(restaurant.OwnerID, user.ID, user.Role) {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	var req ReviewResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	review.Response = &models.ReviewResponse{
		Text: req.Text,
		ByID: user.ID,
		Date: time.Now(),
	}
	if err := config.DB.Save(&review).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save response")
		return
	}
	respond(c, http.StatusOK, "Response saved successfully", gin.H{"review": review})
}
