package handlers

import (
	"net/http"

	"quickbite-api/authz"
	"quickbite-api/config"
	"quickbite-api/middleware"
	"quickbite-api/models"

	"github.com/gin-gonic/gin"
)

// GetMenuByRestaurant returns a restaurant's menu with optional filters,
// both flat and grouped by category. The grouping is recomputed per call.
func GetMenuByRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("restaurantId")).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}

	query := config.DB.Where("restaurant_id = ?", restaurant.ID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if foodType := c.Query("foodType"); foodType != "" {
		query = query.Where("food_type = ?", foodType)
	}
	if avail := c.Query("isAvailable"); avail != "" {
		query = query.Where("is_available = ?", avail == "true")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var items []models.MenuItem
	if err := query.Order("category asc, name asc").Find(&items).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}

	grouped := map[string][]models.MenuItem{}
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	respond(c, http.StatusOK, "", gin.H{
		"menuItems":   items,
		"groupedMenu": grouped,
	})
}

// GetMenuItem returns a single menu item.
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Menu item not found")
		return
	}
	respond(c, http.StatusOK, "", gin.H{"menuItem": item})
}

type CreateMenuItemRequest struct {
	Name          string           `json:"name" binding:"required,min=2"`
	Description   string           `json:"description" binding:"required"`
	Category      string           `json:"category" binding:"required"`
	Image         string           `json:"image"`
	FoodType      models.FoodType  `json:"food_type" binding:"required"`
	Price         float64          `json:"price" binding:"required,gt=0"`
	Variants      []models.Variant `json:"variants"`
	Addons        []models.Addon   `json:"addons"`
	IsRecommended bool             `json:"is_recommended"`
}

// CreateMenuItem adds an item to the caller's restaurant.
func CreateMenuItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", user.ID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found for this user")
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	if !models.ValidFoodType(req.FoodType) {
		fail(c, http.StatusBadRequest, "Invalid food type. Must be: veg, non-veg, vegan, or egg")
		return
	}

	item := models.MenuItem{
		RestaurantID:  restaurant.ID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Image:         req.Image,
		FoodType:      req.FoodType,
		Price:         req.Price,
		Variants:      req.Variants,
		Addons:        req.Addons,
		IsRecommended: req.IsRecommended,
		IsAvailable:   true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create menu item")
		return
	}
	respond(c, http.StatusCreated, "Menu item created successfully", gin.H{"menuItem": item})
}

// GetMyMenu returns every item of the caller's restaurant, including
// unavailable ones.
func GetMyMenu(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", user.ID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}

	var items []models.MenuItem
	if err := config.DB.Where("restaurant_id = ?", restaurant.ID).
		Order("category asc, name asc").Find(&items).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}
	respond(c, http.StatusOK, "", gin.H{"menuItems": items})
}

// loadOwnedMenuItem fetches the item and checks the caller may modify it.
// Writes the error response itself and returns nil on failure.
func loadOwnedMenuItem(c *gin.Context, user *models.User) *models.MenuItem {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Menu item not found")
		return nil
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, item.RestaurantID).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return nil
	}
	if !authz.CanModify(restaurant.OwnerID, user.ID, user.Role) {
		fail(c, http.StatusForbidden, "Not authorized")
		return nil
	}
	return &item
}

type UpdateMenuItemRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Category      *string          `json:"category"`
	Image         *string          `json:"image"`
	FoodType      *models.FoodType `json:"food_type"`
	Price         *float64         `json:"price"`
	Variants      []models.Variant `json:"variants"`
	Addons        []models.Addon   `json:"addons"`
	IsRecommended *bool            `json:"is_recommended"`
}

// UpdateMenuItem edits an item; owning partner or admin.
func UpdateMenuItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	item := loadOwnedMenuItem(c, user)
	if item == nil {
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	if req.FoodType != nil && !models.ValidFoodType(*req.FoodType) {
		fail(c, http.StatusBadRequest, "Invalid food type. Must be: veg, non-veg, vegan, or egg")
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		fail(c, http.StatusBadRequest, "Price must be greater than zero")
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Image != nil {
		item.Image = *req.Image
	}
	if req.FoodType != nil {
		item.FoodType = *req.FoodType
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Variants != nil {
		item.Variants = req.Variants
	}
	if req.Addons != nil {
		item.Addons = req.Addons
	}
	if req.IsRecommended != nil {
		item.IsRecommended = *req.IsRecommended
	}

	if err := config.DB.Save(item).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update menu item")
		return
	}
	respond(c, http.StatusOK, "Menu item updated successfully", gin.H{"menuItem": item})
}

// DeleteMenuItem removes an item; owning partner or admin.
func DeleteMenuItem(c *gin.Context) {
	user := middleware.CurrentUser(c)
	item := loadOwnedMenuItem(c, user)
	if item == nil {
		return
	}
	if err := config.DB.Delete(item).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete menu item")
		return
	}
	respond(c, http.StatusOK, "Menu item deleted successfully", nil)
}

// ToggleAvailability flips an item's availability without touching the rest
// of the record.
func ToggleAvailability(c *gin.Context) {
	user := middleware.CurrentUser(c)
	item := loadOwnedMenuItem(c, user)
	if item == nil {
		return
	}

	item.IsAvailable = !item.IsAvailable
	if err := config.DB.Model(item).Update("is_available", item.IsAvailable).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update menu item")
		return
	}

	msg := "Menu item marked unavailable"
	if item.IsAvailable {
		msg = "Menu item marked available"
	}
	respond(c, http.StatusOK, msg, gin.H{"menuItem": item})
}
