package handlers

import (
	"math"
	"net/http"
	"sort"
	"strconv"

	"quickbite-api/authz"
	"quickbite-api/config"
	"quickbite-api/middleware"
	"quickbite-api/models"

	"github.com/gin-gonic/gin"
)

// parsePage reads page/limit query params with sane bounds.
func parsePage(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int64 {
	return (total + int64(limit) - 1) / int64(limit)
}

// haversineKm returns the great-circle distance between two coordinates.
// SQLite has no geospatial index, so radius filtering happens in memory.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// ListRestaurants returns the public catalog with search, filters, sorting,
// and pagination. Only active restaurants are listed, and only approved ones
// while the approval gate is enabled.
func ListRestaurants(c *gin.Context) {
	page, limit := parsePage(c, 10)

	query := config.DB.Model(&models.Restaurant{}).Where("is_active = ?", true)
	if config.C.RequireApproval {
		query = query.Where("is_approved = ?", true)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR cuisines LIKE ?", like, like, like)
	}
	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisines LIKE ?", "%"+cuisine+"%")
	}
	if c.Query("isVeg") == "true" {
		query = query.Where("is_pure_veg = ?", true)
	}
	if minRating := c.Query("minRating"); minRating != "" {
		if r, err := strconv.ParseFloat(minRating, 64); err == nil {
			query = query.Where("rating >= ?", r)
		}
	}

	orderClause := "created_at desc"
	switch c.Query("sortBy") {
	case "rating":
		orderClause = "rating desc"
	case "deliveryTime":
		orderClause = "delivery_time_mins asc"
	case "deliveryFee":
		orderClause = "delivery_fee asc"
	}

	latStr, lngStr := c.Query("latitude"), c.Query("longitude")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			fail(c, http.StatusBadRequest, "Invalid coordinates")
			return
		}
		radiusKm := 10.0
		if radStr := c.Query("radius"); radStr != "" {
			if r, err := strconv.ParseFloat(radStr, 64); err == nil && r > 0 {
				radiusKm = r
			}
		}

		var candidates []models.Restaurant
		if err := query.Order(orderClause).Find(&candidates).Error; err != nil {
			fail(c, http.StatusInternalServerError, "Failed to fetch restaurants")
			return
		}
		var within []models.Restaurant
		for _, r := range candidates {
			if haversineKm(lat, lng, r.Latitude, r.Longitude) <= radiusKm {
				within = append(within, r)
			}
		}
		if c.Query("sortBy") == "" {
			sort.SliceStable(within, func(i, j int) bool {
				return haversineKm(lat, lng, within[i].Latitude, within[i].Longitude) <
					haversineKm(lat, lng, within[j].Latitude, within[j].Longitude)
			})
		}

		total := int64(len(within))
		start := (page - 1) * limit
		if start > len(within) {
			start = len(within)
		}
		end := start + limit
		if end > len(within) {
			end = len(within)
		}
		respond(c, http.StatusOK, "", gin.H{
			"restaurants": within[start:end],
			"totalPages":  totalPages(total, limit),
			"currentPage": page,
			"total":       total,
		})
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch restaurants")
		return
	}
	var restaurants []models.Restaurant
	if err := query.Order(orderClause).Limit(limit).Offset((page - 1) * limit).
		Find(&restaurants).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch restaurants")
		return
	}

	respond(c, http.StatusOK, "", gin.H{
		"restaurants": restaurants,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetRestaurant returns one restaurant. Bank details and GST are never
// serialized.
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	respond(c, http.StatusOK, "", gin.H{"restaurant": restaurant})
}

type CreateRestaurantRequest struct {
	Name             string                     `json:"name" binding:"required,min=2"`
	Email            string                     `json:"email" binding:"required,email"`
	Phone            string                     `json:"phone" binding:"required"`
	Description      string                     `json:"description" binding:"required"`
	Cuisines         []string                   `json:"cuisines" binding:"required,min=1"`
	Logo             string                     `json:"logo"`
	BannerImage      string                     `json:"banner_image"`
	Address          models.RestaurantAddress   `json:"address"`
	Latitude         float64                    `json:"latitude"`
	Longitude        float64                    `json:"longitude"`
	OperatingHours   map[string]models.DayHours `json:"operating_hours"`
	DeliveryTimeMins int                        `json:"delivery_time_mins"`
	MinimumOrder     float64                    `json:"minimum_order"`
	DeliveryRadiusKm float64                    `json:"delivery_radius_km"`
	DeliveryFee      float64                    `json:"delivery_fee"`
	IsPureVeg        bool                       `json:"is_pure_veg"`
	FSSAILicense     string                     `json:"fssai_license" binding:"required"`
	GSTNumber        string                     `json:"gst_number"`
	BankDetails      models.BankDetails         `json:"bank_details"`
}

// CreateRestaurant registers a vendor profile for the caller. New
// restaurants start unapproved and stay off the public list until an admin
// approves them.
func CreateRestaurant(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	var existing models.Restaurant
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		fail(c, http.StatusConflict, "Restaurant with this email already exists")
		return
	}
	if err := config.DB.Where("owner_id = ?", user.ID).First(&existing).Error; err == nil {
		fail(c, http.StatusConflict, "You already own a restaurant")
		return
	}

	restaurant := models.Restaurant{
		OwnerID:          user.ID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Description:      req.Description,
		Cuisines:         req.Cuisines,
		Logo:             req.Logo,
		BannerImage:      req.BannerImage,
		Address:          req.Address,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		OperatingHours:   req.OperatingHours,
		DeliveryTimeMins: req.DeliveryTimeMins,
		MinimumOrder:     req.MinimumOrder,
		DeliveryRadiusKm: req.DeliveryRadiusKm,
		DeliveryFee:      req.DeliveryFee,
		IsPureVeg:        req.IsPureVeg,
		FSSAILicense:     req.FSSAILicense,
		GSTNumber:        req.GSTNumber,
		BankDetails:      req.BankDetails,
		IsActive:         true,
		IsApproved:       false,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create restaurant")
		return
	}

	// Link the vendor profile back to the owner's account.
	config.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"role":          models.RoleRestaurantPartner,
	})

	respond(c, http.StatusCreated, "Restaurant registered successfully. Awaiting admin approval.", gin.H{
		"restaurant": restaurant,
	})
}

// GetMyRestaurant returns the caller's own restaurant regardless of its
// approval state.
func GetMyRestaurant(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", user.ID).First(&restaurant).Error; err != nil {
		fail(c, http.StatusNotFound, "No restaurant found for this user")
		return
	}
	respond(c, http.StatusOK, "", gin.H{"restaurant": restaurant})
}

type UpdateRestaurantRequest struct {
	Name             *string                    `json:"name"`
	Phone            *string                    `json:"phone"`
	Description      *string                    `json:"description"`
	Cuisines         []string                   `json:"cuisines"`
	Logo             *string                    `json:"logo"`
	BannerImage      *string                    `json:"banner_image"`
	Address          *models.RestaurantAddress  `json:"address"`
	Latitude         *float64                   `json:"latitude"`
	Longitude        *float64                   `json:"longitude"`
	OperatingHours   map[string]models.DayHours `json:"operating_hours"`
	DeliveryTimeMins *int                       `json:"delivery_time_mins"`
	MinimumOrder     *float64                   `json:"minimum_order"`
	DeliveryRadiusKm *float64                   `json:"delivery_radius_km"`
	DeliveryFee      *float64                   `json:"delivery_fee"`
	IsPureVeg        *bool                      `json:"is_pure_veg"`
	BankDetails      *models.BankDetails        `json:"bank_details"`
}

// UpdateRestaurant edits a restaurant's profile; owner or admin only.
// Approval and active flags have dedicated endpoints and cannot be set here.
func UpdateRestaurant(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	if !authz.CanModify(restaurant.OwnerID, user.ID, user.Role) {
		fail(c, http.StatusForbidden, "Not authorized to update this restaurant")
		return
	}

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}
	if req.Cuisines != nil {
		restaurant.Cuisines = req.Cuisines
	}
	if req.Logo != nil {
		restaurant.Logo = *req.Logo
	}
	if req.BannerImage != nil {
		restaurant.BannerImage = *req.BannerImage
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.Latitude != nil {
		restaurant.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		restaurant.Longitude = *req.Longitude
	}
	if req.OperatingHours != nil {
		restaurant.OperatingHours = req.OperatingHours
	}
	if req.DeliveryTimeMins != nil {
		restaurant.DeliveryTimeMins = *req.DeliveryTimeMins
	}
	if req.MinimumOrder != nil {
		restaurant.MinimumOrder = *req.MinimumOrder
	}
	if req.DeliveryRadiusKm != nil {
		restaurant.DeliveryRadiusKm = *req.DeliveryRadiusKm
	}
	if req.DeliveryFee != nil {
		restaurant.DeliveryFee = *req.DeliveryFee
	}
	if req.IsPureVeg != nil {
		restaurant.IsPureVeg = *req.IsPureVeg
	}
	if req.BankDetails != nil {
		restaurant.BankDetails = *req.BankDetails
	}

	if err := config.DB.Save(&restaurant).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update restaurant")
		return
	}
	respond(c, http.StatusOK, "Restaurant updated successfully", gin.H{"restaurant": restaurant})
}

// ToggleRestaurantStatus flips the active flag; owner or admin.
func ToggleRestaurantStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	if !authz.CanModify(restaurant.OwnerID, user.ID, user.Role) {
		fail(c, http.StatusForbidden, "Not authorized")
		return
	}

	restaurant.IsActive = !restaurant.IsActive
	if err := config.DB.Model(&restaurant).Update("is_active", restaurant.IsActive).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update restaurant")
		return
	}

	msg := "Restaurant deactivated successfully"
	if restaurant.IsActive {
		msg = "Restaurant activated successfully"
	}
	respond(c, http.StatusOK, msg, gin.H{"restaurant": restaurant})
}

// ApproveRestaurant opens the approval gate for one restaurant; admin only.
func ApproveRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	if err := config.DB.Model(&restaurant).Update("is_approved", true).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to approve restaurant")
		return
	}
	restaurant.IsApproved = true
	respond(c, http.StatusOK, "Restaurant approved successfully", gin.H{"restaurant": restaurant})
}

// DeleteRestaurant removes a restaurant; admin only.
func DeleteRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		fail(c, http.StatusNotFound, "Restaurant not found")
		return
	}
	if err := config.DB.Delete(&restaurant).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete restaurant")
		return
	}
	respond(c, http.StatusOK, "Restaurant deleted successfully", nil)
}
