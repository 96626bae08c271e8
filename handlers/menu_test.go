package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"quickbite-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCrudAndFilters(t *testing.T) {
	r := setupRouter(t)
	ownerToken, _ := registerUser(t, r, "Owner", "owner@example.com", "9000000001", models.RoleRestaurantPartner)
	restaurantID := seedRestaurant(t, ownerToken, "villa@example.com", r)

	seedMenuItem(t, ownerToken, r, gin.H{
		"name": "Paneer Tikka", "description": "Char-grilled paneer",
		"category": "Starters", "food_type": "veg", "price": 250,
	})
	seedMenuItem(t, ownerToken, r, gin.H{
		"name": "Chicken 65", "description": "Deep-fried chicken bites",
		"category": "Starters", "food_type": "non-veg", "price": 280,
	})
	seedMenuItem(t, ownerToken, r, gin.H{
		"name": "Dal Makhani", "description": "Slow-cooked black lentils",
		"category": "Mains", "food_type": "veg", "price": 220,
	})

	base := fmt.Sprintf("/api/menu/restaurant/%d", restaurantID)

	w := doRequest(r, http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Len(t, body["menuItems"].([]interface{}), 3)
	grouped := body["groupedMenu"].(map[string]interface{})
	assert.Len(t, grouped["Starters"].([]interface{}), 2)
	assert.Len(t, grouped["Mains"].([]interface{}), 1)

	w = doRequest(r, http.MethodGet, base+"?foodType=veg", "", nil)
	assert.Len(t, decode(t, w)["menuItems"].([]interface{}), 2)

	w = doRequest(r, http.MethodGet, base+"?category=Mains", "", nil)
	assert.Len(t, decode(t, w)["menuItems"].([]interface{}), 1)

	w = doRequest(r, http.MethodGet, base+"?search=chicken", "", nil)
	assert.Len(t, decode(t, w)["menuItems"].([]interface{}), 1)
}

func TestCreateMenuItemValidation(t *testing.T) {
	r := setupRouter(t)
	ownerToken, _ := registerUser(t, r, "Owner", "owner@example.com", "9000000001", models.RoleRestaurantPartner)
	seedRestaurant(t, ownerToken, "villa@example.com", r)

	w := doRequest(r, http.MethodPost, "/api/menu", ownerToken, gin.H{
		"name": "Mystery Dish", "description": "?", "category": "Specials",
		"food_type": "raw", "price": 100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown food type")

	w = doRequest(r, http.MethodPost, "/api/menu", ownerToken, gin.H{
		"name": "Free Lunch", "description": "?", "category": "Specials",
		"food_type": "veg", "price": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "price must be positive")
}

func TestCreateMenuItemNeedsRestaurant(t *testing.T) {
	r := setupRouter(t)
	token, _ := registerUser(t, r, "NoShop", "noshop@example.com", "9000000001", models.RoleRestaurantPartner)

	w := doRequest(r, http.MethodPost, "/api/menu", token, gin.H{
		"name": "Orphan Dish", "description": "?", "category": "Specials",
		"food_type": "veg", "price": 100,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMenuItemAuthz(t *testing.T) {
	r := setupRouter(t)
	ownerToken, _ := registerUser(t, r, "Owner", "owner@example.com", "9000000001", models.RoleRestaurantPartner)
	seedRestaurant(t, ownerToken, "villa@example.com", r)
	itemID := seedMenuItem(t, ownerToken, r, gin.H{
		"name": "Paneer Tikka", "description": "Char-grilled paneer",
		"category": "Starters", "food_type": "veg", "price": 250,
	})
	path := fmt.Sprintf("/api/menu/%d", itemID)

	rivalToken, _ := registerUser(t, r, "Rival", "rival@example.com", "9000000002", models.RoleRestaurantPartner)
	seedRestaurant(t, rivalToken, "rival-kitchen@example.com", r)
	w := doRequest(r, http.MethodPut, path, rivalToken, gin.H{"price": 1})
	assert.Equal(t, http.StatusForbidden, w.Code, "another partner cannot edit the item")

	w = doRequest(r, http.MethodPut, path, ownerToken, gin.H{"price": 275, "is_recommended": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode(t, w)["menuItem"].(map[string]interface{})
	assert.Equal(t, 275.0, item["price"])
	assert.Equal(t, true, item["is_recommended"])

	w = doRequest(r, http.MethodPut, path, ownerToken, gin.H{"price": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleAvailability(t *testing.T) {
	r := setupRouter(t)
	ownerToken, _ := registerUser(t, r, "Owner", "owner@example.com", "9000000001", models.RoleRestaurantPartner)
	restaurantID := seedRestaurant(t, ownerToken, "villa@example.com", r)
	itemID := seedMenuItem(t, ownerToken, r, gin.H{
		"name": "Paneer Tikka", "description": "Char-grilled paneer",
		"category": "Starters", "food_type": "veg", "price": 250,
	})

	w := doRequest(r, http.MethodPatch, fmt.Sprintf("/api/menu/%d/toggle-availability", itemID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode(t, w)["menuItem"].(map[string]interface{})
	assert.Equal(t, false, item["is_available"])

	// The customer-facing menu can exclude it.
	w = doRequest(r, http.MethodGet,
		fmt.Sprintf("/api/menu/restaurant/%d?isAvailable=true", restaurantID), "", nil)
	assert.Empty(t, decode(t, w)["menuItems"])
}

func TestDeleteMenuItem(t *testing.T) {
	r := setupRouter(t)
	ownerToken, _ := registerUser(t, r, "Owner", "owner@example.com", "9000000001", models.RoleRestaurantPartner)
	seedRestaurant(t, ownerToken, "villa@example.com", r)
	itemID := seedMenuItem(t, ownerToken, r, gin.H{
		"name": "Paneer Tikka", "description": "Char-grilled paneer",
		"category": "Starters", "food_type": "veg", "price": 250,
	})
	path := fmt.Sprintf("/api/menu/%d", itemID)

	w := doRequest(r, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
