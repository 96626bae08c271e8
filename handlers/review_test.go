package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"quickbite-api/config"
	"quickbite-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deliverOrder drives an order all the way to delivered.
func deliverOrder(t *testing.T, f *orderFixture, orderID uint) {
	t.Helper()
	for _, step := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusReady,
		models.StatusPickedUp, models.StatusOutForDelivery, models.StatusDelivered,
	} {
		w := updateStatus(f.r, f.ownerToken, orderID, step)
		require.Equal(t, http.StatusOK, w.Code, "step %s: %s", step, w.Body.String())
	}
}

func reviewPayload(orderID uint, rating int) gin.H {
	return gin.H{
		"order_id":    orderID,
		"food_rating": rating,
		"review_text": "Great food, arrived hot",
	}
}

func TestCreateReviewRequiresDelivery(t *testing.T) {
	f := newOrderFixture(t)
	orderID := placeOrder(t, f.customerToken, f.r, f.restaurantID, f.itemID, f.addressID)

	w := doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, reviewPayload(orderID, 5))
	assert.Equal(t, http.StatusBadRequest, w.Code, "only delivered orders can be reviewed")

	deliverOrder(t, f, orderID)
	w = doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, reviewPayload(orderID, 5))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	review := decode(t, w)["review"].(map[string]interface{})
	assert.Equal(t, 5.0, review["food_rating"])

	// One review per order.
	w = doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, reviewPayload(orderID, 3))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewOnlyByOrderCustomer(t *testing.T) {
	f := newOrderFixture(t)
	orderID := placeOrder(t, f.customerToken, f.r, f.restaurantID, f.itemID, f.addressID)
	deliverOrder(t, f, orderID)

	malloryToken, _ := registerUser(t, f.r, "Mallory", "mallory@example.com", "9000000009", models.RoleCustomer)
	w := doRequest(f.r, http.MethodPost, "/api/reviews", malloryToken, reviewPayload(orderID, 1))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewRatingAggregate(t *testing.T) {
	f := newOrderFixture(t)

	first := placeOrder(t, f.customerToken, f.r, f.restaurantID, f.itemID, f.addressID)
	deliverOrder(t, f, first)
	second := placeOrder(t, f.customerToken, f.r, f.restaurantID, f.itemID, f.addressID)
	deliverOrder(t, f, second)

	w := doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, reviewPayload(first, 5))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var restaurant models.Restaurant
	require.NoError(t, config.DB.First(&restaurant, f.restaurantID).Error)
	assert.Equal(t, 5.0, restaurant.Rating)
	assert.Equal(t, 1, restaurant.TotalRatings)

	w = doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, reviewPayload(second, 4))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(&restaurant, f.restaurantID).Error)
	assert.InDelta(t, 4.5, restaurant.Rating, 0.001)
	assert.Equal(t, 2, restaurant.TotalRatings)
}

func TestReviewValidation(t *testing.T) {
	f := newOrderFixture(t)
	orderID := placeOrder(t, f.customerToken, f.r, f.restaurantID, f.itemID, f.addressID)
	deliverOrder(t, f, orderID)

	w := doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, gin.H{
		"order_id": orderID, "food_rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "rating capped at 5")

	w = doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, gin.H{
		"order_id": 9999, "food_rating": 4,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRestaurantReviews(t *testing.T) {
	f := newOrderFixture(t)
	orderID := placeOrder(t, f.customerToken, f.r, f.restaurantID, f.itemID, f.addressID)
	deliverOrder(t, f, orderID)
	w := doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, reviewPayload(orderID, 4))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(f.r, http.MethodGet, fmt.Sprintf("/api/reviews/restaurant/%d", f.restaurantID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	require.Len(t, body["reviews"].([]interface{}), 1)
	assert.Equal(t, 1.0, body["total"])

	w = doRequest(f.r, http.MethodGet, "/api/reviews/restaurant/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondToReview(t *testing.T) {
	f := newOrderFixture(t)
	orderID := placeOrder(t, f.customerToken, f.r, f.restaurantID, f.itemID, f.addressID)
	deliverOrder(t, f, orderID)
	w := doRequest(f.r, http.MethodPost, "/api/reviews", f.customerToken, reviewPayload(orderID, 4))
	require.Equal(t, http.StatusCreated, w.Code)
	reviewID := asID(t, decode(t, w)["review"].(map[string]interface{})["id"])
	path := fmt.Sprintf("/api/reviews/%d/response", reviewID)

	// A different restaurant's partner cannot reply.
	rivalToken, _ := registerUser(t, f.r, "Rival", "rival@example.com", "9000000008", models.RoleRestaurantPartner)
	seedRestaurant(t, rivalToken, "rival-kitchen@example.com", f.r)
	w = doRequest(f.r, http.MethodPut, path, rivalToken, gin.H{"text": "Sorry?"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(f.r, http.MethodPut, path, f.ownerToken, gin.H{"text": "Thank you for the kind words!"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	review := decode(t, w)["review"].(map[string]interface{})
	response := review["response"].(map[string]interface{})
	assert.Equal(t, "Thank you for the kind words!", response["text"])

	// The reply is public on the restaurant's review list.
	w = doRequest(f.r, http.MethodGet, fmt.Sprintf("/api/reviews/restaurant/%d", f.restaurantID), "", nil)
	listed := decode(t, w)["reviews"].([]interface{})[0].(map[string]interface{})
	assert.NotNil(t, listed["response"])
}
