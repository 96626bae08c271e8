package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"quickbite-api/config"
	"quickbite-api/models"
	"quickbite-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var dbSeq int64

// setupRouter gives each test its own named in-memory database and a fully
// routed engine. Tests in this package share the config globals, so they must
// not run in parallel.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared&_pragma=busy_timeout(10000)",
		atomic.AddInt64(&dbSeq, 1))
	require.NoError(t, config.InitDB(dsn))

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doRequest(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func asID(t *testing.T, v interface{}) uint {
	t.Helper()
	f, ok := v.(float64)
	require.True(t, ok, "expected numeric id, got %T", v)
	return uint(f)
}

// registerUser creates an account through the API and returns its access
// token and id.
func registerUser(t *testing.T, r *gin.Engine, name, email, phone string, role models.UserRole) (string, uint) {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
		"phone":    phone,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	token := body["authToken"].(string)
	id := asID(t, body["user"].(map[string]interface{})["id"])
	return token, id
}

// seedRestaurant registers a vendor profile for the token's user and flips it
// approved directly in the database so it shows up on the public list.
func seedRestaurant(t *testing.T, ownerToken, email string, r *gin.Engine) uint {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/restaurants", ownerToken, gin.H{
		"name":               "Spice Villa",
		"email":              email,
		"phone":              "9876500000",
		"description":        "North Indian kitchen",
		"cuisines":           []string{"North Indian"},
		"fssai_license":      "FSSAI-10012",
		"minimum_order":      100,
		"delivery_fee":       30,
		"delivery_time_mins": 40,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	id := asID(t, body["restaurant"].(map[string]interface{})["id"])

	require.NoError(t, config.DB.Model(&models.Restaurant{}).
		Where("id = ?", id).Update("is_approved", true).Error)
	return id
}

// seedMenuItem adds one item to the owner's restaurant.
func seedMenuItem(t *testing.T, ownerToken string, r *gin.Engine, payload gin.H) uint {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/menu", ownerToken, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	return asID(t, body["menuItem"].(map[string]interface{})["id"])
}

// seedAddress saves a delivery address for the token's user.
func seedAddress(t *testing.T, token string, r *gin.Engine, label string) uint {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/addresses", token, gin.H{
		"label":         label,
		"address_line1": "221B Baker Street",
		"city":          "Metropolis",
		"state":         "KA",
		"pincode":       "560001",
		"latitude":      12.97,
		"longitude":     77.59,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	return asID(t, body["address"].(map[string]interface{})["id"])
}

// placeOrder submits a simple two-of-one-item order and returns the order id.
func placeOrder(t *testing.T, token string, r *gin.Engine, restaurantID, itemID, addressID uint) uint {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/orders", token, gin.H{
		"restaurant_id":       restaurantID,
		"delivery_address_id": addressID,
		"payment_method":      "upi",
		"items": []gin.H{
			{"menu_item_id": itemID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	return asID(t, body["order"].(map[string]interface{})["id"])
}

// updateStatus drives one lifecycle step and returns the recorder.
func updateStatus(r *gin.Engine, token string, orderID uint, status models.OrderStatus) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", orderID), token,
		gin.H{"status": status})
}
