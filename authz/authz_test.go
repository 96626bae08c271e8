package authz

import (
	"testing"

	"quickbite-api/models"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(models.RoleAdmin))
	assert.True(t, IsAdmin(models.RoleSupportAdmin))
	assert.False(t, IsAdmin(models.RoleCustomer))
	assert.False(t, IsAdmin(models.RoleRestaurantPartner))
	assert.False(t, IsAdmin(models.RoleDeliveryPartner))
}

func TestCanModify(t *testing.T) {
	assert.True(t, CanModify(1, 1, models.RoleCustomer), "owner may modify")
	assert.True(t, CanModify(1, 2, models.RoleAdmin), "admin may modify")
	assert.True(t, CanModify(1, 2, models.RoleSupportAdmin))
	assert.False(t, CanModify(1, 2, models.RoleCustomer), "stranger may not")
	assert.False(t, CanModify(1, 2, models.RoleRestaurantPartner))
}

func TestCanViewOrder(t *testing.T) {
	partnerID := uint(7)
	order := &models.Order{CustomerID: 1, RestaurantID: 10, DeliveryPartnerID: &partnerID}
	ownerID := uint(5)

	assert.True(t, CanViewOrder(order, ownerID, 1, models.RoleCustomer), "customer sees own order")
	assert.True(t, CanViewOrder(order, ownerID, ownerID, models.RoleRestaurantPartner), "restaurant owner sees it")
	assert.True(t, CanViewOrder(order, ownerID, partnerID, models.RoleDeliveryPartner), "assigned partner sees it")
	assert.True(t, CanViewOrder(order, ownerID, 99, models.RoleAdmin))
	assert.False(t, CanViewOrder(order, ownerID, 2, models.RoleCustomer), "other customer blocked")
	assert.False(t, CanViewOrder(order, ownerID, 8, models.RoleDeliveryPartner), "other partner blocked")
}

func TestCanUpdateOrderStatus(t *testing.T) {
	ownerID := uint(5)

	unassigned := &models.Order{CustomerID: 1, RestaurantID: 10}
	assert.True(t, CanUpdateOrderStatus(unassigned, ownerID, ownerID, models.RoleRestaurantPartner))
	assert.True(t, CanUpdateOrderStatus(unassigned, ownerID, 99, models.RoleAdmin))
	assert.True(t, CanUpdateOrderStatus(unassigned, ownerID, 7, models.RoleDeliveryPartner),
		"unassigned order is claimable by any delivery partner")
	assert.False(t, CanUpdateOrderStatus(unassigned, ownerID, 1, models.RoleCustomer),
		"customers never drive status")

	partnerID := uint(7)
	assigned := &models.Order{CustomerID: 1, RestaurantID: 10, DeliveryPartnerID: &partnerID}
	assert.True(t, CanUpdateOrderStatus(assigned, ownerID, partnerID, models.RoleDeliveryPartner))
	assert.False(t, CanUpdateOrderStatus(assigned, ownerID, 8, models.RoleDeliveryPartner),
		"assigned order belongs to its partner")
}
