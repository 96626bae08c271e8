// Package authz holds the ownership predicates shared by all handlers, so
// the owner-or-admin rule lives in exactly one place.
package authz

import "quickbite-api/models"

// IsAdmin reports whether the role carries platform-wide override rights.
func IsAdmin(role models.UserRole) bool {
	return role == models.RoleAdmin || role == models.RoleSupportAdmin
}

// CanModify reports whether the caller may mutate a resource owned by
// ownerID: the owner themselves, or an admin.
func CanModify(ownerID, callerID uint, callerRole models.UserRole) bool {
	return ownerID == callerID || IsAdmin(callerRole)
}

// CanViewOrder reports whether the caller may read an order: the customer
// who placed it, the owning restaurant's partner, the assigned delivery
// partner, or an admin.
func CanViewOrder(order *models.Order, restaurantOwnerID, callerID uint, callerRole models.UserRole) bool {
	if IsAdmin(callerRole) {
		return true
	}
	if order.CustomerID == callerID || restaurantOwnerID == callerID {
		return true
	}
	return order.DeliveryPartnerID != nil && *order.DeliveryPartnerID == callerID
}

// CanUpdateOrderStatus reports whether the caller may change an order's
// status: the owning restaurant's partner, the assigned delivery partner, or
// an admin. An unassigned delivery partner is allowed through so they can
// claim the order at pickup; the handler enforces the claim rules.
func CanUpdateOrderStatus(order *models.Order, restaurantOwnerID, callerID uint, callerRole models.UserRole) bool {
	if IsAdmin(callerRole) || restaurantOwnerID == callerID {
		return true
	}
	if callerRole != models.RoleDeliveryPartner {
		return false
	}
	return order.DeliveryPartnerID == nil || *order.DeliveryPartnerID == callerID
}
