package statemachine

import (
	"fmt"

	"quickbite-api/models"
)

// edges is the authoritative set of legal status transitions. Every status
// update must follow an edge from the order's current state; there is no
// override path. delivered and cancelled have no outgoing edges and are
// therefore terminal.
var edges = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPlaced:         {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:      {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:      {models.StatusReady},
	models.StatusReady:          {models.StatusPickedUp},
	models.StatusPickedUp:       {models.StatusOutForDelivery},
	models.StatusOutForDelivery: {models.StatusDelivered},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s models.OrderStatus) bool {
	if _, ok := edges[s]; ok {
		return true
	}
	return s == models.StatusDelivered || s == models.StatusCancelled
}

// ValidNext returns the statuses reachable in one step from the given state.
// Terminal states return nil.
func ValidNext(from models.OrderStatus) []models.OrderStatus {
	return edges[from]
}

// IsTerminal reports whether no further transitions are possible.
func IsTerminal(s models.OrderStatus) bool {
	return len(edges[s]) == 0
}

// TransitionError reports an attempted move that is not in the edge set.
type TransitionError struct {
	From, To models.OrderStatus
}

func (e *TransitionError) Error() string {
	if IsTerminal(e.From) {
		return fmt.Sprintf("order is %s, a terminal state; no further transitions allowed", e.From)
	}
	return fmt.Sprintf("cannot move order from %s to %s; valid next states: %v", e.From, e.To, edges[e.From])
}

// CanTransition returns nil when from → to is a legal edge, and a
// *TransitionError otherwise.
func CanTransition(from, to models.OrderStatus) error {
	for _, next := range edges[from] {
		if next == to {
			return nil
		}
	}
	return &TransitionError{From: from, To: to}
}

// CanCancel reports whether an order in the given state may still be
// cancelled. Matches the placed/confirmed cancellation window.
func CanCancel(from models.OrderStatus) bool {
	return CanTransition(from, models.StatusCancelled) == nil
}
