package orders

import (
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
)

// nextStatus encodes the forward lifecycle. Every advancement moves exactly
// one step; skipping ahead is rejected.
var nextStatus = map[enums.OrderStatus]enums.OrderStatus{
	enums.OrderStatusNew:       enums.OrderStatusConfirmed,
	enums.OrderStatusConfirmed: enums.OrderStatusPreparing,
	enums.OrderStatusPreparing: enums.OrderStatusReady,
	enums.OrderStatusReady:     enums.OrderStatusOnWay,
	enums.OrderStatusOnWay:     enums.OrderStatusDelivered,
}

// CanAdvance reports whether target is the single next step from current.
func CanAdvance(current, target enums.OrderStatus) bool {
	next, ok := nextStatus[current]
	return ok && next == target
}

// NextStatus returns the only status current may advance to, if any.
func NextStatus(current enums.OrderStatus) (enums.OrderStatus, bool) {
	next, ok := nextStatus[current]
	return next, ok
}

// CanCancel reports whether an order in the given status may still be cancelled.
func CanCancel(current enums.OrderStatus) bool {
	return !current.IsTerminal()
}
