package pricing

import (
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/types"
)

// LineInput is one cart row priced from the product snapshot.
type LineInput struct {
	Name           string
	UnitPriceCents int
	Qty            int
}

// Line is a priced cart row.
type Line struct {
	Name           string `json:"name"`
	UnitPriceCents int    `json:"unit_price_cents"`
	Qty            int    `json:"qty"`
	TotalCents     int    `json:"total_cents"`
}

// Quote is the full price breakdown for a cart.
type Quote struct {
	Lines               []Line `json:"lines"`
	SubtotalCents       int    `json:"subtotal_cents"`
	DeliveryFeeCents    int    `json:"delivery_fee_cents"`
	TotalCents          int    `json:"total_cents"`
	FreeDeliveryApplied bool   `json:"free_delivery_applied"`
}

// Compute prices the cart in integer minor units. The delivery fee is waived
// once the subtotal reaches the tenant's free delivery minimum. An empty cart
// yields a zero subtotal and still carries the base fee, so callers can quote
// the delivery charge on its own.
func Compute(items []LineInput, delivery types.DeliveryConfig) (*Quote, error) {
	quote := &Quote{Lines: make([]Line, 0, len(items))}
	for _, item := range items {
		if item.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if item.UnitPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative")
		}
		lineTotal := item.UnitPriceCents * item.Qty
		quote.Lines = append(quote.Lines, Line{
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Qty:            item.Qty,
			TotalCents:     lineTotal,
		})
		quote.SubtotalCents += lineTotal
	}

	quote.DeliveryFeeCents = delivery.BaseDeliveryCostCents
	if quote.SubtotalCents >= delivery.FreeDeliveryMinimumCents {
		quote.DeliveryFeeCents = 0
		quote.FreeDeliveryApplied = true
	}
	quote.TotalCents = quote.SubtotalCents + quote.DeliveryFeeCents
	return quote, nil
}
