package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
)

// ComposeHandoffMessage renders the order summary the customer sends to
// the restaurant over WhatsApp after checkout.
func ComposeHandoffMessage(tenant *models.Tenant, order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s! Acabo de hacer el pedido %s:\n", tenant.Name, order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %dx %s (%s)\n", item.Qty, item.Name, formatCents(item.UnitPriceCents*item.Qty))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", formatCents(order.SubtotalCents))
	if order.DeliveryFeeCents > 0 {
		fmt.Fprintf(&b, "Domicilio: %s\n", formatCents(order.DeliveryFeeCents))
	} else {
		b.WriteString("Domicilio: gratis\n")
	}
	fmt.Fprintf(&b, "Total: %s\n", formatCents(order.TotalCents))
	fmt.Fprintf(&b, "A nombre de %s", order.CustomerName)
	if order.CustomerAddress != nil && *order.CustomerAddress != "" {
		fmt.Fprintf(&b, ", entrega en %s", *order.CustomerAddress)
	}
	return b.String()
}

// HandoffLink builds the wa.me deep link carrying the composed message.
func HandoffLink(tenant *models.Tenant, message string) string {
	number := strings.TrimLeft(strings.TrimSpace(tenant.WhatsAppNumber), "+")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}

// formatCents renders integer minor units as "$12.345" (COP style,
// thousands separated by dots).
func formatCents(cents int) string {
	units := cents / 100
	digits := fmt.Sprintf("%d", units)
	var b strings.Builder
	b.WriteByte('$')
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}
