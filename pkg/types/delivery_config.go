package types

// DeliveryConfig holds the tenant's delivery pricing rule. Amounts are
// integer minor units (COP cents equivalent); no floats anywhere.
type DeliveryConfig struct {
	BaseDeliveryCostCents    int `json:"baseDeliveryCostCents"`
	FreeDeliveryMinimumCents int `json:"freeDeliveryMinimumCents"`
}
