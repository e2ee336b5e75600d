package booking

import "math"

// PricedService is one attached service as seen by the pricing calculator:
// the price snapshotted at attach time and the requested quantity.
type PricedService struct {
	Price    float64
	Quantity int
}

// ComputeTotal returns the booking total: room-type base price plus every
// attached service. The result is rounded up on cents: the documented policy
// is ceil(total*100)/100, so fractional sub-cent amounts are always charged
// to the customer's next cent, never dropped.
func ComputeTotal(basePrice float64, services []PricedService) float64 {
	total := basePrice
	for _, s := range services {
		qty := s.Quantity
		if qty < 1 {
			qty = 1
		}
		total += s.Price * float64(qty)
	}
	return math.Ceil(total*100) / 100
}
