// Package checkout freezes a cart into an immutable order: totals, fees,
// point redemption and earning, then the two independent persistence writes.
package checkout

import (
	"fmt"
	"math"
	"time"

	"brewhouse/lifecycle"
	"brewhouse/loyalty"
	"brewhouse/models"
	"brewhouse/pricing"
	"brewhouse/utils"

	"github.com/google/uuid"
)

const (
	DeliveryFee   = 2.99
	TaxRate       = 0.08
	EstimatedTime = "15-20 minutes"
)

// Assemble computes an order from a cart snapshot. The computation order is
// fixed: subtotal, delivery fee, discount, discounted subtotal, tax, total,
// earned points. pointsUsed must already satisfy MaxRedeemable; anything
// beyond it is a validation error, not something to clamp here.
func Assemble(lines []models.LineItem, balance int, orderType, address string, pointsUsed int, userID string) (models.Order, error) {
	if orderType != models.OrderTypePickup && orderType != models.OrderTypeDelivery {
		return models.Order{}, fmt.Errorf("checkout: unknown order type %q", orderType)
	}
	if len(lines) == 0 {
		return models.Order{}, fmt.Errorf("checkout: cart is empty")
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += pricing.LineTotal(line.Drink, line.Customization, line.Quantity)
	}

	var deliveryFee float64
	if orderType == models.OrderTypeDelivery {
		deliveryFee = DeliveryFee
	}

	if pointsUsed < 0 || pointsUsed > loyalty.MaxRedeemable(balance, subtotal) {
		return models.Order{}, fmt.Errorf("checkout: redemption of %d points exceeds the redeemable maximum", pointsUsed)
	}
	discount := loyalty.Discount(pointsUsed)

	discountedSubtotal := math.Max(0, subtotal-discount)
	tax := (discountedSubtotal + deliveryFee) * TaxRate
	total := discountedSubtotal + deliveryFee + tax

	// Earning is computed on the pre-discount, pre-tax subtotal.
	pointsEarned := loyalty.PointsEarned(subtotal)

	// Snapshot copy: the order must not share line-item storage with the
	// live cart.
	items := make([]models.LineItem, len(lines))
	copy(items, lines)
	for i := range items {
		extras := make([]string, len(items[i].Customization.Extras))
		copy(extras, items[i].Customization.Extras)
		items[i].Customization.Extras = extras
	}

	return models.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		OrderNumber:   "#" + NewOrderNumber(),
		Items:         items,
		Total:         total,
		Status:        lifecycle.StatusPreparing,
		Type:          orderType,
		Timestamp:     time.Now(),
		Address:       address,
		EstimatedTime: EstimatedTime,
		PointsUsed:    pointsUsed,
		PointsEarned:  pointsEarned,
	}, nil
}

// NewOrderNumber returns a random 5-digit human-readable order number.
func NewOrderNumber() string {
	return utils.GenerateRandomDigitString(5)
}
