// Package loyalty is the point ledger: redemption capping, discount
// conversion, earning, and the display tiers derived from a balance.
// The exchange rate is fixed at 100 points per dollar.
package loyalty

import (
	"fmt"
	"math"
)

const PointsPerDollar = 100

// MaxRedeemable caps a redemption at both the account balance and the cart
// subtotal converted to points.
func MaxRedeemable(balance int, subtotal float64) int {
	cap := int(math.Floor(subtotal * PointsPerDollar))
	if balance < cap {
		return balance
	}
	return cap
}

// Discount converts redeemed points to a dollar discount.
func Discount(pointsUsed int) float64 {
	return float64(pointsUsed) / PointsPerDollar
}

// PointsEarned awards one point per whole dollar of the pre-discount,
// pre-tax subtotal. The rate is flat regardless of tier.
func PointsEarned(subtotal float64) int {
	return int(math.Floor(subtotal))
}

// ApplyOrder computes the post-order balance. An over-redemption is a
// programming error on the caller's side (callers must clamp with
// MaxRedeemable first), so it fails instead of clamping silently.
func ApplyOrder(balance, pointsUsed, pointsEarned int) (int, error) {
	if pointsUsed < 0 {
		return 0, fmt.Errorf("loyalty: negative redemption %d", pointsUsed)
	}
	if pointsUsed > balance {
		return 0, fmt.Errorf("loyalty: redemption %d exceeds balance %d", pointsUsed, balance)
	}
	return balance - pointsUsed + pointsEarned, nil
}

// Tier thresholds. Informational only; earning does not vary by tier.
const (
	TierBronze = "Bronze"
	TierSilver = "Silver"
	TierGold   = "Gold"
)

func TierFor(balance int) string {
	switch {
	case balance >= 500:
		return TierGold
	case balance >= 200:
		return TierSilver
	default:
		return TierBronze
	}
}
