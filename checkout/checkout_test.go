package checkout

import (
	"math"
	"strings"
	"testing"

	"brewhouse/lifecycle"
	"brewhouse/models"
)

func linesWorth(subtotal float64) []models.LineItem {
	return []models.LineItem{{
		ID:       "l1",
		Drink:    models.CatalogItem{ID: "1", Name: "Cold Brew", Category: "Cold Coffee", Price: subtotal},
		Quantity: 1,
	}}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAssembleDeliveryWithRedemption(t *testing.T) {
	// $20.00 cart, 350-point balance, all points used, delivery.
	order, err := Assemble(linesWorth(20.00), 350, "delivery", "12 Main St", 350, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// discounted subtotal 16.50, fee 2.99, tax 1.5592, total 21.0492
	if !approx(order.Total, 21.0492) {
		t.Fatalf("total = %v, want 21.0492", order.Total)
	}
	if order.PointsUsed != 350 {
		t.Fatalf("pointsUsed = %d, want 350", order.PointsUsed)
	}
	// earning is on the pre-discount subtotal
	if order.PointsEarned != 20 {
		t.Fatalf("pointsEarned = %d, want 20", order.PointsEarned)
	}
	if order.Status != lifecycle.StatusPreparing {
		t.Fatalf("initial status = %s, want preparing", order.Status)
	}
	if order.EstimatedTime != "15-20 minutes" {
		t.Fatalf("estimatedTime = %q", order.EstimatedTime)
	}
}

func TestAssemblePickupNoFee(t *testing.T) {
	order, err := Assemble(linesWorth(10.00), 0, "pickup", "", 0, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approx(order.Total, 10.80) {
		t.Fatalf("total = %v, want 10.80", order.Total)
	}
}

func TestAssembleRejectsOverRedemption(t *testing.T) {
	// balance allows at most 350 points
	if _, err := Assemble(linesWorth(20.00), 350, "pickup", "", 351, "u1"); err == nil {
		t.Fatal("expected error for redemption over balance")
	}
	// subtotal caps redemption at floor(5*100) = 500
	if _, err := Assemble(linesWorth(5.00), 9999, "pickup", "", 501, "u1"); err == nil {
		t.Fatal("expected error for redemption over subtotal cap")
	}
	if _, err := Assemble(linesWorth(5.00), 100, "pickup", "", -1, "u1"); err == nil {
		t.Fatal("expected error for negative redemption")
	}
}

func TestAssembleRejectsBadInput(t *testing.T) {
	if _, err := Assemble(nil, 0, "pickup", "", 0, "u1"); err == nil {
		t.Fatal("expected error for empty cart")
	}
	if _, err := Assemble(linesWorth(5.00), 0, "drone", "", 0, "u1"); err == nil {
		t.Fatal("expected error for unknown order type")
	}
}

func TestAssembleSnapshotsLines(t *testing.T) {
	lines := []models.LineItem{{
		ID:            "l1",
		Drink:         models.CatalogItem{Name: "Chai Latte", Price: 4.45},
		Customization: models.Customization{Extras: []string{"Honey"}},
		Quantity:      1,
	}}
	order, err := Assemble(lines, 0, "pickup", "", 0, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frozen := order.Total
	lines[0].Quantity = 99
	lines[0].Customization.Extras[0] = "Cinnamon"

	if order.Items[0].Quantity != 1 {
		t.Fatal("order shares quantity storage with the live cart")
	}
	if order.Items[0].Customization.Extras[0] != "Honey" {
		t.Fatal("order shares extras storage with the live cart")
	}
	if order.Total != frozen {
		t.Fatal("order total changed after assembly")
	}
}

func TestOrderNumberFormat(t *testing.T) {
	order, err := Assemble(linesWorth(5.00), 0, "pickup", "", 0, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(order.OrderNumber, "#") || len(order.OrderNumber) != 6 {
		t.Fatalf("order number %q should be # followed by 5 digits", order.OrderNumber)
	}
}
