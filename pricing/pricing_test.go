package pricing

import (
	"testing"

	"brewhouse/models"
)

func TestUnitPriceLargeWithExtra(t *testing.T) {
	item := models.CatalogItem{ID: "2", Name: "Cappuccino", Category: "Espresso", Price: 4.25}
	c := models.Customization{Size: "Large", Extras: []string{"Vanilla Syrup"}}

	got := UnitPrice(item, c)
	if got != 5.75 {
		t.Fatalf("expected unit price 5.75, got %v", got)
	}
	if total := LineTotal(item, c, 2); total != 11.50 {
		t.Fatalf("expected line total 11.50, got %v", total)
	}
}

func TestSizeSurcharges(t *testing.T) {
	item := models.CatalogItem{Name: "Latte", Category: "Espresso", Price: 4.00}
	cases := []struct {
		size string
		want float64
	}{
		{"Small", 4.00},
		{"Medium", 4.50},
		{"Large", 5.00},
	}
	for _, tc := range cases {
		if got := UnitPrice(item, models.Customization{Size: tc.size}); got != tc.want {
			t.Errorf("size %s: expected %v, got %v", tc.size, tc.want, got)
		}
	}
}

func TestSnacksIgnoreSize(t *testing.T) {
	snack := models.CatalogItem{Name: "Croissant", Category: "Snacks", Price: 3.50}
	for _, size := range []string{"Small", "Medium", "Large"} {
		if got := UnitPrice(snack, models.Customization{Size: size}); got != 3.50 {
			t.Errorf("snack size %s changed price: got %v", size, got)
		}
	}
	// extras still apply to snacks
	c := models.Customization{Size: "Large", Extras: []string{"Whipped Cream", "Honey"}}
	if got := UnitPrice(snack, c); got != 4.50 {
		t.Errorf("snack with extras: expected 4.50, got %v", got)
	}
}

func TestDeterminism(t *testing.T) {
	item := models.CatalogItem{Name: "Mocha", Category: "Espresso", Price: 5.45}
	c := models.Customization{Size: "Medium", Extras: []string{"Extra Shot", "Caramel"}, Sweetness: 50}
	first := LineTotal(item, c, 3)
	for i := 0; i < 10; i++ {
		if got := LineTotal(item, c, 3); got != first {
			t.Fatalf("non-deterministic result: %v vs %v", got, first)
		}
	}
}
