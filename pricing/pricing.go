// Package pricing computes unit and line prices. Everything here is a pure
// function of its inputs so the cart display and checkout always agree.
package pricing

import "brewhouse/models"

const (
	mediumSurcharge = 0.50
	largeSurcharge  = 1.00
	extraSurcharge  = 0.50
)

// UnitPrice returns the price of a single item with its customization
// applied. Size surcharges apply to drinks only, never to snacks; extras
// are charged per selection regardless of category.
func UnitPrice(item models.CatalogItem, c models.Customization) float64 {
	price := item.Price
	if item.Category != models.SnacksCategory {
		switch c.Size {
		case models.SizeMedium:
			price += mediumSurcharge
		case models.SizeLarge:
			price += largeSurcharge
		}
	}
	price += float64(len(c.Extras)) * extraSurcharge
	return price
}

// LineTotal returns UnitPrice multiplied by quantity.
func LineTotal(item models.CatalogItem, c models.Customization, quantity int) float64 {
	return UnitPrice(item, c) * float64(quantity)
}
