package menu

import (
	"context"
	"log"

	"brewhouse/kv"
	"brewhouse/models"
)

var defaultItems = []models.CatalogItem{
	{ID: "1", Name: "Caramel Macchiato", Category: "Espresso", Price: 4.95, Description: "Freshly steamed milk with vanilla syrup, marked with espresso and caramel drizzle"},
	{ID: "2", Name: "Cappuccino", Category: "Espresso", Price: 4.25, Description: "Dark, rich espresso with steamed milk and a deep layer of foam"},
	{ID: "3", Name: "Vanilla Latte", Category: "Espresso", Price: 4.75, Description: "Espresso with steamed milk and a hint of vanilla syrup"},
	{ID: "4", Name: "Iced Americano", Category: "Cold Coffee", Price: 3.95, Description: "Espresso shots topped with cold water and ice"},
	{ID: "5", Name: "Cold Brew", Category: "Cold Coffee", Price: 4.45, Description: "Slow-steeped for 20 hours, smooth and naturally sweet"},
	{ID: "6", Name: "Mocha Frappuccino", Category: "Frappuccino", Price: 5.45, Description: "Coffee blended with mocha sauce, milk, and ice, topped with whipped cream"},
	{ID: "7", Name: "Green Tea Latte", Category: "Tea", Price: 4.75, Description: "Premium matcha green tea blended with steamed milk"},
	{ID: "8", Name: "Chai Latte", Category: "Tea", Price: 4.45, Description: "Black tea infused with cinnamon, clove, and spices combined with steamed milk"},
	{ID: "9", Name: "Pumpkin Spice Latte", Category: "Seasonal", Price: 5.25, Description: "Espresso with pumpkin, cinnamon, nutmeg, and clove, topped with whipped cream"},
	{ID: "10", Name: "Peppermint Mocha", Category: "Seasonal", Price: 5.45, Description: "Rich chocolate and refreshing peppermint with espresso and steamed milk"},
	{ID: "11", Name: "Croissant", Category: "Snacks", Price: 3.50, Description: "Buttery, flaky French pastry baked fresh daily"},
	{ID: "12", Name: "Blueberry Muffin", Category: "Snacks", Price: 3.25, Description: "Moist muffin packed with fresh blueberries and a sweet crumble top"},
}

// Seed writes the default catalog when the menu: namespace is empty, so a
// fresh store boots with something to sell.
func Seed(ctx context.Context, store kv.Store) error {
	entries, err := store.ScanPrefix(ctx, kv.MenuPrefix)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	for _, item := range defaultItems {
		if err := store.Set(ctx, kv.MenuPrefix+item.ID, item); err != nil {
			return err
		}
	}
	log.Printf("menu: seeded %d catalog items", len(defaultItems))
	return nil
}
