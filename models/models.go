package models

import (
	"errors"
	"time"
)

// CatalogItem is a purchasable product. Immutable once fetched; the
// category drives pricing-rule branching ("Snacks" skips size surcharges).
type CatalogItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

const SnacksCategory = "Snacks"

func (c CatalogItem) Validate() error {
	if len(c.Name) == 0 || len(c.Name) > 100 {
		return errors.New("name must be between 1 and 100 characters")
	}
	if c.Price < 0 {
		return errors.New("price must be non-negative")
	}
	return nil
}

// Customization holds the per-order modifiers for a catalog item. Only Size
// and Extras affect price; the rest is passed through for display.
type Customization struct {
	Size           string   `json:"size"`
	Milk           string   `json:"milk,omitempty"`
	Sweetness      int      `json:"sweetness"`
	Ice            string   `json:"ice,omitempty"`
	Extras         []string `json:"extras"`
	Temperature    string   `json:"temperature,omitempty"`
	CoffeeStrength string   `json:"coffeeStrength,omitempty"`
	Flavor         string   `json:"flavor,omitempty"`
	Topping        string   `json:"topping,omitempty"`
	Drizzle        string   `json:"drizzle,omitempty"`
}

const (
	SizeSmall  = "Small"
	SizeMedium = "Medium"
	SizeLarge  = "Large"
)

// LineItem is one cart entry. Quantity is always >= 1 while the entry is in
// a cart; setting it to 0 removes the entry instead.
type LineItem struct {
	ID            string        `json:"id"`
	Drink         CatalogItem   `json:"drink"`
	Customization Customization `json:"customization"`
	Quantity      int           `json:"quantity"`
}

// Order is frozen at assembly time. Only Status changes afterwards, and only
// forward along the fulfillment sequence.
type Order struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId,omitempty"`
	OrderNumber   string     `json:"orderNumber"`
	Items         []LineItem `json:"items"`
	Total         float64    `json:"total"`
	Status        string     `json:"status"`
	Type          string     `json:"type"`
	Timestamp     time.Time  `json:"timestamp"`
	Address       string     `json:"address,omitempty"`
	EstimatedTime string     `json:"estimatedTime"`
	PointsUsed    int        `json:"pointsUsed,omitempty"`
	PointsEarned  int        `json:"pointsEarned,omitempty"`
}

const (
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// Rating is attached to a completed order. At most one per order; a second
// submission overwrites the first.
type Rating struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func (r Rating) Validate() error {
	if r.OrderID == "" {
		return errors.New("orderId is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

// InventoryItem is a stocked ingredient or product tracked by the admin
// surface. Stock is set, never decremented by orders.
type InventoryItem struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
	Stock    int    `json:"stock"`
}

// Account is the session profile returned by the mocked auth layer. The
// point balance is owned by the loyalty ledger and persisted separately.
type Account struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Role          string `json:"role"`
	LoyaltyPoints int    `json:"loyaltyPoints"`
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
