// Package cart holds the in-session cart for each account. Carts live only
// in memory; nothing here touches the persistence gateway.
package cart

import (
	"errors"
	"sync"

	"brewhouse/models"
	"brewhouse/pricing"

	"github.com/google/uuid"
)

var ErrNegativeQuantity = errors.New("cart: quantity must not be negative")
var ErrLineNotFound = errors.New("cart: line item not found")

// Cart is an ordered collection of line items. All mutation goes through
// Store so callers only ever see snapshots.
type Cart struct {
	lines []models.LineItem
}

// Store keeps one cart per account id.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

func (s *Store) cartFor(userID string) *Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{}
		s.carts[userID] = c
	}
	return c
}

// Add appends a new line with quantity 1 and a fresh local id.
func (s *Store) Add(userID string, item models.CatalogItem, c models.Customization) models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := models.LineItem{
		ID:            uuid.NewString(),
		Drink:         item,
		Customization: c,
		Quantity:      1,
	}
	cart := s.cartFor(userID)
	cart.lines = append(cart.lines, line)
	return line
}

// SetQuantity updates a line's quantity. Zero removes the line; negative
// values are rejected before any state changes.
func (s *Store) SetQuantity(userID, lineID string, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(userID)
	for i, line := range cart.lines {
		if line.ID != lineID {
			continue
		}
		if quantity == 0 {
			cart.lines = append(cart.lines[:i], cart.lines[i+1:]...)
		} else {
			cart.lines[i].Quantity = quantity
		}
		return nil
	}
	return ErrLineNotFound
}

// Remove deletes a line outright.
func (s *Store) Remove(userID, lineID string) error {
	return s.SetQuantity(userID, lineID, 0)
}

// Lines returns a snapshot copy of the cart's line items.
func (s *Store) Lines(userID string) []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(userID)
	out := make([]models.LineItem, len(cart.lines))
	copy(out, cart.lines)
	return out
}

// Subtotal sums LineTotal over all lines.
func (s *Store) Subtotal(userID string) float64 {
	var total float64
	for _, line := range s.Lines(userID) {
		total += pricing.LineTotal(line.Drink, line.Customization, line.Quantity)
	}
	return total
}

// ItemCount sums quantities across all lines.
func (s *Store) ItemCount(userID string) int {
	var count int
	for _, line := range s.Lines(userID) {
		count += line.Quantity
	}
	return count
}

// Clear empties the cart after a successful checkout.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
