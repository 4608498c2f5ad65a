package entity

import (
	"github.com/google/uuid"
)

// CartItem is a single line in a cart. ProductID is the uniqueness key;
// UnitPrice is a snapshot taken when the item was added.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Title     string    `json:"title"`
	UnitPrice float64   `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
}

// Cart is an explicit, injected state object. Mutations happen through its
// methods; persistence is a separate adapter concern (see repository.CartRepository).
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add merges an item into the cart by product identity: an existing line's
// quantity is incremented by the incoming quantity, otherwise the item is
// appended. Repeated adds with quantities a then b therefore end in the same
// state as one add with a+b.
func (c *Cart) Add(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity

			return
		}
	}

	c.Items = append(c.Items, item)
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of 0. A
// quantity-0 line stays in the cart until removed explicitly. Returns false
// when no line matches the product identity.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) bool {
	if quantity < 0 {
		quantity = 0
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity

			return true
		}
	}

	return false
}

// Remove deletes a line by product identity. It is a no-op when the line is
// absent; it reports whether a line was removed.
func (c *Cart) Remove(productID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)

			return true
		}
	}

	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total returns the sum over lines of unit price times quantity.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}

	return total
}
