package storefront

import "encoding/json"

const cartKey = "cart"

// Item is one cart entry: at most one per product id, quantity always >= 1.
type Item struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Cart is the client-local shopping cart. Every mutation persists the full
// snapshot synchronously, so a restart never loses cart state.
type Cart struct {
	storage Storage
	items   []Item
}

// NewCart loads the saved snapshot, starting empty when none exists.
func NewCart(storage Storage) (*Cart, error) {
	cart := &Cart{storage: storage}

	data, ok, err := storage.Get(cartKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(data, &cart.items); err != nil {
			// A corrupt snapshot resets the cart rather than failing startup.
			cart.items = nil
		}
	}

	return cart, nil
}

// Add inserts the product with quantity 1, or increments the existing entry.
func (c *Cart) Add(item Item) error {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return c.persist()
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	return c.persist()
}

// ChangeQuantity adjusts an entry by delta, flooring at 1. Reaching the
// floor never removes the entry; that takes an explicit Remove.
func (c *Cart) ChangeQuantity(id, delta int) error {
	for i := range c.items {
		if c.items[i].ID == id {
			quantity := c.items[i].Quantity + delta
			if quantity < 1 {
				quantity = 1
			}
			c.items[i].Quantity = quantity
			return c.persist()
		}
	}
	return nil
}

// Remove deletes the entry unconditionally.
func (c *Cart) Remove(id int) error {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return c.persist()
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Total sums price times quantity over all entries.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Clear empties the cart. Called only after a confirmed successful checkout.
func (c *Cart) Clear() error {
	c.items = nil
	return c.storage.Delete(cartKey)
}

func (c *Cart) persist() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	return c.storage.Set(cartKey, data)
}
