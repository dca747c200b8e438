package analytics

import (
	"sort"

	"github.com/flavioricotta/Obracontrolia/models"
)

// CartLine is one product in a cart: a quantity plus a price snapshot taken
// when the product was first added. Later catalog price edits do not move
// lines already in a cart.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Price    float64        `json:"price"`
}

// Cart accumulates marketplace products before checkout. Quantities never
// drop below 1; removing a line is explicit.
type Cart struct {
	lines map[int64]*CartLine
}

func NewCart() *Cart {
	return &Cart{lines: map[int64]*CartLine{}}
}

// Add puts a product in the cart, or bumps its quantity by 1 when the same
// product is added again. The unit price is snapshotted on first add.
func (c *Cart) Add(p models.Product) {
	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
		return
	}
	c.lines[p.ID] = &CartLine{Product: p, Quantity: 1, Price: p.Price}
}

// Increment bumps an existing line by 1; unknown ids are ignored.
func (c *Cart) Increment(productID int64) {
	if line, ok := c.lines[productID]; ok {
		line.Quantity++
	}
}

// Decrement lowers a line's quantity by 1, flooring at 1. Decrementing a
// quantity-1 line is a no-op; use Remove to drop the line.
func (c *Cart) Decrement(productID int64) {
	if line, ok := c.lines[productID]; ok && line.Quantity > 1 {
		line.Quantity--
	}
}

// Remove deletes a line entirely.
func (c *Cart) Remove(productID int64) {
	delete(c.lines, productID)
}

// Total is the sum of price snapshot times quantity over every line.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Lines returns the cart content ordered by product id for stable display.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Product.ID < out[j].Product.ID
	})
	return out
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}
