package menu

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Item represents a purchasable menu entry. Items are immutable and
// identified by name; names are unique within a Catalog.
type Item struct {
	Name      string
	UnitPrice decimal.Decimal
}

// Label renders the item for selection UIs, e.g. "Burger (₹150.00)".
func (i Item) Label(symbol string) string {
	return fmt.Sprintf("%s (%s%s)", i.Name, symbol, i.UnitPrice.StringFixed(2))
}

// Catalog is an ordered, read-only collection of menu items.
type Catalog struct {
	items []Item
	index map[string]int
}

// New builds a Catalog from the given items, preserving their order.
// It fails on duplicate names or negative unit prices, so a misconfigured
// menu is rejected before any order can be priced.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		if item.Name == "" {
			return nil, errors.New("menu item name must not be empty")
		}
		if item.UnitPrice.IsNegative() {
			return nil, errors.Errorf("menu item %q: unit price must not be negative", item.Name)
		}
		if _, ok := c.index[item.Name]; ok {
			return nil, errors.Errorf("duplicate menu item %q", item.Name)
		}
		c.items[i] = item
		c.index[item.Name] = i
	}
	return c, nil
}

// Items returns the catalog entries in menu order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Find looks up an item by name. Returns ErrNotFound for unknown names.
func (c *Catalog) Find(name string) (Item, error) {
	i, ok := c.index[name]
	if !ok {
		return Item{}, ErrNotFound
	}
	return c.items[i], nil
}

// Len reports the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
