package pricing

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/restobill/restobill/internal/domain/menu"
)

// ErrEmptySelection signals that no catalog item has a positive quantity.
// Callers surface it as guidance ("please select at least one item") rather
// than computing a degenerate bill.
var ErrEmptySelection = errors.New("no items selected")

// UnknownItemError indicates a selection referenced an item that is not in
// the catalog.
type UnknownItemError struct {
	Name string
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("menu item %q not found", e.Name)
}

// InvalidQuantityError indicates a selection carried a negative quantity.
type InvalidQuantityError struct {
	Name     string
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must not be negative for item %q, got %d", e.Name, e.Quantity)
}

// Selections maps menu item names to requested quantities. Zero quantities
// are allowed and simply excluded from the resulting order.
type Selections map[string]int

// HasItems reports whether at least one selection carries a positive
// quantity. Used to distinguish "nothing to cancel" from a real draft.
func (s Selections) HasItems() bool {
	for _, qty := range s {
		if qty > 0 {
			return true
		}
	}
	return false
}

// OrderLine is one priced row of an order.
type OrderLine struct {
	Item     menu.Item
	Quantity int
}

// Total returns unit price times quantity for this line.
func (l OrderLine) Total() decimal.Decimal {
	return l.Item.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a snapshot of chosen items with positive quantities, in catalog
// order. It is built fresh per computation and never retained.
type Order struct {
	Lines []OrderLine
}

// BuildOrder derives an Order from the current selections. Lines follow
// catalog order regardless of map iteration; zero quantities are skipped.
// It fails with ErrEmptySelection when nothing is selected, with
// UnknownItemError for names outside the catalog, and with
// InvalidQuantityError for negative quantities.
func BuildOrder(catalog *menu.Catalog, selections Selections) (Order, error) {
	for name, qty := range selections {
		if _, err := catalog.Find(name); err != nil {
			return Order{}, &UnknownItemError{Name: name}
		}
		if qty < 0 {
			return Order{}, &InvalidQuantityError{Name: name, Quantity: qty}
		}
	}

	var lines []OrderLine
	for _, item := range catalog.Items() {
		qty := selections[item.Name]
		if qty <= 0 {
			continue
		}
		lines = append(lines, OrderLine{Item: item, Quantity: qty})
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptySelection
	}
	return Order{Lines: lines}, nil
}
