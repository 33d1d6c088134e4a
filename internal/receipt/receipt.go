// Package receipt renders bills and order history as monospaced text.
// All two-decimal rounding of monetary values happens here, at the
// presentation boundary.
package receipt

import (
	"fmt"
	"strings"

	"github.com/restobill/restobill/internal/checkout"
	"github.com/restobill/restobill/internal/domain/pricing"
)

const (
	header    = "     ~~~ YOUR RECEIPT ~~~     "
	separator = "--------------------------------"
	totalRule = "================================"
	footer    = "    Thank you for your order!   "
)

// Renderer formats bills with a configurable currency symbol.
type Renderer struct {
	symbol string
}

// NewRenderer creates a Renderer using the given currency symbol.
func NewRenderer(symbol string) *Renderer {
	return &Renderer{symbol: symbol}
}

// Bill renders a single bill as receipt text.
func (r *Renderer) Bill(b pricing.Bill) string {
	var sb strings.Builder
	sb.WriteString(header + "\n\n")
	fmt.Fprintf(&sb, "%-15s %-5s %-10s\n", "Item", "Qty", "Price")
	sb.WriteString(separator + "\n")

	for _, line := range b.Lines {
		fmt.Fprintf(&sb, "%-15s x%-4d %s%-10s\n",
			line.Item.Name, line.Quantity, r.symbol, line.Total().StringFixed(2))
	}

	sb.WriteString(separator + "\n")
	fmt.Fprintf(&sb, "%-22s %s%-10s\n", "Subtotal:", r.symbol, b.Subtotal.StringFixed(2))

	// Discount and taxable-amount lines appear only when a deduction was
	// actually applied; otherwise they would duplicate the subtotal.
	if b.DiscountApplied() {
		fmt.Fprintf(&sb, "%-22s -%s%-10s\n",
			b.Discount.Description(r.symbol)+":", r.symbol, b.DiscountAmount.StringFixed(2))
		sb.WriteString(separator + "\n")
		fmt.Fprintf(&sb, "%-22s %s%-10s\n", "Taxable Amount:", r.symbol, b.TaxableAmount.StringFixed(2))
	}
	sb.WriteString(separator + "\n")

	for _, tl := range b.TaxLines {
		fmt.Fprintf(&sb, "%-22s +%s%-10s\n",
			tl.Tax.Description()+":", r.symbol, tl.Amount.StringFixed(2))
	}

	sb.WriteString(totalRule + "\n")
	fmt.Fprintf(&sb, "%-22s %s%-10s\n", "GRAND TOTAL:", r.symbol, b.GrandTotal.StringFixed(2))
	sb.WriteString(totalRule + "\n\n")
	sb.WriteString(footer + "\n")
	return sb.String()
}

// Record renders a ledger record, prefixing canceled orders with a banner.
func (r *Renderer) Record(rec checkout.Record) string {
	text := r.Bill(rec.Bill)
	if rec.Outcome == checkout.OutcomeCanceled {
		return "--- ORDER CANCELED ---\n" + text
	}
	return text
}

// History renders ledger records most-recent-first with order numbers.
// Records are expected in the order checkout.Engine.History returns them
// (newest first); numbering still reflects chronological position.
func (r *Renderer) History(records []checkout.Record) string {
	var sb strings.Builder
	total := len(records)
	for i, rec := range records {
		fmt.Fprintf(&sb, "--- ORDER #%d ---\n", total-i)
		sb.WriteString(r.Record(rec))
		sb.WriteString("\n\n")
	}
	return sb.String()
}
