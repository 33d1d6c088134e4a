package pricing

import (
	"github.com/shopspring/decimal"
)

// TaxLine is one computed tax row of a bill.
type TaxLine struct {
	Tax    Tax
	Amount decimal.Decimal
}

// Bill is the structured result of pricing an order. Amounts are kept at
// full decimal precision; rounding to two places happens only at
// presentation boundaries (receipt text, JSON responses).
type Bill struct {
	Lines          []OrderLine
	Subtotal       decimal.Decimal
	Discount       Discount
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxLines       []TaxLine
	TotalTax       decimal.Decimal
	GrandTotal     decimal.Decimal
}

// DiscountApplied reports whether the bill carries a nonzero deduction.
// It governs whether the discount and taxable-amount lines appear on the
// receipt: with no deduction the taxable amount equals the subtotal and the
// extra lines are redundant.
func (b Bill) DiscountApplied() bool {
	return b.DiscountAmount.IsPositive()
}

// Compute prices an order: subtotal over the lines in order, discount
// deduction, taxable amount, then each tax independently from the same
// taxable base. Pure and deterministic; the order must be non-empty
// (BuildOrder guarantees this).
func Compute(order Order, discount Discount, taxes []Tax) Bill {
	subtotal := decimal.Zero
	for _, line := range order.Lines {
		subtotal = subtotal.Add(line.Total())
	}

	discountAmount := discount.Apply(subtotal)
	taxable := subtotal.Sub(discountAmount)

	taxLines := make([]TaxLine, len(taxes))
	totalTax := decimal.Zero
	for i, tax := range taxes {
		amount := tax.Amount(taxable)
		taxLines[i] = TaxLine{Tax: tax, Amount: amount}
		totalTax = totalTax.Add(amount)
	}

	return Bill{
		Lines:          order.Lines,
		Subtotal:       subtotal,
		Discount:       discount,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxable,
		TaxLines:       taxLines,
		TotalTax:       totalTax,
		GrandTotal:     taxable.Add(totalTax),
	}
}
