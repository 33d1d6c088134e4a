package pricing

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DiscountKind enumerates the supported discount strategies. The set is
// closed: every consumer switches exhaustively over these three kinds.
type DiscountKind string

const (
	// DiscountNone deducts nothing from the subtotal.
	DiscountNone DiscountKind = "none"
	// DiscountPercentage deducts a fraction of the subtotal.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFixedAmount deducts a fixed amount, capped at the subtotal.
	DiscountFixedAmount DiscountKind = "fixed"
)

// Discount is a tagged variant describing a single discount policy.
// Rate is set only for percentage discounts, Amount only for fixed ones.
// Construct via NoDiscount, NewPercentageDiscount or NewFixedAmountDiscount;
// the constructors validate their parameters so Apply is total.
type Discount struct {
	Kind   DiscountKind
	Rate   decimal.Decimal
	Amount decimal.Decimal
}

// NoDiscount returns the policy that deducts nothing.
func NoDiscount() Discount {
	return Discount{Kind: DiscountNone}
}

// NewPercentageDiscount builds a percentage-off policy. The rate is a
// fraction, e.g. 0.10 for 10% off, and must satisfy 0 < rate < 1.
func NewPercentageDiscount(rate decimal.Decimal) (Discount, error) {
	if !rate.IsPositive() || rate.GreaterThanOrEqual(one) {
		return Discount{}, errors.Errorf("percentage discount rate must be in (0, 1), got %s", rate)
	}
	return Discount{Kind: DiscountPercentage, Rate: rate}, nil
}

// NewFixedAmountDiscount builds a fixed-amount-off policy. The amount must
// be positive; at apply time it is capped at the subtotal.
func NewFixedAmountDiscount(amount decimal.Decimal) (Discount, error) {
	if !amount.IsPositive() {
		return Discount{}, errors.Errorf("fixed discount amount must be positive, got %s", amount)
	}
	return Discount{Kind: DiscountFixedAmount, Amount: amount}, nil
}

// Apply computes the deduction for the given subtotal. The result is never
// negative and never exceeds the subtotal.
func (d Discount) Apply(subtotal decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case DiscountPercentage:
		return subtotal.Mul(d.Rate)
	case DiscountFixedAmount:
		return decimal.Min(d.Amount, subtotal)
	default:
		return decimal.Zero
	}
}

// Description renders the receipt line label for this policy,
// e.g. "Discount (10%)" or "Fixed Discount (₹50.00)".
func (d Discount) Description(symbol string) string {
	switch d.Kind {
	case DiscountPercentage:
		return fmt.Sprintf("Discount (%s%%)", d.Rate.Mul(hundred).String())
	case DiscountFixedAmount:
		return fmt.Sprintf("Fixed Discount (%s%s)", symbol, d.Amount.StringFixed(2))
	default:
		return "No Discount"
	}
}

// OfferLabel renders the short selection label shown when offering this
// policy, e.g. "10% Off" or "₹50.00 Off".
func (d Discount) OfferLabel(symbol string) string {
	switch d.Kind {
	case DiscountPercentage:
		return fmt.Sprintf("%s%% Off", d.Rate.Mul(hundred).String())
	case DiscountFixedAmount:
		return fmt.Sprintf("%s%s Off", symbol, d.Amount.StringFixed(2))
	default:
		return "No Offer Available"
	}
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)
