package pricing

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Tax is a percentage tax applied to the taxable amount of a bill. Taxes in
// a bill are computed independently from the same base, never compounded.
type Tax struct {
	Label string
	Rate  decimal.Decimal
}

// NewTax builds a tax policy. The rate is a fraction, e.g. 0.025 for 2.5%,
// and must satisfy 0 <= rate < 1.
func NewTax(label string, rate decimal.Decimal) (Tax, error) {
	if label == "" {
		return Tax{}, errors.New("tax label must not be empty")
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
		return Tax{}, errors.Errorf("tax %q: rate must be in [0, 1), got %s", label, rate)
	}
	return Tax{Label: label, Rate: rate}, nil
}

// Amount computes this tax for the given taxable amount.
func (t Tax) Amount(taxable decimal.Decimal) decimal.Decimal {
	return taxable.Mul(t.Rate)
}

// Description renders the receipt line label, e.g. "SGST (2.5%)".
func (t Tax) Description() string {
	return fmt.Sprintf("%s (%s%%)", t.Label, t.Rate.Mul(hundred).String())
}
