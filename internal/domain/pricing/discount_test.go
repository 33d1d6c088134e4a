package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func mustPercentage(t *testing.T, rate string) Discount {
	t.Helper()
	disc, err := NewPercentageDiscount(d(rate))
	require.NoError(t, err)
	return disc
}

func mustFixed(t *testing.T, amount string) Discount {
	t.Helper()
	disc, err := NewFixedAmountDiscount(d(amount))
	require.NoError(t, err)
	return disc
}

func TestNewPercentageDiscount_Validation(t *testing.T) {
	tests := []struct {
		name    string
		rate    string
		wantErr bool
	}{
		{name: "valid 10%", rate: "0.10"},
		{name: "valid just below 1", rate: "0.99"},
		{name: "zero rate rejected", rate: "0", wantErr: true},
		{name: "negative rate rejected", rate: "-0.1", wantErr: true},
		{name: "rate of 1 rejected", rate: "1", wantErr: true},
		{name: "rate above 1 rejected", rate: "1.5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPercentageDiscount(d(tt.rate))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewFixedAmountDiscount_Validation(t *testing.T) {
	_, err := NewFixedAmountDiscount(d("50"))
	require.NoError(t, err)

	_, err = NewFixedAmountDiscount(d("0"))
	require.Error(t, err)

	_, err = NewFixedAmountDiscount(d("-5"))
	require.Error(t, err)
}

func TestDiscountApply(t *testing.T) {
	tests := []struct {
		name     string
		discount Discount
		subtotal string
		want     string
	}{
		{
			name:     "none deducts nothing",
			discount: NoDiscount(),
			subtotal: "650.00",
			want:     "0",
		},
		{
			name:     "percentage 10% of 650",
			discount: mustPercentage(t, "0.10"),
			subtotal: "650.00",
			want:     "65.00",
		},
		{
			name:     "fixed below subtotal",
			discount: mustFixed(t, "50.0"),
			subtotal: "650.00",
			want:     "50.0",
		},
		{
			name:     "fixed capped at subtotal",
			discount: mustFixed(t, "50.0"),
			subtotal: "40.00",
			want:     "40.00",
		},
		{
			name:     "fixed on zero subtotal",
			discount: mustFixed(t, "50.0"),
			subtotal: "0",
			want:     "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.discount.Apply(d(tt.subtotal))
			assert.True(t, d(tt.want).Equal(got), "got %s, want %s", got, tt.want)
			assert.False(t, got.IsNegative())
			assert.False(t, got.GreaterThan(d(tt.subtotal)))
		})
	}
}

func TestDiscountDescription(t *testing.T) {
	assert.Equal(t, "No Discount", NoDiscount().Description("₹"))
	assert.Equal(t, "Discount (10%)", mustPercentage(t, "0.10").Description("₹"))
	assert.Equal(t, "Fixed Discount (₹50.00)", mustFixed(t, "50.0").Description("₹"))
}

func TestDiscountOfferLabel(t *testing.T) {
	assert.Equal(t, "No Offer Available", NoDiscount().OfferLabel("₹"))
	assert.Equal(t, "20% Off", mustPercentage(t, "0.20").OfferLabel("₹"))
	assert.Equal(t, "₹50.00 Off", mustFixed(t, "50.0").OfferLabel("₹"))
}

func TestNewTax_Validation(t *testing.T) {
	_, err := NewTax("SGST", d("0.025"))
	require.NoError(t, err)

	// Zero rate is allowed, one is not.
	_, err = NewTax("ZERO", d("0"))
	require.NoError(t, err)

	_, err = NewTax("FULL", d("1"))
	require.Error(t, err)

	_, err = NewTax("NEG", d("-0.01"))
	require.Error(t, err)

	_, err = NewTax("", d("0.025"))
	require.Error(t, err)
}

func TestTaxAmountAndDescription(t *testing.T) {
	tax, err := NewTax("SGST", d("0.025"))
	require.NoError(t, err)

	assert.True(t, d("14.625").Equal(tax.Amount(d("585.00"))))
	assert.Equal(t, "SGST (2.5%)", tax.Description())
}
