package app

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restobill/restobill/internal/domain/pricing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{Addr: "0.0.0.0:8080"}
	cfg.applyDefaults()

	require.Len(t, cfg.Menu, 6)
	assert.Equal(t, "Burger", cfg.Menu[0].Name)
	assert.Equal(t, "150.00", cfg.Menu[0].Price)

	require.Len(t, cfg.Taxes, 2)
	assert.Equal(t, "SGST", cfg.Taxes[0].Label)
	assert.Equal(t, "CGST", cfg.Taxes[1].Label)

	require.Len(t, cfg.Discounts, 3)
	assert.Equal(t, "SAVE10", cfg.Discounts[0].Code)
}

func TestApplyDefaults_KeepsConfiguredTables(t *testing.T) {
	cfg := Config{
		Menu:  []MenuItemConfig{{Name: "Dosa", Price: "90.00"}},
		Taxes: []TaxConfig{{Label: "VAT", Rate: "0.05"}},
		Discounts: []DiscountConfig{
			{Code: "HALF", Type: "percentage", Value: "0.50"},
		},
	}
	cfg.applyDefaults()

	require.Len(t, cfg.Menu, 1)
	assert.Equal(t, "Dosa", cfg.Menu[0].Name)
	require.Len(t, cfg.Taxes, 1)
	require.Len(t, cfg.Discounts, 1)
}

func TestCatalog(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 6, catalog.Len())

	item, err := catalog.Find("Pizza")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("350.00").Equal(item.UnitPrice))
}

func TestCatalog_InvalidPrice(t *testing.T) {
	cfg := Config{Menu: []MenuItemConfig{{Name: "Burger", Price: "cheap"}}}

	_, err := cfg.Catalog()
	require.Error(t, err)
}

func TestTaxPolicies(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	taxes, err := cfg.TaxPolicies()
	require.NoError(t, err)
	require.Len(t, taxes, 2)
	assert.Equal(t, "SGST (2.5%)", taxes[0].Description())
}

func TestTaxPolicies_InvalidRate(t *testing.T) {
	cfg := Config{Taxes: []TaxConfig{{Label: "VAT", Rate: "1.5"}}}

	_, err := cfg.TaxPolicies()
	require.Error(t, err, "rates outside [0, 1) fail before the server starts")
}

func TestDiscountOffers(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	offers, err := cfg.DiscountOffers()
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, pricing.DiscountPercentage, offers[0].Discount.Kind)
	assert.Equal(t, pricing.DiscountFixedAmount, offers[2].Discount.Kind)
}

func TestDiscountOffers_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		discount DiscountConfig
	}{
		{
			name:     "unknown type",
			discount: DiscountConfig{Code: "X", Type: "bogo", Value: "1"},
		},
		{
			name:     "unparseable value",
			discount: DiscountConfig{Code: "X", Type: "fixed", Value: "fifty"},
		},
		{
			name:     "percentage rate out of range",
			discount: DiscountConfig{Code: "X", Type: "percentage", Value: "1.2"},
		},
		{
			name:     "fixed amount not positive",
			discount: DiscountConfig{Code: "X", Type: "fixed", Value: "0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Discounts: []DiscountConfig{tt.discount}}
			_, err := cfg.DiscountOffers()
			require.Error(t, err)
		})
	}
}
