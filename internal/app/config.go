package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/restobill/restobill/internal/checkout"
	"github.com/restobill/restobill/internal/domain/menu"
	"github.com/restobill/restobill/internal/domain/pricing"
)

// Config holds the complete application configuration, loadable from
// environment variables (RESTO_ prefix), flags, or YAML config files.
// Menu, tax, and discount tables come from the config file; when absent,
// the built-in defaults below are used.
type Config struct {
	Addr           string `default:"0.0.0.0:8080" usage:"API server listen address"`
	CurrencySymbol string `default:"₹" usage:"Currency symbol for labels and receipts" flag:"currency-symbol"`

	Menu      []MenuItemConfig `usage:"Menu items (config file only)"`
	Taxes     []TaxConfig      `usage:"Tax policies applied in order (config file only)"`
	Discounts []DiscountConfig `usage:"Single-use discount offers (config file only)"`

	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// MenuItemConfig describes one catalog entry.
type MenuItemConfig struct {
	Name  string `usage:"Item name, unique within the menu"`
	Price string `usage:"Unit price, e.g. 150.00"`
}

// TaxConfig describes one percentage tax. Rate is a fraction: 0.025 = 2.5%.
type TaxConfig struct {
	Label string `usage:"Tax label, e.g. SGST"`
	Rate  string `usage:"Tax rate as a fraction in [0, 1)"`
}

// DiscountConfig describes one single-use discount offer.
type DiscountConfig struct {
	Code  string `usage:"Offer code clients select by"`
	Type  string `usage:"Discount type: percentage or fixed"`
	Value string `usage:"Rate in (0, 1) for percentage, amount > 0 for fixed"`
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, then fills in the built-in menu, tax, and discount tables where the
// config left them empty.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "RESTO",
		Files:     []string{"config.yaml", "/etc/restobill/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills the built-in data set and maps platform-provided PORT.
func (c *Config) applyDefaults() {
	if len(c.Menu) == 0 {
		c.Menu = []MenuItemConfig{
			{Name: "Burger", Price: "150.00"},
			{Name: "Pizza", Price: "350.00"},
			{Name: "Fries", Price: "80.00"},
			{Name: "Soda", Price: "40.00"},
			{Name: "Salad", Price: "120.00"},
			{Name: "Coffee", Price: "60.00"},
		}
	}
	if len(c.Taxes) == 0 {
		c.Taxes = []TaxConfig{
			{Label: "SGST", Rate: "0.025"},
			{Label: "CGST", Rate: "0.025"},
		}
	}
	if len(c.Discounts) == 0 {
		c.Discounts = []DiscountConfig{
			{Code: "SAVE10", Type: "percentage", Value: "0.10"},
			{Code: "SAVE20", Type: "percentage", Value: "0.20"},
			{Code: "FLAT50", Type: "fixed", Value: "50.00"},
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}

// Catalog builds the immutable menu catalog. Invalid prices fail here,
// before the server starts taking orders.
func (c *Config) Catalog() (*menu.Catalog, error) {
	items := make([]menu.Item, len(c.Menu))
	for i, m := range c.Menu {
		price, err := decimal.NewFromString(m.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "menu item %q: parse price %q", m.Name, m.Price)
		}
		items[i] = menu.Item{Name: m.Name, UnitPrice: price}
	}
	return menu.New(items)
}

// TaxPolicies builds the ordered tax list.
func (c *Config) TaxPolicies() ([]pricing.Tax, error) {
	taxes := make([]pricing.Tax, len(c.Taxes))
	for i, t := range c.Taxes {
		rate, err := decimal.NewFromString(t.Rate)
		if err != nil {
			return nil, errors.Wrapf(err, "tax %q: parse rate %q", t.Label, t.Rate)
		}
		tax, err := pricing.NewTax(t.Label, rate)
		if err != nil {
			return nil, err
		}
		taxes[i] = tax
	}
	return taxes, nil
}

// DiscountOffers builds the initial discount offer set.
func (c *Config) DiscountOffers() ([]checkout.Offer, error) {
	offers := make([]checkout.Offer, len(c.Discounts))
	for i, d := range c.Discounts {
		value, err := decimal.NewFromString(d.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "discount %q: parse value %q", d.Code, d.Value)
		}

		var policy pricing.Discount
		switch d.Type {
		case "percentage":
			policy, err = pricing.NewPercentageDiscount(value)
		case "fixed":
			policy, err = pricing.NewFixedAmountDiscount(value)
		default:
			return nil, errors.Errorf("discount %q: unknown type %q", d.Code, d.Type)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "discount %q", d.Code)
		}
		offers[i] = checkout.Offer{Code: d.Code, Discount: policy}
	}
	return offers, nil
}
