package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restobill/restobill/internal/checkout"
	"github.com/restobill/restobill/internal/domain/menu"
	"github.com/restobill/restobill/internal/domain/pricing"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func testServer(t *testing.T) *http.ServeMux {
	t.Helper()

	catalog, err := menu.New([]menu.Item{
		{Name: "Burger", UnitPrice: d("150.00")},
		{Name: "Pizza", UnitPrice: d("350.00")},
		{Name: "Soda", UnitPrice: d("40.00")},
	})
	require.NoError(t, err)

	sgst, err := pricing.NewTax("SGST", d("0.025"))
	require.NoError(t, err)
	cgst, err := pricing.NewTax("CGST", d("0.025"))
	require.NoError(t, err)

	save10, err := pricing.NewPercentageDiscount(d("0.10"))
	require.NoError(t, err)
	flat50, err := pricing.NewFixedAmountDiscount(d("50.0"))
	require.NoError(t, err)

	engine, err := checkout.New(catalog,
		[]pricing.Tax{sgst, cgst},
		[]checkout.Offer{
			{Code: "SAVE10", Discount: save10},
			{Code: "FLAT50", Discount: flat50},
		},
	)
	require.NoError(t, err)

	h := NewHandler(HandlerConfig{CurrencySymbol: "₹"}, engine)
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed), "body: %s", rec.Body.String())
	return rec, parsed
}

func TestListMenu(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodGet, "/api/menu", "")
	require.Equal(t, http.StatusOK, rec.Code)

	items := body["items"].([]any)
	require.Len(t, items, 3)
	first := items[0].(map[string]any)
	assert.Equal(t, "Burger", first["name"])
	assert.Equal(t, "150.00", first["unitPrice"])
	assert.Equal(t, "Burger (₹150.00)", first["label"])
}

func TestListDiscounts(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodGet, "/api/discounts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	discounts := body["discounts"].([]any)
	require.Len(t, discounts, 3)
	first := discounts[0].(map[string]any)
	assert.Equal(t, "none", first["code"])
	assert.Equal(t, "No Offer Available", first["label"])
	assert.Equal(t, false, body["exhausted"])
}

func TestPreviewOrder(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/orders/preview",
		`{"items":[{"name":"Burger","quantity":2},{"name":"Pizza","quantity":1}],"discountCode":"SAVE10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	bill := body["bill"].(map[string]any)
	assert.Equal(t, "650.00", bill["subtotal"])
	assert.Equal(t, "585.00", bill["taxableAmount"])
	assert.Equal(t, "614.25", bill["grandTotal"])

	discount := bill["discount"].(map[string]any)
	assert.Equal(t, "Discount (10%)", discount["description"])
	assert.Equal(t, "65.00", discount["amount"])

	taxes := bill["taxes"].([]any)
	require.Len(t, taxes, 2)
	assert.Equal(t, "14.63", taxes[0].(map[string]any)["amount"])

	receipt := body["receipt"].(string)
	assert.Contains(t, receipt, "GRAND TOTAL:")

	// Preview has no side effects.
	_, history := doJSON(t, mux, http.MethodGet, "/api/orders/history", "")
	assert.Empty(t, history["orders"])
}

func TestPreviewOrder_NoDiscountOmitsDiscountField(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/orders/preview",
		`{"items":[{"name":"Soda","quantity":1}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	bill := body["bill"].(map[string]any)
	_, hasDiscount := bill["discount"]
	assert.False(t, hasDiscount)
	_, hasTaxable := bill["taxableAmount"]
	assert.False(t, hasTaxable)
}

func TestPreviewOrder_EmptySelection(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/orders/preview", `{"items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please select at least one item", body["message"])
}

func TestPreviewOrder_UnknownItem(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/orders/preview",
		`{"items":[{"name":"Sushi","quantity":1}]}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body["message"], "Sushi")
}

func TestPreviewOrder_UnknownDiscount(t *testing.T) {
	mux := testServer(t)

	rec, _ := doJSON(t, mux, http.MethodPost, "/api/orders/preview",
		`{"items":[{"name":"Burger","quantity":1}],"discountCode":"BOGUS"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestConfirmOrder_ConsumesDiscount(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/orders/confirm",
		`{"items":[{"name":"Burger","quantity":2},{"name":"Pizza","quantity":1}],"discountCode":"SAVE10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "confirmed", body["outcome"])
	assert.NotEmpty(t, body["id"])
	bill := body["bill"].(map[string]any)
	assert.Equal(t, "614.25", bill["grandTotal"])

	// SAVE10 is gone from the offer list.
	_, discounts := doJSON(t, mux, http.MethodGet, "/api/discounts", "")
	codes := []string{}
	for _, o := range discounts["discounts"].([]any) {
		codes = append(codes, o.(map[string]any)["code"].(string))
	}
	assert.NotContains(t, codes, "SAVE10")
	assert.Contains(t, codes, "none")

	// Ledger grew by one.
	_, history := doJSON(t, mux, http.MethodGet, "/api/orders/history", "")
	assert.Len(t, history["orders"], 1)
}

func TestCancelOrder_KeepsDiscount(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/orders/cancel",
		`{"items":[{"name":"Soda","quantity":1}],"discountCode":"FLAT50"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "canceled", body["outcome"])
	bill := body["bill"].(map[string]any)
	assert.Equal(t, "0.00", bill["grandTotal"])
	assert.Contains(t, body["receipt"], "ORDER CANCELED")

	_, discounts := doJSON(t, mux, http.MethodGet, "/api/discounts", "")
	codes := []string{}
	for _, o := range discounts["discounts"].([]any) {
		codes = append(codes, o.(map[string]any)["code"].(string))
	}
	assert.Contains(t, codes, "FLAT50")
}

func TestCancelOrder_NothingToCancel(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/orders/cancel", `{"items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "nothing to cancel", body["message"])
}

func TestHistory_MostRecentFirst(t *testing.T) {
	mux := testServer(t)

	_, _ = doJSON(t, mux, http.MethodPost, "/api/orders/confirm",
		`{"items":[{"name":"Burger","quantity":1}]}`)
	_, _ = doJSON(t, mux, http.MethodPost, "/api/orders/cancel",
		`{"items":[{"name":"Pizza","quantity":1}]}`)

	rec, body := doJSON(t, mux, http.MethodGet, "/api/orders/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	orders := body["orders"].([]any)
	require.Len(t, orders, 2)
	assert.Equal(t, "canceled", orders[0].(map[string]any)["outcome"])
	assert.Equal(t, "confirmed", orders[1].(map[string]any)["outcome"])
}

func TestInvalidBody(t *testing.T) {
	mux := testServer(t)

	rec, body := doJSON(t, mux, http.MethodPost, "/api/orders/preview", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", body["message"])
}
