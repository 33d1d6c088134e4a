package api

import (
	"net/http"

	"github.com/go-faster/jx"
)

// listMenu returns the catalog in menu order.
func (h *Handler) listMenu(w http.ResponseWriter, _ *http.Request) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range h.engine.CatalogItems() {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(item.Name)
		e.FieldStart("unitPrice")
		e.Str(item.UnitPrice.StringFixed(2))
		e.FieldStart("label")
		e.Str(item.Label(h.symbol))
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}

// listDiscounts returns the currently offerable discounts. Once only the
// none offer remains, "exhausted" lets clients disable discount selection.
func (h *Handler) listDiscounts(w http.ResponseWriter, _ *http.Request) {
	offers := h.engine.Offers()

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("discounts")
	e.ArrStart()
	for _, o := range offers {
		e.ObjStart()
		e.FieldStart("code")
		e.Str(o.Code)
		e.FieldStart("label")
		e.Str(o.Discount.OfferLabel(h.symbol))
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("exhausted")
	e.Bool(len(offers) == 1)
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}
