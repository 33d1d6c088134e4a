package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/jx"

	"github.com/restobill/restobill/internal/checkout"
	"github.com/restobill/restobill/internal/domain/pricing"
)

// orderRequest is the decoded body of preview/confirm/cancel calls.
type orderRequest struct {
	Selections   pricing.Selections
	DiscountCode string
}

// decodeOrderRequest parses {"items": [{"name", "quantity"}], "discountCode"}.
// Duplicate item names accumulate their quantities.
func decodeOrderRequest(r *http.Request) (orderRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return orderRequest{}, err
	}

	req := orderRequest{Selections: pricing.Selections{}}
	d := jx.DecodeBytes(body)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				var name string
				var qty int
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					switch key {
					case "name":
						v, err := d.Str()
						name = v
						return err
					case "quantity":
						v, err := d.Int()
						qty = v
						return err
					default:
						return d.Skip()
					}
				}); err != nil {
					return err
				}
				req.Selections[name] += qty
				return nil
			})
		case "discountCode":
			v, err := d.Str()
			req.DiscountCode = v
			return err
		default:
			return d.Skip()
		}
	})
	return req, err
}

// previewOrder prices the draft without touching the ledger or offer set.
func (h *Handler) previewOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOrderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bill, err := h.engine.Preview(req.Selections, req.DiscountCode)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	var e jx.Encoder
	e.ObjStart()
	h.encodeBill(&e, bill)
	e.FieldStart("receipt")
	e.Str(h.renderer.Bill(bill))
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}

// confirmOrder places the draft: the bill is recorded and a single-use
// discount is consumed for all future orders.
func (h *Handler) confirmOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOrderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.engine.Confirm(req.Selections, req.DiscountCode)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.writeRecord(w, http.StatusCreated, rec)
}

// cancelOrder voids the draft, recording it without consuming the discount.
func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOrderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.engine.Cancel(req.Selections, req.DiscountCode)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	h.writeRecord(w, http.StatusOK, rec)
}

// listHistory returns all ledger records, most recent first.
func (h *Handler) listHistory(w http.ResponseWriter, _ *http.Request) {
	records := h.engine.History()

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("orders")
	e.ArrStart()
	for _, rec := range records {
		h.encodeRecord(&e, rec)
	}
	e.ArrEnd()
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) writeRecord(w http.ResponseWriter, status int, rec checkout.Record) {
	var e jx.Encoder
	h.encodeRecord(&e, rec)
	writeJSON(w, status, &e)
}

func (h *Handler) encodeRecord(e *jx.Encoder, rec checkout.Record) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(rec.ID)
	e.FieldStart("outcome")
	e.Str(string(rec.Outcome))
	e.FieldStart("placedAt")
	e.Str(rec.PlacedAt.Format(time.RFC3339))
	h.encodeBill(e, rec.Bill)
	e.FieldStart("receipt")
	e.Str(h.renderer.Record(rec))
	e.ObjEnd()
}

// encodeBill writes the "bill" field. Monetary values are rendered with
// two-decimal display precision at this boundary only.
func (h *Handler) encodeBill(e *jx.Encoder, b pricing.Bill) {
	e.FieldStart("bill")
	e.ObjStart()

	e.FieldStart("lines")
	e.ArrStart()
	for _, line := range b.Lines {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(line.Item.Name)
		e.FieldStart("quantity")
		e.Int(line.Quantity)
		e.FieldStart("unitPrice")
		e.Str(line.Item.UnitPrice.StringFixed(2))
		e.FieldStart("lineTotal")
		e.Str(line.Total().StringFixed(2))
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("subtotal")
	e.Str(b.Subtotal.StringFixed(2))

	if b.DiscountApplied() {
		e.FieldStart("discount")
		e.ObjStart()
		e.FieldStart("description")
		e.Str(b.Discount.Description(h.symbol))
		e.FieldStart("amount")
		e.Str(b.DiscountAmount.StringFixed(2))
		e.ObjEnd()
		e.FieldStart("taxableAmount")
		e.Str(b.TaxableAmount.StringFixed(2))
	}

	e.FieldStart("taxes")
	e.ArrStart()
	for _, tl := range b.TaxLines {
		e.ObjStart()
		e.FieldStart("label")
		e.Str(tl.Tax.Description())
		e.FieldStart("amount")
		e.Str(tl.Amount.StringFixed(2))
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("totalTax")
	e.Str(b.TotalTax.StringFixed(2))
	e.FieldStart("grandTotal")
	e.Str(b.GrandTotal.StringFixed(2))
	e.ObjEnd()
}
