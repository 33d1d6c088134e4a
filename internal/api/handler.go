// Package api exposes the checkout engine over a small JSON HTTP surface.
// Encoding and decoding use go-faster/jx directly; the shapes are small
// enough that hand-written codecs stay readable.
package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/restobill/restobill/internal/checkout"
	"github.com/restobill/restobill/internal/domain/pricing"
	"github.com/restobill/restobill/internal/receipt"
)

// HandlerConfig holds non-dependency configuration for the Handler.
type HandlerConfig struct {
	// CurrencySymbol is prepended to monetary values in labels and receipts.
	CurrencySymbol string
}

// Handler routes HTTP requests to the checkout engine and renders responses.
type Handler struct {
	engine   *checkout.Engine
	renderer *receipt.Renderer
	symbol   string
}

// NewHandler constructs a Handler around the given engine.
func NewHandler(cfg HandlerConfig, engine *checkout.Engine) *Handler {
	return &Handler{
		engine:   engine,
		renderer: receipt.NewRenderer(cfg.CurrencySymbol),
		symbol:   cfg.CurrencySymbol,
	}
}

// Register attaches all API routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/menu", h.listMenu)
	mux.HandleFunc("GET /api/discounts", h.listDiscounts)
	mux.HandleFunc("POST /api/orders/preview", h.previewOrder)
	mux.HandleFunc("POST /api/orders/confirm", h.confirmOrder)
	mux.HandleFunc("POST /api/orders/cancel", h.cancelOrder)
	mux.HandleFunc("GET /api/orders/history", h.listHistory)
}

// writeJSON sends an encoder's buffer with the given status code.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError sends the standard error envelope {"code": ..., "message": ...}.
func writeError(w http.ResponseWriter, status int, message string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Int(status)
	e.FieldStart("message")
	e.Str(message)
	e.ObjEnd()
	writeJSON(w, status, &e)
}

// writeEngineError maps domain errors to HTTP responses. Recoverable
// lifecycle signals become 400 guidance messages, request validation
// failures become 422, anything else is a 500.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pricing.ErrEmptySelection):
		writeError(w, http.StatusBadRequest, "please select at least one item")
	case errors.Is(err, checkout.ErrNothingToCancel):
		writeError(w, http.StatusBadRequest, "nothing to cancel")
	default:
		var (
			unknownItem  *pricing.UnknownItemError
			invalidQty   *pricing.InvalidQuantityError
			unknownOffer *checkout.UnknownOfferError
		)
		switch {
		case errors.As(err, &unknownItem),
			errors.As(err, &invalidQty),
			errors.As(err, &unknownOffer):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			zctx.From(r.Context()).Error("request failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
	}
}
