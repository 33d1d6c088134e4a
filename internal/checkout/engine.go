// Package checkout owns the order lifecycle: previewing bills, confirming or
// canceling draft orders, the append-only ledger of past orders, and the
// mutable set of offerable discounts with its single-use consumption rule.
package checkout

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/restobill/restobill/internal/domain/menu"
	"github.com/restobill/restobill/internal/domain/pricing"
)

// ErrNothingToCancel signals a cancel attempt with no positive quantities.
var ErrNothingToCancel = errors.New("nothing to cancel")

// UnknownOfferError indicates a discount code that is not currently
// offerable, either because it never existed or because a confirmed order
// already consumed it.
type UnknownOfferError struct {
	Code string
}

func (e *UnknownOfferError) Error() string {
	return fmt.Sprintf("discount offer %q not available", e.Code)
}

// NoneOfferCode identifies the always-present no-discount offer.
const NoneOfferCode = "none"

// Offer pairs a selectable discount policy with the code clients use to
// reference it.
type Offer struct {
	Code     string
	Discount pricing.Discount
}

// Outcome tags a ledger record as confirmed or canceled.
type Outcome string

const (
	// OutcomeConfirmed marks an order that was placed.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeCanceled marks a draft that was voided before placing.
	OutcomeCanceled Outcome = "canceled"
)

// Record is an immutable ledger entry capturing the bill of a confirmed or
// canceled order.
type Record struct {
	ID       string
	Bill     pricing.Bill
	Outcome  Outcome
	PlacedAt time.Time
}

// Engine is the process-wide pricing and lifecycle engine. The catalog and
// tax list are read-only after construction; the offer set shrinks as
// single-use discounts are consumed and the ledger only ever grows.
//
// Every state transition (compute + ledger append + offer consumption) runs
// under one mutex, so two concurrent confirmations can never both consume
// the same single-use offer or interleave ledger entries.
type Engine struct {
	catalog *menu.Catalog
	taxes   []pricing.Tax

	mu      sync.Mutex
	offers  []Offer
	records []Record

	now   func() time.Time
	newID func() string
}

// Option customizes Engine construction. Used by tests to pin time and IDs.
type Option func(*Engine)

// WithClock overrides the time source for ledger timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the record ID source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New builds an Engine. The none offer is always placed first; offers with
// duplicate codes or a reserved "none" code are rejected.
func New(catalog *menu.Catalog, taxes []pricing.Tax, offers []Offer, opts ...Option) (*Engine, error) {
	e := &Engine{
		catalog: catalog,
		taxes:   taxes,
		offers:  make([]Offer, 0, len(offers)+1),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	e.offers = append(e.offers, Offer{Code: NoneOfferCode, Discount: pricing.NoDiscount()})

	seen := map[string]struct{}{NoneOfferCode: {}}
	for _, o := range offers {
		if o.Code == "" {
			return nil, errors.New("discount offer code must not be empty")
		}
		if _, ok := seen[o.Code]; ok {
			return nil, errors.Errorf("duplicate discount offer code %q", o.Code)
		}
		if o.Discount.Kind == pricing.DiscountNone {
			return nil, errors.Errorf("offer %q: the none policy is built in and cannot be added", o.Code)
		}
		seen[o.Code] = struct{}{}
		e.offers = append(e.offers, o)
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// CatalogItems returns the menu in catalog order.
func (e *Engine) CatalogItems() []menu.Item {
	return e.catalog.Items()
}

// Offers returns the currently offerable discounts. The none offer is
// always present and always first.
func (e *Engine) Offers() []Offer {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Offer, len(e.offers))
	copy(out, e.offers)
	return out
}

// OffersExhausted reports whether only the none offer remains. Presentation
// layers use this to disable discount selection; it has no effect on
// pricing or lifecycle behaviour.
func (e *Engine) OffersExhausted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.offers) == 1
}

// Preview prices the current selections with the given discount code
// without touching the ledger or the offer set. An empty code selects the
// none offer.
func (e *Engine) Preview(selections pricing.Selections, code string) (pricing.Bill, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.computeLocked(selections, code)
}

// Confirm transitions a draft to its confirmed terminal state: the bill is
// computed as in Preview, a confirmed record is appended to the ledger, and
// a non-none discount is permanently removed from the offer set. An empty
// selection leaves all state untouched.
func (e *Engine) Confirm(selections pricing.Selections, code string) (Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	bill, err := e.computeLocked(selections, code)
	if err != nil {
		return Record{}, err
	}

	rec := e.appendLocked(bill, OutcomeConfirmed)
	e.consumeLocked(code)
	return rec, nil
}

// Cancel voids a draft order: the bill is captured exactly as Preview would
// compute it and recorded as canceled. The discount, if any, is NOT
// consumed; consumption is tied exclusively to confirmation. A draft with
// no positive quantities yields ErrNothingToCancel and no transition.
func (e *Engine) Cancel(selections pricing.Selections, code string) (Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !selections.HasItems() {
		return Record{}, ErrNothingToCancel
	}

	bill, err := e.computeLocked(selections, code)
	if err != nil {
		return Record{}, err
	}

	return e.appendLocked(bill, OutcomeCanceled), nil
}

// History returns the ledger most-recent-first. Entries are copies; the
// stored sequence stays chronological and append-only.
func (e *Engine) History() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Record, len(e.records))
	for i, rec := range e.records {
		out[len(e.records)-1-i] = rec
	}
	return out
}

// computeLocked resolves the discount code and prices the selections.
// Caller must hold e.mu.
func (e *Engine) computeLocked(selections pricing.Selections, code string) (pricing.Bill, error) {
	discount, err := e.findOfferLocked(code)
	if err != nil {
		return pricing.Bill{}, err
	}

	order, err := pricing.BuildOrder(e.catalog, selections)
	if err != nil {
		return pricing.Bill{}, err
	}

	return pricing.Compute(order, discount, e.taxes), nil
}

func (e *Engine) findOfferLocked(code string) (pricing.Discount, error) {
	if code == "" {
		code = NoneOfferCode
	}
	for _, o := range e.offers {
		if o.Code == code {
			return o.Discount, nil
		}
	}
	return pricing.Discount{}, &UnknownOfferError{Code: code}
}

func (e *Engine) appendLocked(bill pricing.Bill, outcome Outcome) Record {
	rec := Record{
		ID:       e.newID(),
		Bill:     bill,
		Outcome:  outcome,
		PlacedAt: e.now(),
	}
	e.records = append(e.records, rec)
	return rec
}

// consumeLocked removes a non-none offer from the offer set. The none offer
// is never removable.
func (e *Engine) consumeLocked(code string) {
	if code == "" || code == NoneOfferCode {
		return
	}
	for i, o := range e.offers {
		if o.Code == code {
			e.offers = append(e.offers[:i], e.offers[i+1:]...)
			return
		}
	}
}
