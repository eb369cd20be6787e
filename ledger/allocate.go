package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/shieldai/inventory/report"
)

// allocEpsilon is the threshold below which a remaining quantity counts as
// fully allocated. It absorbs decimal dust from repeated subtraction.
var allocEpsilon = decimal.New(1, -9)

// Allocator is the pass-2 FIFO engine. It consumes deferred expense
// quantities against each product's batches oldest-first, mutating batch
// quantities in place. Allocation is best-effort: it always terminates and
// never fails, shortfalls become collected errors.
type Allocator struct {
	products map[string]*Product
	issues   Issues
}

// NewAllocator indexes the tree's products by exact name. With duplicate
// names across groups the first product in group order wins.
func NewAllocator(tree *Tree) *Allocator {
	products := make(map[string]*Product)
	for _, group := range tree.Groups {
		for _, product := range group.Products {
			if _, ok := products[product.Name]; !ok {
				products[product.Name] = product
			}
		}
	}
	return &Allocator{products: products}
}

// Allocate applies every deferred expense and returns the issues the pass
// produced.
func (a *Allocator) Allocate(deferred []deferredExpense) Issues {
	for _, op := range deferred {
		a.allocate(op)
	}
	return a.issues
}

func (a *Allocator) allocate(op deferredExpense) {
	product, ok := a.products[op.product]
	if !ok {
		a.issues = append(a.issues, NewUnknownProductError(op.product, op.document, op.out))
		return
	}

	// Batches stay in row order on the product; FIFO wants arrival order.
	batches := slices.Clone(product.Batches)
	slices.SortStableFunc(batches, func(x, y *Batch) int {
		return x.Arrival.Compare(y.Arrival)
	})

	remaining := op.out
	for _, batch := range batches {
		if remaining.LessThanOrEqual(allocEpsilon) {
			break
		}
		if batch.Qty.End.LessThanOrEqual(allocEpsilon) {
			continue
		}

		consume := decimal.Min(remaining, batch.Qty.End)
		deficit := consumeFromBatch(batch, consume)
		if deficit.IsPositive() {
			a.issues = append(a.issues,
				NewNegativeBalanceWarning(batch.Line, product.Name, batch.Code, deficit))
		}

		batch.Validation = Validate(batch.Qty)
		if !batch.Validation.Valid {
			a.issues = append(a.issues,
				NewBalanceError(batch.Line, product.Name, batch.Code, batch.Validation))
		}

		batch.Documents = append(batch.Documents, Document{
			Type: report.DocExpense,
			Name: op.document,
			In:   decimal.Zero,
			Out:  consume,
		})
		remaining = remaining.Sub(consume)
	}

	if remaining.GreaterThan(allocEpsilon) {
		a.issues = append(a.issues,
			NewInsufficientStockError(product.Name, op.document, op.out, remaining))
	}
}

// consumeFromBatch takes qty out of a batch: out increases and end decreases
// by qty. An end driven below zero is clamped to exactly zero; the returned
// deficit is the overshoot magnitude (zero when no clamping happened).
func consumeFromBatch(batch *Batch, qty decimal.Decimal) decimal.Decimal {
	batch.Qty.Out = batch.Qty.Out.Add(qty)
	batch.Qty.End = batch.Qty.End.Sub(qty)

	if batch.Qty.End.LessThan(allocEpsilon.Neg()) {
		deficit := batch.Qty.End.Neg()
		batch.Qty.End = decimal.Zero
		return deficit
	}
	if batch.Qty.End.IsNegative() {
		batch.Qty.End = decimal.Zero
	}
	return decimal.Zero
}
