// Package ledger reconstructs a per-batch stock ledger from classified
// report rows. Reconstruction runs in two passes: the Builder assembles the
// warehouse/group/product/batch tree and defers expense quantities, then the
// Allocator consumes the deferred expenses against batches oldest-first.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shieldai/inventory/report"
)

// Quantities is one begin/in/out/end tuple. Field names are part of the
// output contract and must stay stable.
type Quantities struct {
	Begin decimal.Decimal `json:"begin"`
	In    decimal.Decimal `json:"in"`
	Out   decimal.Decimal `json:"out"`
	End   decimal.Decimal `json:"end"`
}

// ValidationResult is the outcome of checking the accounting identity
// end = begin + in - out on one quantity tuple.
type ValidationResult struct {
	Valid bool            `json:"valid"`
	Diff  decimal.Decimal `json:"diff"`
	Error string          `json:"error,omitempty"`
}

// Document is one movement document attached to a batch for provenance.
// Its quantities are informational; they never drive mutation on their own.
type Document struct {
	Type report.DocType  `json:"doc_type"`
	Name string          `json:"name"`
	In   decimal.Decimal `json:"in"`
	Out  decimal.Decimal `json:"out"`
}

// Batch is one arrival lot of a product. Qty is mutated by allocation and
// reshuffle receipts; QtyRaw keeps the as-parsed values for audit.
type Batch struct {
	ArrivalDate string     `json:"arrival_date"`
	ArrivalTime string     `json:"arrival_time"`
	Code        string     `json:"batch_code"`
	Qty         Quantities `json:"qty"`
	QtyRaw      Quantities `json:"qty_raw"`
	Documents   []Document `json:"documents"`

	Validation ValidationResult `json:"validation"`

	// Arrival is the parsed timestamp used for FIFO ordering. The wire
	// format carries only the split date/time strings above.
	Arrival time.Time `json:"-"`

	// Line is the source row, for diagnostics.
	Line int `json:"-"`
}

// Product is one catalogue item with its batches in row order.
type Product struct {
	Name    string     `json:"name"`
	Batches []*Batch   `json:"batches"`
	Summary Quantities `json:"quantity_summary"`
}

// Group is one product section of the report.
type Group struct {
	Name     string     `json:"name"`
	Products []*Product `json:"products"`

	// Per-group counters, filled during pass 1.
	ProductCount  int `json:"-"`
	BatchCount    int `json:"-"`
	DocumentCount int `json:"-"`
}

// Tree is the reconstructed ledger for one report.
type Tree struct {
	Warehouse string   `json:"warehouse"`
	Groups    []*Group `json:"sections"`
}

// Result is everything one parse produced: the tree, run counters and all
// non-fatal issues, retrievable by the caller.
type Result struct {
	Tree   *Tree  `json:"tree"`
	Stats  *Stats `json:"stats"`
	Issues Issues `json:"issues"`
}

// HasErrors reports whether any collected issue is an error rather than a
// warning. The CLI uses this for its exit code.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity() == SeverityError {
			return true
		}
	}
	return false
}
