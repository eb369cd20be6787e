package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Severity splits issues into warnings (row skipped or adjusted, parse
// continues) and errors (balance or allocation failures worth an exit code).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue is one non-fatal problem found while reconstructing the ledger.
// Issues are collected on the Result, never only printed, so callers and
// tests can assert on them.
type Issue interface {
	error
	Severity() Severity
	Line() int
}

// Issues is the collected issue list of one run.
type Issues []Issue

// Warnings returns only the warning-severity issues.
func (i Issues) Warnings() Issues {
	return i.filter(SeverityWarning)
}

// Errors returns only the error-severity issues.
func (i Issues) Errors() Issues {
	return i.filter(SeverityError)
}

func (i Issues) filter(s Severity) Issues {
	var out Issues
	for _, issue := range i {
		if issue.Severity() == s {
			out = append(out, issue)
		}
	}
	return out
}

// OrphanRowWarning flags a row that arrived before the hierarchy context it
// needs (a product without a group, a batch or document without a product).
type OrphanRowWarning struct {
	Role    string
	Text    string
	Missing string
	RowLine int
}

// NewOrphanRowWarning creates an OrphanRowWarning.
func NewOrphanRowWarning(line int, role, text, missing string) *OrphanRowWarning {
	return &OrphanRowWarning{Role: role, Text: text, Missing: missing, RowLine: line}
}

func (e *OrphanRowWarning) Error() string {
	return fmt.Sprintf("row %d: %s %q skipped: no current %s", e.RowLine, e.Role, e.Text, e.Missing)
}

func (e *OrphanRowWarning) Severity() Severity { return SeverityWarning }
func (e *OrphanRowWarning) Line() int          { return e.RowLine }

// InvalidProductWarning flags a product row whose text marks a broken
// catalogue reference.
type InvalidProductWarning struct {
	Text    string
	RowLine int
}

// NewInvalidProductWarning creates an InvalidProductWarning.
func NewInvalidProductWarning(line int, text string) *InvalidProductWarning {
	return &InvalidProductWarning{Text: text, RowLine: line}
}

func (e *InvalidProductWarning) Error() string {
	return fmt.Sprintf("row %d: invalid product reference %q skipped", e.RowLine, e.Text)
}

func (e *InvalidProductWarning) Severity() Severity { return SeverityWarning }
func (e *InvalidProductWarning) Line() int          { return e.RowLine }

// DateParseWarning flags a batch row whose leading date token could not be
// parsed; the batch keeps a substitute arrival timestamp.
type DateParseWarning struct {
	Token   string
	RowLine int
}

// NewDateParseWarning creates a DateParseWarning.
func NewDateParseWarning(line int, token string) *DateParseWarning {
	return &DateParseWarning{Token: token, RowLine: line}
}

func (e *DateParseWarning) Error() string {
	return fmt.Sprintf("row %d: unparsable batch date %q, falling back to current time", e.RowLine, e.Token)
}

func (e *DateParseWarning) Severity() Severity { return SeverityWarning }
func (e *DateParseWarning) Line() int          { return e.RowLine }

// HeaderFallbackWarning is emitted once when the header row did not resolve
// all four quantity columns and the fixed default offsets are used instead.
type HeaderFallbackWarning struct {
	RowLine int
}

// NewHeaderFallbackWarning creates a HeaderFallbackWarning.
func NewHeaderFallbackWarning(line int) *HeaderFallbackWarning {
	return &HeaderFallbackWarning{RowLine: line}
}

func (e *HeaderFallbackWarning) Error() string {
	return fmt.Sprintf("row %d: quantity columns unresolved from header, using default offsets", e.RowLine)
}

func (e *HeaderFallbackWarning) Severity() Severity { return SeverityWarning }
func (e *HeaderFallbackWarning) Line() int          { return e.RowLine }

// ReshuffleWithoutBatchWarning flags a reshuffle or surplus receipt whose
// product has no batches to adjust; the received quantity is dropped.
type ReshuffleWithoutBatchWarning struct {
	Product  string
	Document string
	In       decimal.Decimal
	RowLine  int
}

// NewReshuffleWithoutBatchWarning creates a ReshuffleWithoutBatchWarning.
func NewReshuffleWithoutBatchWarning(line int, product, document string, in decimal.Decimal) *ReshuffleWithoutBatchWarning {
	return &ReshuffleWithoutBatchWarning{Product: product, Document: document, In: in, RowLine: line}
}

func (e *ReshuffleWithoutBatchWarning) Error() string {
	return fmt.Sprintf("row %d: %q receives %s into product %q which has no batches",
		e.RowLine, e.Document, e.In, e.Product)
}

func (e *ReshuffleWithoutBatchWarning) Severity() Severity { return SeverityWarning }
func (e *ReshuffleWithoutBatchWarning) Line() int          { return e.RowLine }

// NegativeBalanceWarning records a clamped allocation: consuming the full
// quantity would have driven a batch's end below zero by Deficit.
type NegativeBalanceWarning struct {
	Product string
	Batch   string
	Deficit decimal.Decimal
	RowLine int
}

// NewNegativeBalanceWarning creates a NegativeBalanceWarning.
func NewNegativeBalanceWarning(line int, product, batch string, deficit decimal.Decimal) *NegativeBalanceWarning {
	return &NegativeBalanceWarning{Product: product, Batch: batch, Deficit: deficit, RowLine: line}
}

func (e *NegativeBalanceWarning) Error() string {
	return fmt.Sprintf("row %d: batch %q of %q clamped to zero, deficit %s",
		e.RowLine, e.Batch, e.Product, e.Deficit)
}

func (e *NegativeBalanceWarning) Severity() Severity { return SeverityWarning }
func (e *NegativeBalanceWarning) Line() int          { return e.RowLine }

// BalanceError records a batch whose quantities violate the accounting
// identity beyond tolerance.
type BalanceError struct {
	Product string
	Batch   string
	Result  ValidationResult
	RowLine int
}

// NewBalanceError creates a BalanceError.
func NewBalanceError(line int, product, batch string, result ValidationResult) *BalanceError {
	return &BalanceError{Product: product, Batch: batch, Result: result, RowLine: line}
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("row %d: batch %q of %q: %s", e.RowLine, e.Batch, e.Product, e.Result.Error)
}

func (e *BalanceError) Severity() Severity { return SeverityError }
func (e *BalanceError) Line() int          { return e.RowLine }

// UnknownProductError records a deferred expense whose product name matches
// no product in the tree; the operation is dropped.
type UnknownProductError struct {
	Product  string
	Document string
	Out      decimal.Decimal
}

// NewUnknownProductError creates an UnknownProductError.
func NewUnknownProductError(product, document string, out decimal.Decimal) *UnknownProductError {
	return &UnknownProductError{Product: product, Document: document, Out: out}
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("%q consumes %s from unknown product %q, operation dropped",
		e.Document, e.Out, e.Product)
}

func (e *UnknownProductError) Severity() Severity { return SeverityError }
func (e *UnknownProductError) Line() int          { return 0 }

// InsufficientStockError records a deferred expense that could not be fully
// satisfied after draining every batch of its product.
type InsufficientStockError struct {
	Product   string
	Document  string
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

// NewInsufficientStockError creates an InsufficientStockError.
func NewInsufficientStockError(product, document string, requested, remaining decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{Product: product, Document: document, Requested: requested, Remaining: remaining}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock in %q for %q: %s of %s unallocated",
		e.Product, e.Document, e.Remaining, e.Requested)
}

func (e *InsufficientStockError) Severity() Severity { return SeverityError }
func (e *InsufficientStockError) Line() int          { return 0 }
