package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shieldai/inventory/report"
)

// Batch rows lead with the arrival timestamp in one of these layouts.
const (
	dateTimeLayout = "02.01.2006 15:04:05"
	dateLayout     = "02.01.2006"
	timeLayout     = "15:04:05"
)

// deferredExpense is one expense quantity parked during pass 1 for FIFO
// allocation in pass 2.
type deferredExpense struct {
	product  string
	document string
	out      decimal.Decimal
	line     int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithGroups supplies the known-groups set used by row classification.
func WithGroups(groups *report.GroupSet) BuilderOption {
	return func(b *Builder) { b.groups = groups }
}

// WithClassifierConfig overrides the role-heuristic tables.
func WithClassifierConfig(config *report.ClassifierConfig) BuilderOption {
	return func(b *Builder) { b.classifierConfig = config }
}

// WithDocTypeConfig overrides the document-name prefix tables.
func WithDocTypeConfig(config *report.DocTypeConfig) BuilderOption {
	return func(b *Builder) { b.docTypeConfig = config }
}

// WithHeaderConfig overrides the header keyword tables.
func WithHeaderConfig(config *report.HeaderConfig) BuilderOption {
	return func(b *Builder) { b.headerConfig = config }
}

// WithClock overrides the time source used when a batch date cannot be
// parsed. Tests use this to pin the fallback timestamp.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// Builder is the pass-1 state machine. It consumes classified rows in
// report order and assembles the tree, parking expense quantities for the
// allocator. Row order is significant; the builder never looks ahead.
type Builder struct {
	groups           *report.GroupSet
	classifierConfig *report.ClassifierConfig
	docTypeConfig    *report.DocTypeConfig
	headerConfig     *report.HeaderConfig
	now              func() time.Time

	classifier *report.Classifier
	docTypes   *report.DocTypeClassifier
	headers    *report.HeaderResolver

	// Parse context carried across rows.
	warehouse      string
	currentGroup   *Group
	currentProduct *Product
	currentBatch   *Batch
	cols           report.QuantityColumns
	foundHeader    bool

	tree     *Tree
	stats    *Stats
	issues   Issues
	deferred []deferredExpense
}

// NewBuilder creates a pass-1 builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		now:   time.Now,
		cols:  report.DefaultQuantityColumns(),
		tree:  &Tree{},
		stats: &Stats{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.docTypes = report.NewDocTypeClassifier(b.docTypeConfig)
	b.classifier = report.NewClassifier(b.classifierConfig, b.docTypes, b.groups)
	b.headers = report.NewHeaderResolver(b.headerConfig)
	return b
}

// ProcessRow classifies one row and applies its role transition.
func (b *Builder) ProcessRow(row report.Row) {
	switch b.classifier.Classify(row) {
	case report.RoleEmpty, report.RoleMeta:
		// no-op
	case report.RoleHeader:
		b.processHeader(row)
	case report.RoleWarehouse:
		b.processWarehouse(row)
	case report.RoleGroup:
		b.processGroup(row)
	case report.RoleProduct:
		b.processProduct(row)
	case report.RoleBatch:
		b.processBatch(row)
	case report.RoleDocument:
		b.processDocument(row)
	}
}

// Finish emits the trailing group and returns the pass-1 outcome. The
// returned issues and deferred operations feed the allocator.
func (b *Builder) Finish() (*Tree, *Stats, Issues, []deferredExpense) {
	if b.currentGroup != nil {
		b.tree.Groups = append(b.tree.Groups, b.currentGroup)
		b.currentGroup = nil
	}
	return b.tree, b.stats, b.issues, b.deferred
}

// processHeader resolves the quantity columns once; later header rows are
// repeated page headers and are ignored.
func (b *Builder) processHeader(row report.Row) {
	if b.foundHeader {
		return
	}
	b.foundHeader = true

	cols, ok := b.headers.Resolve(row)
	b.cols = cols
	if !ok {
		b.issues = append(b.issues, NewHeaderFallbackWarning(row.Line))
	}
}

// processWarehouse records the warehouse name, first occurrence wins. Later
// warehouse rows are counted but otherwise ignored.
func (b *Builder) processWarehouse(row report.Row) {
	b.stats.Warehouses++
	if b.tree.Warehouse == "" {
		b.tree.Warehouse = row.First()
	}
}

// processGroup closes the previous group and opens a new one. The batch
// context resets; the product context deliberately survives until the next
// product row.
func (b *Builder) processGroup(row report.Row) {
	if b.currentGroup != nil {
		b.tree.Groups = append(b.tree.Groups, b.currentGroup)
	}
	b.currentGroup = &Group{Name: row.First()}
	b.currentBatch = nil
	b.stats.Groups++
}

func (b *Builder) processProduct(row report.Row) {
	name := row.First()
	if b.classifier.IsInvalidProduct(name) {
		b.issues = append(b.issues, NewInvalidProductWarning(row.Line, name))
		return
	}
	if b.currentGroup == nil {
		// Keep the previous product's context so rows following a skipped
		// product still land somewhere sensible.
		b.issues = append(b.issues, NewOrphanRowWarning(row.Line, "product", name, "group"))
		return
	}

	product := &Product{
		Name:    name,
		Summary: b.quantities(row),
	}
	b.currentGroup.Products = append(b.currentGroup.Products, product)
	b.currentGroup.ProductCount++
	b.currentProduct = product
	b.currentBatch = nil
	b.stats.Products++
}

func (b *Builder) processBatch(row report.Row) {
	code := row.First()
	if b.currentProduct == nil {
		b.issues = append(b.issues, NewOrphanRowWarning(row.Line, "batch", code, "product"))
		return
	}

	arrival, ok := b.parseArrival(code)
	if !ok {
		b.issues = append(b.issues, NewDateParseWarning(row.Line, code))
	}

	qty := b.quantities(row)
	batch := &Batch{
		ArrivalDate: arrival.Format(dateLayout),
		ArrivalTime: arrival.Format(timeLayout),
		Code:        code,
		Qty:         qty,
		QtyRaw:      qty,
		Arrival:     arrival,
		Line:        row.Line,
	}
	batch.Validation = Validate(batch.Qty)
	if batch.Validation.Valid {
		b.stats.ValidBatches++
	} else {
		b.stats.InvalidBatches++
		b.issues = append(b.issues,
			NewBalanceError(row.Line, b.currentProduct.Name, code, batch.Validation))
	}

	b.currentProduct.Batches = append(b.currentProduct.Batches, batch)
	if b.currentGroup != nil {
		b.currentGroup.BatchCount++
	}
	b.currentBatch = batch
	b.stats.Batches++
}

func (b *Builder) processDocument(row report.Row) {
	name := row.First()
	if b.currentProduct == nil {
		b.issues = append(b.issues, NewOrphanRowWarning(row.Line, "document", name, "product"))
		return
	}

	docType := b.docTypes.Classify(name)
	in := row.Quantity(b.cols.In)
	out := row.Quantity(b.cols.Out)
	reshuffle := b.docTypes.IsReshuffle(name)

	switch docType {
	case report.DocReceipt:
		b.stats.ReceiptDocs++
	case report.DocExpense:
		b.stats.ExpenseDocs++
	}
	if reshuffle {
		b.stats.ReshuffleDocs++
	}
	if b.currentGroup != nil {
		b.currentGroup.DocumentCount++
	}

	// A reshuffle can carry both sides of a correction, so the receipt
	// adjustment and the deferred expense are not mutually exclusive.
	applied := false

	if in.IsPositive() && (reshuffle || b.docTypes.IsSurplusReceipt(name)) {
		b.applyAdjustmentReceipt(row.Line, name, in)
		applied = true
	}
	if docType == report.DocExpense && out.IsPositive() {
		b.deferred = append(b.deferred, deferredExpense{
			product:  b.currentProduct.Name,
			document: name,
			out:      out,
			line:     row.Line,
		})
		applied = true
	}
	if !applied && b.currentBatch != nil {
		b.currentBatch.Documents = append(b.currentBatch.Documents, Document{
			Type: docType,
			Name: name,
			In:   in,
			Out:  out,
		})
	}
}

// applyAdjustmentReceipt adds a received quantity to the most recently
// arrived batch of the current product, not the current batch. With no
// batches to adjust, the quantity is dropped with a warning; synthesizing a
// batch is out of scope.
func (b *Builder) applyAdjustmentReceipt(line int, document string, in decimal.Decimal) {
	target := latestBatch(b.currentProduct.Batches)
	if target == nil {
		b.issues = append(b.issues,
			NewReshuffleWithoutBatchWarning(line, b.currentProduct.Name, document, in))
		return
	}
	target.Qty.In = target.Qty.In.Add(in)
	target.Qty.End = target.Qty.End.Add(in)
}

// latestBatch returns the batch with the greatest arrival timestamp,
// preferring the later row on ties.
func latestBatch(batches []*Batch) *Batch {
	var latest *Batch
	for _, batch := range batches {
		if latest == nil || !batch.Arrival.Before(latest.Arrival) {
			latest = batch
		}
	}
	return latest
}

// quantities reads the four quantity columns off a row.
func (b *Builder) quantities(row report.Row) Quantities {
	return Quantities{
		Begin: row.Quantity(b.cols.Begin),
		In:    row.Quantity(b.cols.In),
		Out:   row.Quantity(b.cols.Out),
		End:   row.Quantity(b.cols.End),
	}
}

// parseArrival parses the leading date/time token of a batch row. It tries
// the full date-time layout, then date-only; with neither parsable it falls
// back to the current time so the batch still sorts deterministically within
// the run.
func (b *Builder) parseArrival(code string) (time.Time, bool) {
	fields := strings.Fields(code)
	if len(fields) >= 2 {
		if t, err := time.Parse(dateTimeLayout, fields[0]+" "+fields[1]); err == nil {
			return t, true
		}
	}
	if len(fields) >= 1 {
		if t, err := time.Parse(dateLayout, fields[0]); err == nil {
			return t, true
		}
	}
	return b.now(), false
}
