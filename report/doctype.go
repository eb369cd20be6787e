package report

import "strings"

// DocType is the ledger effect of a movement document.
type DocType int

const (
	// DocUnknown marks documents whose name matches no configured prefix.
	// They are kept for provenance but never move quantities.
	DocUnknown DocType = iota

	// DocReceipt increases stock.
	DocReceipt

	// DocExpense decreases stock.
	DocExpense
)

// String implements fmt.Stringer.
func (t DocType) String() string {
	switch t {
	case DocReceipt:
		return "receipt"
	case DocExpense:
		return "expense"
	default:
		return "unknown"
	}
}

// MarshalText makes DocType serialize as its name in JSON output.
func (t DocType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DocTypeConfig holds the document-name prefix tables. Prefixes are compared
// case-insensitively against the start of the display name, in order:
// receipts first, then expenses.
type DocTypeConfig struct {
	// ReceiptPrefixes are the 1C document kinds that bring stock in.
	ReceiptPrefixes []string

	// ExpensePrefixes are the 1C document kinds that take stock out.
	ExpensePrefixes []string

	// ReshufflePrefix names the dual-effect correction document: an expense
	// against one batch and a receipt into another. It must also appear in
	// ExpensePrefixes so plain classification treats it as an expense.
	ReshufflePrefix string

	// SurplusPrefix names the receipt document that adjusts the most recent
	// batch in place instead of opening a new one.
	SurplusPrefix string
}

// DefaultDocTypeConfig returns the prefix tables for standard 1C batch
// reports.
func DefaultDocTypeConfig() *DocTypeConfig {
	return &DocTypeConfig{
		ReceiptPrefixes: []string{
			"поступление",
			"приходная накладная",
			"оприходование",
			"ввод остатков",
			"возврат от покупателя",
		},
		ExpensePrefixes: []string{
			"продажи",
			"реализация",
			"отчет о розничных продажах",
			"списание",
			"расходная накладная",
			"перемещение",
			"пересортица",
		},
		ReshufflePrefix: "пересортица",
		SurplusPrefix:   "оприходование",
	}
}

// DocTypeClassifier maps a document display name to its ledger effect.
type DocTypeClassifier struct {
	config *DocTypeConfig
}

// NewDocTypeClassifier creates a classifier. A nil config selects the
// defaults.
func NewDocTypeClassifier(config *DocTypeConfig) *DocTypeClassifier {
	if config == nil {
		config = DefaultDocTypeConfig()
	}
	return &DocTypeClassifier{config: config}
}

// Classify returns the document type for a display name. Receipt prefixes
// are tried before expense prefixes; the first match wins.
func (c *DocTypeClassifier) Classify(name string) DocType {
	n := Normalize(name)
	for _, prefix := range c.config.ReceiptPrefixes {
		if strings.HasPrefix(n, prefix) {
			return DocReceipt
		}
	}
	for _, prefix := range c.config.ExpensePrefixes {
		if strings.HasPrefix(n, prefix) {
			return DocExpense
		}
	}
	return DocUnknown
}

// IsReshuffle reports whether the name denotes the dual-effect reshuffle
// correction document.
func (c *DocTypeClassifier) IsReshuffle(name string) bool {
	return c.config.ReshufflePrefix != "" &&
		strings.HasPrefix(Normalize(name), c.config.ReshufflePrefix)
}

// IsSurplusReceipt reports whether the name denotes a surplus-receipt
// adjustment.
func (c *DocTypeClassifier) IsSurplusReceipt(name string) bool {
	return c.config.SurplusPrefix != "" &&
		strings.HasPrefix(Normalize(name), c.config.SurplusPrefix)
}

// MatchesAny reports whether the name starts with any configured prefix.
// Row classification uses this to tell document rows apart from product
// rows before any hierarchy context exists.
func (c *DocTypeClassifier) MatchesAny(name string) bool {
	return c.Classify(name) != DocUnknown
}
