package ledger

// Stats holds the run counters. Counters only ever increase during a run
// and are read-only afterwards.
type Stats struct {
	Warehouses     int `json:"warehouses"`
	Groups         int `json:"groups"`
	Products       int `json:"products"`
	Batches        int `json:"batches"`
	ReceiptDocs    int `json:"receipt_docs"`
	ExpenseDocs    int `json:"expense_docs"`
	ReshuffleDocs  int `json:"reshuffle_docs"`
	ValidBatches   int `json:"valid_batches"`
	InvalidBatches int `json:"invalid_batches"`
}
