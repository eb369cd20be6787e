// Package export writes a reconstructed ledger to downstream formats. Every
// exporter consumes only the stable output contract of the ledger package:
// the tree, the run counters and the collected issues.
package export

import (
	"encoding/json"
	"io"

	"github.com/shieldai/inventory/ledger"
)

// jsonIssue is the wire form of one collected issue.
type jsonIssue struct {
	Severity string `json:"severity"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

type jsonDocument struct {
	Tree   *ledger.Tree  `json:"tree"`
	Stats  *ledger.Stats `json:"stats"`
	Issues []jsonIssue   `json:"issues"`
}

// JSON writes the full result as indented JSON.
func JSON(w io.Writer, result *ledger.Result) error {
	doc := jsonDocument{
		Tree:   result.Tree,
		Stats:  result.Stats,
		Issues: make([]jsonIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		doc.Issues = append(doc.Issues, jsonIssue{
			Severity: issue.Severity().String(),
			Line:     issue.Line(),
			Message:  issue.Error(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}
