package cli

import (
	"fmt"
	"strings"

	"github.com/shieldai/inventory/ledger"
	"github.com/shieldai/inventory/output"
)

// IssueRenderer formats collected issues for the terminal: errors red,
// warnings yellow.
type IssueRenderer struct {
	styles *output.Styles
}

// NewIssueRenderer creates a renderer styling for the given writer.
func NewIssueRenderer(styles *output.Styles) *IssueRenderer {
	return &IssueRenderer{styles: styles}
}

// Render formats a single issue.
func (r *IssueRenderer) Render(issue ledger.Issue) string {
	symbol := r.styles.Warning(warnSymbol)
	if issue.Severity() == ledger.SeverityError {
		symbol = r.styles.Error(errorSymbol)
	}
	return fmt.Sprintf("%s %s", symbol, issue.Error())
}

// RenderAll formats the issue list, one per line, errors first.
func (r *IssueRenderer) RenderAll(issues ledger.Issues) string {
	if len(issues) == 0 {
		return ""
	}

	var lines []string
	for _, issue := range issues.Errors() {
		lines = append(lines, r.Render(issue))
	}
	for _, issue := range issues.Warnings() {
		lines = append(lines, r.Render(issue))
	}
	return strings.Join(lines, "\n")
}
