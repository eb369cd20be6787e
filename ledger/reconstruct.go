package ledger

import (
	"context"

	"github.com/shieldai/inventory/report"
	"github.com/shieldai/inventory/telemetry"
)

// Reconstruct runs both passes over the rows of one report and returns the
// combined result. The context carries telemetry only; a single report is
// processed synchronously without cancellation checks.
func Reconstruct(ctx context.Context, rows []report.Row, opts ...BuilderOption) *Result {
	collector := telemetry.FromContext(ctx)

	timer := collector.Start("Build tree")
	builder := NewBuilder(opts...)
	for _, row := range rows {
		builder.ProcessRow(row)
	}
	tree, stats, issues, deferred := builder.Finish()
	timer.End()

	timer = collector.Start("Allocate expenses")
	issues = append(issues, NewAllocator(tree).Allocate(deferred)...)
	timer.End()

	return &Result{Tree: tree, Stats: stats, Issues: issues}
}
