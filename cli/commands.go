package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/shieldai/inventory"
	"github.com/shieldai/inventory/ledger"
	"github.com/shieldai/inventory/output"
	"github.com/shieldai/inventory/telemetry"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Groups    string `help:"Known product-group names, one per line." type:"path"`
	Sheet     string `help:"Worksheet to read (defaults to the active sheet)."`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Audit  AuditCmd  `cmd:"" help:"Parse a batch report, validate balances and report issues."`
	Export ExportCmd `cmd:"" help:"Export a parsed batch report to json, markdown or sqlite."`
	Stats  StatsCmd  `cmd:"" help:"Print run counters for a batch report."`
	Doctor DoctorCmd `cmd:"" help:"Dump the reconstructed tree for debugging."`
}

// parseReport runs the engine over one workbook with the global flags
// applied and the telemetry report deferred to command exit.
func parseReport(ctx *kong.Context, globals *Globals, filename string) (*ledger.Result, func(), error) {
	runCtx := context.Background()

	var collector telemetry.Collector
	var rootTimer telemetry.Timer
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				rootTimer.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
		rootTimer = collector.Start(fmt.Sprintf("parse %s", filepath.Base(filename)))
	}

	opts := []inventory.Option{}
	if globals.Sheet != "" {
		opts = append(opts, inventory.WithSheet(globals.Sheet))
	}
	if globals.Groups != "" {
		opts = append(opts, inventory.WithGroupsFile(globals.Groups))
	}

	result, err := inventory.ParseFile(runCtx, filename, opts...)
	if err != nil {
		reportTelemetry()
		return nil, func() {}, err
	}
	return result, reportTelemetry, nil
}
