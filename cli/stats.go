package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type StatsCmd struct {
	File string `help:"Batch report filename." arg:"" type:"existingfile"`
}

func (cmd *StatsCmd) Run(ctx *kong.Context, globals *Globals) error {
	result, reportTelemetry, err := parseReport(ctx, globals, cmd.File)
	if err != nil {
		return err
	}
	defer reportTelemetry()

	stats := result.Stats
	rows := []struct {
		label string
		value int
	}{
		{"warehouses", stats.Warehouses},
		{"groups", stats.Groups},
		{"products", stats.Products},
		{"batches", stats.Batches},
		{"valid batches", stats.ValidBatches},
		{"invalid batches", stats.InvalidBatches},
		{"receipt documents", stats.ReceiptDocs},
		{"expense documents", stats.ExpenseDocs},
		{"reshuffle documents", stats.ReshuffleDocs},
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(ctx.Stdout, "%-20s %d\n", row.label, row.value)
	}
	return nil
}
