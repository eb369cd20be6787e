// Package loader reads 1C batch-movement workbooks into raw report rows.
// It also loads the optional known-groups reference file the classifier
// uses to tell product groups apart from warehouses and products.
//
// Only resource-open failures are errors here; malformed cell content is
// preserved as-is and left for the ledger passes to diagnose.
//
// Example usage:
//
//	l := loader.New(loader.WithSheet("Лист1"))
//	rows, err := l.Load(ctx, "report.xlsx")
package loader

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shieldai/inventory/report"
	"github.com/shieldai/inventory/telemetry"
)

// Loader reads workbook rows. Configure it with functional options passed
// to New.
type Loader struct {
	// Sheet is the worksheet to read. Empty selects the workbook's active
	// sheet.
	Sheet string
}

// Option configures how workbooks are loaded.
type Option func(*Loader)

// WithSheet selects a worksheet by name instead of the active sheet.
func WithSheet(name string) Option {
	return func(l *Loader) {
		l.Sheet = name
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads all rows of a workbook file.
func (l *Loader) Load(ctx context.Context, filename string) ([]report.Row, error) {
	timer := telemetry.FromContext(ctx).Start("Load workbook")
	defer timer.End()

	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	return l.rows(f)
}

// LoadBytes reads all rows of a workbook held in memory.
func (l *Loader) LoadBytes(ctx context.Context, data []byte) ([]report.Row, error) {
	timer := telemetry.FromContext(ctx).Start("Load workbook")
	defer timer.End()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return l.rows(f)
}

func (l *Loader) rows(f *excelize.File) ([]report.Row, error) {
	sheet := l.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	rows := make([]report.Row, 0, len(cells))
	for i, row := range cells {
		rows = append(rows, report.Row{Cells: row, Line: i + 1})
	}
	return rows, nil
}

// LoadGroups reads a newline-delimited UTF-8 file of known group names, one
// per line, ignoring blank lines. An absent file is not an error: the
// classifier then runs with an empty set.
func LoadGroups(filename string) (*report.GroupSet, error) {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return report.NewGroupSet(), nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return report.NewGroupSet(names...), nil
}
