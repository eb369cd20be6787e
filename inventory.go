// Package inventory reconstructs per-batch stock ledgers from 1C
// batch-movement reports ("Ведомость по партиям товаров на складах").
//
// A report is a loosely-typed spreadsheet: a title block, a header row, then
// an indented hierarchy of warehouse, group, product, batch and document
// rows. The engine classifies each row, rebuilds the hierarchy, validates
// the accounting identity end = begin + in - out on every batch, and
// consumes expense documents against batches oldest-first.
//
// Example usage:
//
//	result, err := inventory.ParseFile(ctx, "report.xlsx",
//		inventory.WithGroupsFile("groups.txt"))
//	if err != nil {
//		return err
//	}
//	for _, issue := range result.Issues {
//		log.Println(issue)
//	}
package inventory

import (
	"context"

	"github.com/shieldai/inventory/ledger"
	"github.com/shieldai/inventory/loader"
	"github.com/shieldai/inventory/report"
)

// Option configures a parse.
type Option func(*config)

type config struct {
	sheet      string
	groups     *report.GroupSet
	groupsFile string
	builder    []ledger.BuilderOption
}

// WithSheet selects a worksheet by name instead of the active sheet.
func WithSheet(name string) Option {
	return func(c *config) { c.sheet = name }
}

// WithGroups supplies the known-groups set directly.
func WithGroups(groups *report.GroupSet) Option {
	return func(c *config) { c.groups = groups }
}

// WithGroupsFile loads the known-groups set from a newline-delimited file.
// An absent file yields an empty set.
func WithGroupsFile(path string) Option {
	return func(c *config) { c.groupsFile = path }
}

// WithBuilderOptions forwards options to the ledger builder, for callers
// that need custom keyword tables.
func WithBuilderOptions(opts ...ledger.BuilderOption) Option {
	return func(c *config) { c.builder = append(c.builder, opts...) }
}

// ParseFile loads a workbook file and reconstructs its ledger. Only failing
// to open or read the workbook returns an error; malformed content becomes
// collected issues on the result.
func ParseFile(ctx context.Context, filename string, opts ...Option) (*ledger.Result, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	rows, err := loader.New(loaderOptions(c)...).Load(ctx, filename)
	if err != nil {
		return nil, err
	}
	return reconstruct(ctx, c, rows), nil
}

// ParseBytes reconstructs the ledger of a workbook held in memory.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (*ledger.Result, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	rows, err := loader.New(loaderOptions(c)...).LoadBytes(ctx, data)
	if err != nil {
		return nil, err
	}
	return reconstruct(ctx, c, rows), nil
}

func newConfig(opts []Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.groups == nil && c.groupsFile != "" {
		groups, err := loader.LoadGroups(c.groupsFile)
		if err != nil {
			return nil, err
		}
		c.groups = groups
	}
	return c, nil
}

func loaderOptions(c *config) []loader.Option {
	var opts []loader.Option
	if c.sheet != "" {
		opts = append(opts, loader.WithSheet(c.sheet))
	}
	return opts
}

func reconstruct(ctx context.Context, c *config, rows []report.Row) *ledger.Result {
	opts := append([]ledger.BuilderOption{ledger.WithGroups(c.groups)}, c.builder...)
	return ledger.Reconstruct(ctx, rows, opts...)
}
