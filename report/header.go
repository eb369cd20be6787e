package report

import "strings"

// QuantityColumns holds the resolved column index of each quantity field.
type QuantityColumns struct {
	Begin int
	In    int
	Out   int
	End   int
}

// DefaultQuantityColumns are the fixed offsets used when the header row
// cannot be resolved. Standard 1C batch exports place the four quantity
// columns at these positions.
func DefaultQuantityColumns() QuantityColumns {
	return QuantityColumns{Begin: 7, In: 8, Out: 9, End: 10}
}

// HeaderConfig holds the keyword substrings that identify each quantity
// column in the header row.
type HeaderConfig struct {
	BeginKeywords []string
	InKeywords    []string
	OutKeywords   []string
	EndKeywords   []string
}

// DefaultHeaderConfig returns the keywords for standard 1C batch reports.
func DefaultHeaderConfig() *HeaderConfig {
	return &HeaderConfig{
		BeginKeywords: []string{"начальный остаток", "нач. остаток"},
		InKeywords:    []string{"приход"},
		OutKeywords:   []string{"расход"},
		EndKeywords:   []string{"конечный остаток", "кон. остаток"},
	}
}

// HeaderResolver locates the quantity columns by scanning header-row cells
// for keyword substrings.
type HeaderResolver struct {
	config *HeaderConfig
}

// NewHeaderResolver creates a resolver. A nil config selects the defaults.
func NewHeaderResolver(config *HeaderConfig) *HeaderResolver {
	if config == nil {
		config = DefaultHeaderConfig()
	}
	return &HeaderResolver{config: config}
}

// Resolve scans the header row for all four quantity columns. For each
// field the first matching cell wins. ok is false when any field stayed
// unresolved; the caller then falls back to DefaultQuantityColumns and
// reports the fallback once.
func (h *HeaderResolver) Resolve(row Row) (cols QuantityColumns, ok bool) {
	begin, okBegin := h.find(row, h.config.BeginKeywords)
	in, okIn := h.find(row, h.config.InKeywords)
	out, okOut := h.find(row, h.config.OutKeywords)
	end, okEnd := h.find(row, h.config.EndKeywords)

	if !okBegin || !okIn || !okOut || !okEnd {
		return DefaultQuantityColumns(), false
	}
	return QuantityColumns{Begin: begin, In: in, Out: out, End: end}, true
}

func (h *HeaderResolver) find(row Row, keywords []string) (int, bool) {
	for i := range row.Cells {
		cell := Normalize(row.Cell(i))
		if cell == "" {
			continue
		}
		for _, keyword := range keywords {
			if strings.Contains(cell, keyword) {
				return i, true
			}
		}
	}
	return 0, false
}
