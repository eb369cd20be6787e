package report

import (
	"regexp"
	"strings"
)

// RowRole is the structural role of one report row.
type RowRole int

const (
	RoleEmpty RowRole = iota
	RoleMeta
	RoleHeader
	RoleWarehouse
	RoleGroup
	RoleProduct
	RoleBatch
	RoleDocument
)

// String implements fmt.Stringer.
func (r RowRole) String() string {
	switch r {
	case RoleEmpty:
		return "empty"
	case RoleMeta:
		return "meta"
	case RoleHeader:
		return "header"
	case RoleWarehouse:
		return "warehouse"
	case RoleGroup:
		return "group"
	case RoleProduct:
		return "product"
	case RoleBatch:
		return "batch"
	case RoleDocument:
		return "document"
	default:
		return "unknown"
	}
}

// batchDatePattern matches the strict DD.MM.YYYY prefix that opens every
// batch row.
var batchDatePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}`)

// ClassifierConfig holds the literal tables the role heuristics match
// against. All entries are compared after normalization.
type ClassifierConfig struct {
	// MetaMarkers are substrings that identify title and filter-parameter
	// rows at the top of the report.
	MetaMarkers []string

	// HeaderLabels are the exact first-cell values of the column header row.
	HeaderLabels []string

	// InvalidProductMarkers flag product rows that 1C emits for deleted or
	// broken catalogue references.
	InvalidProductMarkers []string
}

// DefaultClassifierConfig returns the tables for standard 1C batch reports.
func DefaultClassifierConfig() *ClassifierConfig {
	return &ClassifierConfig{
		MetaMarkers: []string{
			"ведомость по партиям",
			"отбор:",
			"параметры:",
			"сортировка:",
		},
		HeaderLabels: []string{
			"номенклатура",
			"партия",
			"склад",
		},
		InvalidProductMarkers: []string{
			"объект не найден",
		},
	}
}

// Classifier assigns a RowRole to each row by running an ordered list of
// rules over the row's first non-empty cell. The first matching rule wins,
// so rule order is part of the contract; it is kept as a plain slice to make
// the order inspectable in tests.
type Classifier struct {
	config *ClassifierConfig
	docs   *DocTypeClassifier
	groups *GroupSet
	rules  []classifyRule
}

type classifyRule struct {
	role  RowRole
	match func(c *Classifier, first string) bool
}

// NewClassifier creates a classifier. A nil config selects the defaults;
// groups may be nil for an empty known-groups set.
func NewClassifier(config *ClassifierConfig, docs *DocTypeClassifier, groups *GroupSet) *Classifier {
	if config == nil {
		config = DefaultClassifierConfig()
	}
	if docs == nil {
		docs = NewDocTypeClassifier(nil)
	}
	c := &Classifier{config: config, docs: docs, groups: groups}
	c.rules = []classifyRule{
		{RoleMeta, (*Classifier).matchMeta},
		{RoleHeader, (*Classifier).matchHeader},
		{RoleDocument, (*Classifier).matchDocument},
		{RoleBatch, (*Classifier).matchBatch},
		{RoleGroup, (*Classifier).matchGroup},
		{RoleProduct, (*Classifier).matchInvalidProduct},
		{RoleWarehouse, (*Classifier).matchWarehouse},
	}
	return c
}

// Classify returns the role of a row. Pure: the same row and the same
// known-groups set always yield the same role.
func (c *Classifier) Classify(row Row) RowRole {
	first := row.First()
	if first == "" {
		return RoleEmpty
	}
	for _, rule := range c.rules {
		if rule.match(c, first) {
			return rule.role
		}
	}
	return RoleProduct
}

// IsInvalidProduct reports whether a product row's text marks a broken
// catalogue reference rather than a real product.
func (c *Classifier) IsInvalidProduct(name string) bool {
	n := Normalize(name)
	for _, marker := range c.config.InvalidProductMarkers {
		if strings.Contains(n, marker) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchMeta(first string) bool {
	n := Normalize(first)
	for _, marker := range c.config.MetaMarkers {
		if strings.Contains(n, marker) {
			return true
		}
	}
	return false
}

func (c *Classifier) matchHeader(first string) bool {
	n := Normalize(first)
	for _, label := range c.config.HeaderLabels {
		if n == label {
			return true
		}
	}
	return false
}

func (c *Classifier) matchDocument(first string) bool {
	return c.docs.MatchesAny(first)
}

func (c *Classifier) matchBatch(first string) bool {
	return batchDatePattern.MatchString(first)
}

func (c *Classifier) matchGroup(first string) bool {
	return c.groups.Contains(first)
}

// matchInvalidProduct runs before matchWarehouse: broken catalogue
// references carry a parenthesized object id ("Объект не найден (154:...)")
// and would otherwise be mistaken for a warehouse.
func (c *Classifier) matchInvalidProduct(first string) bool {
	return c.IsInvalidProduct(first)
}

// matchWarehouse runs after matchGroup, so a parenthesized known group has
// already been claimed by the group rule.
func (c *Classifier) matchWarehouse(first string) bool {
	return strings.Contains(first, "(") && strings.Contains(first, ")")
}
