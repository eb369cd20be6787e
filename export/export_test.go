package export

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/shieldai/inventory/ledger"
	"github.com/shieldai/inventory/report"
)

func fixture() *ledger.Result {
	qty := ledger.Quantities{
		Begin: decimal.Zero,
		In:    decimal.RequireFromString("100"),
		Out:   decimal.RequireFromString("30"),
		End:   decimal.RequireFromString("70"),
	}
	batch := &ledger.Batch{
		ArrivalDate: "01.01.2025",
		ArrivalTime: "10:30:00",
		Code:        "01.01.2025 10:30:00",
		Qty:         qty,
		QtyRaw:      qty,
		Arrival:     time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC),
		Documents: []ledger.Document{{
			Type: report.DocExpense,
			Name: "Продажи ККМ 00007",
			In:   decimal.Zero,
			Out:  decimal.RequireFromString("30"),
		}},
		Validation: ledger.Validate(qty),
	}
	product := &ledger.Product{
		Name:    "Пиво А",
		Batches: []*ledger.Batch{batch},
		Summary: qty,
	}
	return &ledger.Result{
		Tree: &ledger.Tree{
			Warehouse: "Склад №1 (осн.)",
			Groups:    []*ledger.Group{{Name: "Напитки", Products: []*ledger.Product{product}}},
		},
		Stats: &ledger.Stats{
			Warehouses: 1, Groups: 1, Products: 1, Batches: 1,
			ExpenseDocs: 1, ValidBatches: 1,
		},
		Issues: ledger.Issues{
			ledger.NewOrphanRowWarning(12, "document", "Продажи 00001", "product"),
		},
	}
}

func TestJSONContract(t *testing.T) {
	var buf strings.Builder
	assert.NoError(t, JSON(&buf, fixture()))

	var doc map[string]any
	assert.NoError(t, json.Unmarshal([]byte(buf.String()), &doc))

	tree := doc["tree"].(map[string]any)
	assert.Equal(t, "Склад №1 (осн.)", tree["warehouse"].(string))

	sections := tree["sections"].([]any)
	assert.Equal(t, 1, len(sections))
	group := sections[0].(map[string]any)
	assert.Equal(t, "Напитки", group["name"].(string))

	product := group["products"].([]any)[0].(map[string]any)
	assert.Equal(t, "Пиво А", product["name"].(string))
	_, hasSummary := product["quantity_summary"]
	assert.True(t, hasSummary)

	batch := product["batches"].([]any)[0].(map[string]any)
	for _, key := range []string{
		"arrival_date", "arrival_time", "batch_code", "qty", "qty_raw",
		"documents", "validation",
	} {
		_, ok := batch[key]
		assert.True(t, ok, "batch field %q missing", key)
	}

	qty := batch["qty"].(map[string]any)
	for _, key := range []string{"begin", "in", "out", "end"} {
		_, ok := qty[key]
		assert.True(t, ok, "qty field %q missing", key)
	}

	document := batch["documents"].([]any)[0].(map[string]any)
	assert.Equal(t, "expense", document["doc_type"].(string))

	stats := doc["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["valid_batches"].(float64))

	issues := doc["issues"].([]any)
	assert.Equal(t, 1, len(issues))
	issue := issues[0].(map[string]any)
	assert.Equal(t, "warning", issue["severity"].(string))
	assert.Equal(t, float64(12), issue["line"].(float64))
}

func TestMarkdown(t *testing.T) {
	var buf strings.Builder
	assert.NoError(t, Markdown(&buf, fixture()))
	out := buf.String()

	assert.Contains(t, out, "# Склад №1 (осн.)")
	assert.Contains(t, out, "## Напитки")
	assert.Contains(t, out, "### Пиво А")
	assert.Contains(t, out, "| Партия")
	assert.Contains(t, out, "01.01.2025 10:30:00")
	assert.Contains(t, out, "Итого")
	assert.Contains(t, out, "## Статистика")

	// Columns are padded to equal display width.
	var table []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") {
			table = append(table, line)
		}
	}
	assert.True(t, len(table) >= 3)
	for _, line := range table[1:] {
		assert.Equal(t, runewidth.StringWidth(table[0]), runewidth.StringWidth(line))
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	assert.NoError(t, SQLite(path, fixture()))

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	defer db.Close()

	count := func(query string) int {
		var n int
		assert.NoError(t, db.QueryRow(query).Scan(&n))
		return n
	}

	assert.Equal(t, 1, count("SELECT COUNT(*) FROM parse_runs"))
	assert.Equal(t, 1, count("SELECT COUNT(*) FROM groups"))
	assert.Equal(t, 1, count("SELECT COUNT(*) FROM products"))
	assert.Equal(t, 1, count("SELECT COUNT(*) FROM batches"))
	assert.Equal(t, 1, count("SELECT COUNT(*) FROM documents"))

	var endQty string
	var valid bool
	assert.NoError(t, db.QueryRow("SELECT end_qty, valid FROM batches").Scan(&endQty, &valid))
	assert.Equal(t, "70", endQty)
	assert.True(t, valid)

	// A second export appends another run without touching the first.
	assert.NoError(t, SQLite(path, fixture()))
	assert.Equal(t, 2, count("SELECT COUNT(*) FROM parse_runs"))
	assert.Equal(t, 2, count("SELECT COUNT(*) FROM groups"))
}
