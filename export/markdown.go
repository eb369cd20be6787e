package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/shieldai/inventory/ledger"
)

// Markdown writes a human-readable report: one heading per group, one batch
// table per product, and a closing stats section. Table columns are padded
// by display width so Cyrillic names line up in a terminal.
func Markdown(w io.Writer, result *ledger.Result) error {
	tree := result.Tree

	if _, err := fmt.Fprintf(w, "# %s\n", orDefault(tree.Warehouse, "Склад")); err != nil {
		return err
	}

	for _, group := range tree.Groups {
		fmt.Fprintf(w, "\n## %s\n", group.Name)
		for _, product := range group.Products {
			writeProduct(w, product)
		}
	}

	writeStats(w, result.Stats)
	return nil
}

func writeProduct(w io.Writer, product *ledger.Product) {
	fmt.Fprintf(w, "\n### %s\n\n", product.Name)

	header := []string{"Партия", "Дата", "Нач.", "Приход", "Расход", "Кон.", "Баланс"}
	rows := [][]string{header}
	total := ledger.Quantities{}
	for _, batch := range product.Batches {
		status := "ok"
		if !batch.Validation.Valid {
			status = "ошибка"
		}
		rows = append(rows, []string{
			batch.Code,
			batch.ArrivalDate + " " + batch.ArrivalTime,
			batch.Qty.Begin.String(),
			batch.Qty.In.String(),
			batch.Qty.Out.String(),
			batch.Qty.End.String(),
			status,
		})
		total.Begin = total.Begin.Add(batch.Qty.Begin)
		total.In = total.In.Add(batch.Qty.In)
		total.Out = total.Out.Add(batch.Qty.Out)
		total.End = total.End.Add(batch.Qty.End)
	}
	rows = append(rows, []string{
		"Итого", "",
		total.Begin.String(), total.In.String(), total.Out.String(), total.End.String(),
		"",
	})

	writeTable(w, rows)

	fmt.Fprintf(w, "\nСводка: начало %s, приход %s, расход %s, конец %s\n",
		product.Summary.Begin, product.Summary.In, product.Summary.Out, product.Summary.End)
}

// writeTable renders a Markdown table with display-width alignment. The
// first row is the header.
func writeTable(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	pad := func(cell string, width int) string {
		return cell + strings.Repeat(" ", width-runewidth.StringWidth(cell))
	}

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = pad(cell, widths[j])
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))

		if i == 0 {
			seps := make([]string, len(row))
			for j := range row {
				seps[j] = strings.Repeat("-", widths[j])
			}
			fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
		}
	}
}

func writeStats(w io.Writer, stats *ledger.Stats) {
	fmt.Fprintf(w, "\n## Статистика\n\n")
	fmt.Fprintf(w, "- Складов: %d\n", stats.Warehouses)
	fmt.Fprintf(w, "- Групп: %d\n", stats.Groups)
	fmt.Fprintf(w, "- Товаров: %d\n", stats.Products)
	fmt.Fprintf(w, "- Партий: %d (корректных %d, с ошибками %d)\n",
		stats.Batches, stats.ValidBatches, stats.InvalidBatches)
	fmt.Fprintf(w, "- Документов: приход %d, расход %d, пересортица %d\n",
		stats.ReceiptDocs, stats.ExpenseDocs, stats.ReshuffleDocs)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
