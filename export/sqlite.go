package export

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shieldai/inventory/ledger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS parse_runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	warehouse    TEXT NOT NULL,
	exported_at  TEXT NOT NULL,
	warehouses   INTEGER NOT NULL,
	groups_total INTEGER NOT NULL,
	products     INTEGER NOT NULL,
	batches      INTEGER NOT NULL,
	issues       INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS groups (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id INTEGER NOT NULL REFERENCES parse_runs(id),
	name   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS products (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	group_id    INTEGER NOT NULL REFERENCES groups(id),
	name        TEXT NOT NULL,
	begin_qty   TEXT NOT NULL,
	in_qty      TEXT NOT NULL,
	out_qty     TEXT NOT NULL,
	end_qty     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS batches (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id   INTEGER NOT NULL REFERENCES products(id),
	batch_code   TEXT NOT NULL,
	arrival_date TEXT NOT NULL,
	arrival_time TEXT NOT NULL,
	begin_qty    TEXT NOT NULL,
	in_qty       TEXT NOT NULL,
	out_qty      TEXT NOT NULL,
	end_qty      TEXT NOT NULL,
	valid        INTEGER NOT NULL,
	diff         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS documents (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id INTEGER NOT NULL REFERENCES batches(id),
	doc_type TEXT NOT NULL,
	name     TEXT NOT NULL,
	in_qty   TEXT NOT NULL,
	out_qty  TEXT NOT NULL
);
`

// SQLite writes the result into a SQLite database file, creating the schema
// when missing. Quantities are stored as text to keep decimal precision.
// Each call appends one parse run; earlier runs are preserved.
func SQLite(path string, result *ledger.Result) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRun(tx, result); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRun(tx *sql.Tx, result *ledger.Result) error {
	stats := result.Stats
	run, err := tx.Exec(
		`INSERT INTO parse_runs (warehouse, exported_at, warehouses, groups_total, products, batches, issues)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Tree.Warehouse, time.Now().UTC().Format(time.RFC3339),
		stats.Warehouses, stats.Groups, stats.Products, stats.Batches, len(result.Issues))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := run.LastInsertId()
	if err != nil {
		return err
	}

	for _, group := range result.Tree.Groups {
		res, err := tx.Exec(`INSERT INTO groups (run_id, name) VALUES (?, ?)`, runID, group.Name)
		if err != nil {
			return fmt.Errorf("failed to insert group %q: %w", group.Name, err)
		}
		groupID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, product := range group.Products {
			if err := insertProduct(tx, groupID, product); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertProduct(tx *sql.Tx, groupID int64, product *ledger.Product) error {
	res, err := tx.Exec(
		`INSERT INTO products (group_id, name, begin_qty, in_qty, out_qty, end_qty)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		groupID, product.Name,
		product.Summary.Begin.String(), product.Summary.In.String(),
		product.Summary.Out.String(), product.Summary.End.String())
	if err != nil {
		return fmt.Errorf("failed to insert product %q: %w", product.Name, err)
	}
	productID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, batch := range product.Batches {
		res, err := tx.Exec(
			`INSERT INTO batches (product_id, batch_code, arrival_date, arrival_time,
			                      begin_qty, in_qty, out_qty, end_qty, valid, diff)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			productID, batch.Code, batch.ArrivalDate, batch.ArrivalTime,
			batch.Qty.Begin.String(), batch.Qty.In.String(),
			batch.Qty.Out.String(), batch.Qty.End.String(),
			batch.Validation.Valid, batch.Validation.Diff.String())
		if err != nil {
			return fmt.Errorf("failed to insert batch %q: %w", batch.Code, err)
		}
		batchID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		for _, doc := range batch.Documents {
			if _, err := tx.Exec(
				`INSERT INTO documents (batch_id, doc_type, name, in_qty, out_qty)
				 VALUES (?, ?, ?, ?, ?)`,
				batchID, doc.Type.String(), doc.Name, doc.In.String(), doc.Out.String()); err != nil {
				return fmt.Errorf("failed to insert document %q: %w", doc.Name, err)
			}
		}
	}
	return nil
}
