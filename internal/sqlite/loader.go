package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTable ties a JSONL file to its SQLite table and column list.
type jsonlTable struct {
	file    string
	table   string
	columns []string
	orderBy string
}

// jsonlTables lists the persisted tables. Contacts load before phones because
// phones reference them.
var jsonlTables = []jsonlTable{
	{contactsJSONL, "contacts", []string{"contact_id", "name", "birthday", "position", "created_at", "updated_at"}, "position"},
	{phonesJSONL, "phones", []string{"phone_id", "contact_id", "position", "value"}, "contact_id, position"},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts its records into
// the matching SQLite table. Loading is transactional: either every file loads
// or the database stays empty. Malformed lines and records that violate a
// constraint are skipped; unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, jt := range jsonlTables {
		records, err := readJSONL(filepath.Join(dataDir, jt.file))
		if err != nil {
			return fmt.Errorf("reading %s: %w", jt.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, jt.table, jt.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", jt.file, jt.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only the
// listed columns are extracted; missing columns are inserted as NULL.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = obj[col]
		}

		if _, err := stmt.Exec(args...); err != nil {
			// Skip duplicate names and other rows that violate a constraint.
			continue
		}
	}
	return nil
}
