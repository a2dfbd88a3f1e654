package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL. Positions record directory and phone order.
const (
	createContacts = `CREATE TABLE contacts (
    contact_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    birthday TEXT,
    position INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createPhones = `CREATE TABLE phones (
    phone_id TEXT PRIMARY KEY,
    contact_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    value TEXT NOT NULL,
    FOREIGN KEY (contact_id) REFERENCES contacts(contact_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxContactsPosition = `CREATE INDEX idx_contacts_position ON contacts(position);`
	idxPhonesContact    = `CREATE INDEX idx_phones_contact ON phones(contact_id, position);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createContacts,
	createPhones,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxContactsPosition,
	idxPhonesContact,
}

// createSchema executes every table and index statement.
func createSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
