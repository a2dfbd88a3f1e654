package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Load rebuilds the Directory from the contacts and phones tables, in stored
// order. Every field passes through the validating constructors; rows that
// fail validation are skipped and logged.
func (b *Backend) Load() (*types.Directory, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	phones, err := b.loadPhones()
	if err != nil {
		return nil, err
	}

	rows, err := b.db.Query("SELECT contact_id, name, birthday FROM contacts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("fetching contacts: %w", err)
	}
	defer rows.Close()

	dir := types.NewDirectory()
	for rows.Next() {
		var id, name string
		var birthday sql.NullString
		if err := rows.Scan(&id, &name, &birthday); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		r := types.NewRecord(name)
		if birthday.Valid && birthday.String != "" {
			if err := r.AddBirthday(birthday.String); err != nil {
				b.logger.Warn("skipping stored birthday",
					zap.String("contact", name),
					zap.String("birthday", birthday.String),
					zap.Error(err))
			}
		}
		for _, p := range phones[id] {
			if err := r.AddPhone(p); err != nil {
				b.logger.Warn("skipping stored phone",
					zap.String("contact", name),
					zap.String("phone", p),
					zap.Error(err))
			}
		}
		dir.AddRecord(r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	b.logger.Debug("directory loaded", zap.Int("contacts", dir.Len()))
	return dir, nil
}

// loadPhones returns phone values grouped by contact ID, in stored order.
func (b *Backend) loadPhones() (map[string][]string, error) {
	rows, err := b.db.Query("SELECT contact_id, value FROM phones ORDER BY contact_id, position")
	if err != nil {
		return nil, fmt.Errorf("fetching phones: %w", err)
	}
	defer rows.Close()

	phones := make(map[string][]string)
	for rows.Next() {
		var contactID, value string
		if err := rows.Scan(&contactID, &value); err != nil {
			return nil, fmt.Errorf("scanning phone: %w", err)
		}
		phones[contactID] = append(phones[contactID], value)
	}
	return phones, rows.Err()
}

// storedContact is the identity kept for a name across saves.
type storedContact struct {
	id        string
	createdAt string
}

// Save replaces the stored contents with d inside one transaction, then
// rewrites the JSONL files. Contact IDs and creation times are kept for names
// that were already stored.
func (b *Backend) Save(d *types.Directory) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := storedContacts(tx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM phones"); err != nil {
		return fmt.Errorf("clearing phones: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clearing contacts: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for pos, r := range d.Records() {
		sc, ok := existing[r.Name()]
		if !ok {
			sc = storedContact{id: newUUID(), createdAt: now}
		}

		var birthday any
		if bd, ok := r.Birthday(); ok {
			birthday = bd.String()
		}

		if _, err := tx.Exec(
			`INSERT INTO contacts (contact_id, name, birthday, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sc.id, r.Name(), birthday, pos, sc.createdAt, now); err != nil {
			return fmt.Errorf("inserting contact %q: %w", r.Name(), err)
		}

		for i, p := range r.Phones() {
			if _, err := tx.Exec(
				"INSERT INTO phones (phone_id, contact_id, position, value) VALUES (?, ?, ?, ?)",
				newUUID(), sc.id, i, p); err != nil {
				return fmt.Errorf("inserting phone for %q: %w", r.Name(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}

	if err := b.persistJSONL(); err != nil {
		return err
	}

	b.logger.Debug("directory saved", zap.Int("contacts", d.Len()))
	return nil
}

// storedContacts maps each stored name to its ID and creation time.
func storedContacts(tx *sql.Tx) (map[string]storedContact, error) {
	rows, err := tx.Query("SELECT name, contact_id, created_at FROM contacts")
	if err != nil {
		return nil, fmt.Errorf("fetching stored contacts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]storedContact)
	for rows.Next() {
		var name string
		var sc storedContact
		if err := rows.Scan(&name, &sc.id, &sc.createdAt); err != nil {
			return nil, fmt.Errorf("scanning stored contact: %w", err)
		}
		out[name] = sc
	}
	return out, rows.Err()
}

// persistJSONL rewrites every JSONL file from the current table contents.
// The caller must hold b.mu.
func (b *Backend) persistJSONL() error {
	for _, jt := range jsonlTables {
		path := filepath.Join(b.dataDir, jt.file)
		if err := persistTableJSONL(b.db, path, jt.table, jt.columns, jt.orderBy); err != nil {
			return fmt.Errorf("persisting %s: %w", jt.file, err)
		}
	}
	return nil
}
