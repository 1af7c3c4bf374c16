// Package sqlite persists named constrained stores: each store couples one
// constraint with a key/value mapping, and every write is validated against
// the store's constraint before it is committed. SQLite is the storage
// engine; the valguard core decides admissibility.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/valguard/internal/config"
	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

// dbFileName is the SQLite database file kept in the data directory.
const dbFileName = "valguard.db"

// Store lifecycle and lookup errors.
var (
	ErrAlreadyOpen   = errors.New("backend is already open")
	ErrClosed        = errors.New("backend is closed")
	ErrStoreExists   = errors.New("store already exists")
	ErrStoreNotFound = errors.New("store not found")
	ErrKeyNotFound   = errors.New("key not found")
)

// Backend owns the SQLite database holding the constrained stores. A
// Backend serializes writes internally; a single Backend instance may be
// shared, but the database file must not be opened twice.
type Backend struct {
	mu      sync.RWMutex
	open    bool
	dataDir string
	db      *sql.DB
}

// NewBackend returns a closed Backend; call Open to attach it to a data
// directory.
func NewBackend() *Backend {
	return &Backend{}
}

// Open creates dataDir if needed, opens the database and applies the
// schema. Opening an already-open Backend returns ErrAlreadyOpen.
func (b *Backend) Open(dataDir string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return ErrAlreadyOpen
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.open = true
	b.dataDir = dataDir
	b.db = db
	return nil
}

// Open creates a Backend attached to dataDir. Shorthand for NewBackend
// followed by Backend.Open.
func Open(dataDir string) (*Backend, error) {
	b := NewBackend()
	if err := b.Open(dataDir); err != nil {
		return nil, err
	}
	return b, nil
}

// Close releases the database. Closing twice returns ErrClosed.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return ErrClosed
	}
	b.open = false
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// CreateStore registers a named store governed by the given constraint and
// returns its generated id. A nil constraint means unconstrained.
func (b *Backend) CreateStore(name string, c valguard.Constraint) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return "", ErrClosed
	}
	if c == nil {
		c = valguard.AnyConstraint{}
	}

	var existing string
	err := b.db.QueryRow("SELECT store_id FROM stores WHERE name = ?", name).Scan(&existing)
	if err == nil {
		return "", ErrStoreExists
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("checking store name: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	_, err = b.db.Exec(
		"INSERT INTO stores (store_id, name, constraint_spec, created_at) VALUES (?, ?, ?, ?)",
		id.String(), name, config.FormatConstraint(c), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("creating store %s: %w", name, err)
	}
	return id.String(), nil
}

// DeleteStore removes a store and, via the schema's cascade, its entries.
func (b *Backend) DeleteStore(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return ErrClosed
	}
	res, err := b.db.Exec("DELETE FROM stores WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting store %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting store %s: %w", name, err)
	}
	if n == 0 {
		return ErrStoreNotFound
	}
	return nil
}

// Stores lists store names in creation order.
func (b *Backend) Stores() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, ErrClosed
	}
	rows, err := b.db.Query("SELECT name FROM stores ORDER BY created_at, name")
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning store name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// StoreConstraint returns the constraint governing a named store.
func (b *Backend) StoreConstraint(name string) (valguard.Constraint, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, ErrClosed
	}
	_, c, err := b.storeRecord(name)
	return c, err
}

// Put validates v against the store's constraint and commits it under key.
// A violating value fails and leaves the database unchanged.
func (b *Backend) Put(store, key string, v valguard.Value) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return ErrClosed
	}
	id, c, err := b.storeRecord(store)
	if err != nil {
		return err
	}
	if _, err := c.Validate(v); err != nil {
		return err
	}

	kind, payload := encodeValue(v)
	_, err = b.db.Exec(
		`INSERT INTO entries (store_id, key, value_kind, value, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (store_id, key) DO UPDATE SET
		   value_kind = excluded.value_kind,
		   value = excluded.value,
		   updated_at = excluded.updated_at`,
		id, key, kind, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("persisting entry %s/%s: %w", store, key, err)
	}
	return nil
}

// Get rehydrates the value stored under key, re-validating it against the
// store's constraint so externally edited rows cannot violate it.
func (b *Backend) Get(store, key string) (valguard.Value, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, ErrClosed
	}
	id, c, err := b.storeRecord(store)
	if err != nil {
		return nil, err
	}

	var kind, payload string
	err = b.db.QueryRow(
		"SELECT value_kind, value FROM entries WHERE store_id = ? AND key = ?",
		id, key,
	).Scan(&kind, &payload)
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting entry %s/%s: %w", store, key, err)
	}

	v, err := decodeValue(kind, payload)
	if err != nil {
		return nil, fmt.Errorf("decoding entry %s/%s: %w", store, key, err)
	}
	if _, err := c.Validate(v); err != nil {
		return nil, fmt.Errorf("stored entry %s/%s violates constraint: %w", store, key, err)
	}
	return v, nil
}

// Delete removes the entry stored under key.
func (b *Backend) Delete(store, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return ErrClosed
	}
	id, _, err := b.storeRecord(store)
	if err != nil {
		return err
	}
	res, err := b.db.Exec("DELETE FROM entries WHERE store_id = ? AND key = ?", id, key)
	if err != nil {
		return fmt.Errorf("deleting entry %s/%s: %w", store, key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting entry %s/%s: %w", store, key, err)
	}
	if n == 0 {
		return ErrKeyNotFound
	}
	return nil
}

// Keys lists a store's keys in lexical order.
func (b *Backend) Keys(store string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, ErrClosed
	}
	id, _, err := b.storeRecord(store)
	if err != nil {
		return nil, err
	}
	rows, err := b.db.Query("SELECT key FROM entries WHERE store_id = ? ORDER BY key", id)
	if err != nil {
		return nil, fmt.Errorf("listing keys for %s: %w", store, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// storeRecord resolves a store name to its id and parsed constraint. The
// caller must hold the mutex.
func (b *Backend) storeRecord(name string) (string, valguard.Constraint, error) {
	var id, spec string
	err := b.db.QueryRow(
		"SELECT store_id, constraint_spec FROM stores WHERE name = ?", name,
	).Scan(&id, &spec)
	if err == sql.ErrNoRows {
		return "", nil, ErrStoreNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("getting store %s: %w", name, err)
	}
	c, err := config.ParseConstraint(spec)
	if err != nil {
		return "", nil, fmt.Errorf("store %s has unusable constraint %q: %w", name, spec, err)
	}
	return id, c, nil
}
