// SQLite schema for the persistent constrained store.
package sqlite

// DDL statements for the store database.
const (
	createStores = `CREATE TABLE IF NOT EXISTS stores (
	store_id        TEXT PRIMARY KEY,
	name            TEXT UNIQUE NOT NULL,
	constraint_spec TEXT NOT NULL,
	created_at      TEXT NOT NULL
);`

	createEntries = `CREATE TABLE IF NOT EXISTS entries (
	store_id   TEXT NOT NULL REFERENCES stores(store_id) ON DELETE CASCADE,
	key        TEXT NOT NULL,
	value_kind TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (store_id, key)
);`

	idxEntriesStore = `CREATE INDEX IF NOT EXISTS idx_entries_store ON entries(store_id);`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createStores,
	createEntries,
	idxEntriesStore,
}
