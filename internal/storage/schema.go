// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: A single kv table holds every namespaced JSON document.
package storage

// initSchema creates or updates the database schema.
func (s *SQLiteKV) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}
