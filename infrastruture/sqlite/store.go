// Package sqlite stores maps and results in an embedded SQLite database,
// for single-node deployments without MongoDB.
package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS maps (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	grid_size INTEGER NOT NULL,
	risk_json TEXT NOT NULL,
	animal_json TEXT NOT NULL,
	terrain_json TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	id TEXT PRIMARY KEY,
	map_id TEXT NOT NULL,
	risk_reduction REAL NOT NULL,
	body_json TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_maps_created ON maps(created_at);
CREATE INDEX IF NOT EXISTS idx_results_map ON results(map_id, risk_reduction);
`

// Store wraps a SQLite connection.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite allows one writer; an in-memory database also lives on a single connection.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Maps returns the map repository backed by s.
func (s *Store) Maps() *MapRepo {
	return &MapRepo{conn: s.conn}
}

// Results returns the result repository backed by s.
func (s *Store) Results() *ResultRepo {
	return &ResultRepo{conn: s.conn}
}
