// Package node reads the node database: the address book (aliases),
// routing table (which nodes seed which repositories) and seeding
// policies. radview only reads it; the node daemon owns the writes.
package node

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/radview/internal/cob"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id    TEXT PRIMARY KEY,
	alias TEXT
);
CREATE TABLE IF NOT EXISTS routing (
	repo TEXT NOT NULL,
	node TEXT NOT NULL,
	PRIMARY KEY (repo, node)
);
CREATE TABLE IF NOT EXISTS policies (
	repo   TEXT PRIMARY KEY,
	policy TEXT NOT NULL
);`

// DB is a read handle on the node database.
type DB struct {
	db *sql.DB
}

// Open opens the node database at path, creating the schema when absent.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open node db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init node db schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Alias resolves an actor's display name from the address book. Lookups
// fail soft: a missing or unreadable entry is simply no alias.
func (d *DB) Alias(id cob.ActorID) (cob.Alias, bool) {
	var alias sql.NullString
	err := d.db.QueryRow(`SELECT alias FROM nodes WHERE id = ?`, string(id)).Scan(&alias)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		log.Debug().Str("actor", string(id)).Err(err).Msg("alias lookup failed")
		return "", false
	}
	if !alias.Valid || alias.String == "" {
		return "", false
	}
	return cob.Alias(alias.String), true
}

// SeedingCount returns how many known nodes seed the repository. Defaults
// to zero on error; the count is informational.
func (d *DB) SeedingCount(rid cob.RepoID) int {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM routing WHERE repo = ?`, rid.String()).Scan(&n)
	if err != nil {
		log.Debug().Str("rid", rid.String()).Err(err).Msg("seeding count failed")
		return 0
	}
	return n
}

// IsSeeding reports whether the local node's policy allows seeding the
// repository. Defaults to false on error or when no policy exists.
func (d *DB) IsSeeding(rid cob.RepoID) bool {
	var policy string
	err := d.db.QueryRow(`SELECT policy FROM policies WHERE repo = ?`, rid.String()).Scan(&policy)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Debug().Str("rid", rid.String()).Err(err).Msg("policy lookup failed")
		}
		return false
	}
	return policy == "allow"
}
