// Package cobstore reads the node's collaborative-object cache: a SQLite
// database holding issues and patches as JSON rows, keyed by repository
// and object id. radview only reads the cache; the node writes it.
package cobstore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/radview/internal/cob"
)

const schema = `
CREATE TABLE IF NOT EXISTS issues (
	repo  TEXT NOT NULL,
	id    TEXT NOT NULL,
	issue TEXT NOT NULL,
	PRIMARY KEY (repo, id)
);
CREATE TABLE IF NOT EXISTS patches (
	repo  TEXT NOT NULL,
	id    TEXT NOT NULL,
	patch TEXT NOT NULL,
	PRIMARY KEY (repo, id)
);`

// Store is a handle on the cache database.
type Store struct {
	db *sql.DB
}

// Open opens the cache database at path, creating the schema when absent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cob cache: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cob cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Issues returns the issue cache scoped to one repository.
func (s *Store) Issues(rid cob.RepoID) *Issues {
	return &Issues{db: s.db, rid: rid}
}

// Patches returns the patch cache scoped to one repository.
func (s *Store) Patches(rid cob.RepoID) *Patches {
	return &Patches{db: s.db, rid: rid}
}

// IssueItem is one issue cache row. Err is set when the row exists but its
// payload cannot be decoded; listings drop such rows instead of failing.
type IssueItem struct {
	ID    cob.IssueID
	Issue *cob.Issue
	Err   error
}

// Issues reads issues of a single repository.
type Issues struct {
	db  *sql.DB
	rid cob.RepoID
}

// List returns all cached issues in id order, one item per row.
func (c *Issues) List() ([]IssueItem, error) {
	rows, err := c.db.Query(`SELECT id, issue FROM issues WHERE repo = ? ORDER BY id`, string(c.rid))
	if err != nil {
		return nil, fmt.Errorf("listing issues of %s: %w", c.rid, err)
	}
	defer rows.Close()

	var items []IssueItem
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning issue row: %w", err)
		}
		item := IssueItem{ID: cob.IssueID(id)}
		var issue cob.Issue
		if err := json.Unmarshal([]byte(raw), &issue); err != nil {
			item.Err = fmt.Errorf("decoding issue %s: %w", id, err)
		} else {
			issue.ID = item.ID
			item.Issue = &issue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns one issue, or nil when the id is not cached.
func (c *Issues) Get(id cob.IssueID) (*cob.Issue, error) {
	var raw string
	err := c.db.QueryRow(`SELECT issue FROM issues WHERE repo = ? AND id = ?`, string(c.rid), string(id)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching issue %s: %w", id, err)
	}
	var issue cob.Issue
	if err := json.Unmarshal([]byte(raw), &issue); err != nil {
		return nil, fmt.Errorf("decoding issue %s: %w", id, err)
	}
	issue.ID = id
	return &issue, nil
}

// Counts aggregates cached issues by state. Undecodable rows are ignored.
func (c *Issues) Counts() (cob.IssueCounts, error) {
	items, err := c.List()
	if err != nil {
		return cob.IssueCounts{}, err
	}
	var counts cob.IssueCounts
	for _, item := range items {
		if item.Err != nil {
			continue
		}
		switch item.Issue.State.Status {
		case cob.IssueOpen:
			counts.Open++
		case cob.IssueClosed:
			counts.Closed++
		}
	}
	return counts, nil
}

// PatchItem is one patch cache row; see IssueItem for Err semantics.
type PatchItem struct {
	ID    cob.PatchID
	Patch *cob.Patch
	Err   error
}

// Patches reads patches of a single repository.
type Patches struct {
	db  *sql.DB
	rid cob.RepoID
}

// List returns all cached patches in id order, one item per row.
func (c *Patches) List() ([]PatchItem, error) {
	rows, err := c.db.Query(`SELECT id, patch FROM patches WHERE repo = ? ORDER BY id`, string(c.rid))
	if err != nil {
		return nil, fmt.Errorf("listing patches of %s: %w", c.rid, err)
	}
	defer rows.Close()

	var items []PatchItem
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning patch row: %w", err)
		}
		item := PatchItem{ID: cob.PatchID(id)}
		var patch cob.Patch
		if err := json.Unmarshal([]byte(raw), &patch); err != nil {
			item.Err = fmt.Errorf("decoding patch %s: %w", id, err)
		} else {
			patch.ID = item.ID
			item.Patch = &patch
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns one patch, or nil when the id is not cached.
func (c *Patches) Get(id cob.PatchID) (*cob.Patch, error) {
	var raw string
	err := c.db.QueryRow(`SELECT patch FROM patches WHERE repo = ? AND id = ?`, string(c.rid), string(id)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching patch %s: %w", id, err)
	}
	var patch cob.Patch
	if err := json.Unmarshal([]byte(raw), &patch); err != nil {
		return nil, fmt.Errorf("decoding patch %s: %w", id, err)
	}
	patch.ID = id
	return &patch, nil
}

// Counts aggregates cached patches by state. Undecodable rows are ignored.
func (c *Patches) Counts() (cob.PatchCounts, error) {
	items, err := c.List()
	if err != nil {
		return cob.PatchCounts{}, err
	}
	var counts cob.PatchCounts
	for _, item := range items {
		if item.Err != nil {
			continue
		}
		switch item.Patch.State.Status {
		case cob.PatchDraft:
			counts.Draft++
		case cob.PatchOpen:
			counts.Open++
		case cob.PatchArchived:
			counts.Archived++
		case cob.PatchMerged:
			counts.Merged++
		}
	}
	return counts, nil
}
