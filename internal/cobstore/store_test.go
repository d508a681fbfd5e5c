package cobstore

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radview/internal/cob"
)

const testRID = cob.RepoID("rad:z42hL2jL4XNk6K8ND91tkkpexKj")

// openSeeded opens a store on a temp database and returns a raw handle for
// inserting fixture rows. The node normally writes these rows; tests stand
// in for it.
func openSeeded(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cobs.db")

	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return store, db
}

func TestPatchesListAndGet(t *testing.T) {
	store, db := openSeeded(t)

	_, err := db.Exec(`INSERT INTO patches (repo, id, patch) VALUES (?, ?, ?)`,
		string(testRID), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		`{"title":"Add pagination","author":"z6Mk","state":{"status":"open"}}`)
	require.NoError(t, err)

	patches := store.Patches(testRID)

	items, err := patches.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)
	assert.Equal(t, "Add pagination", items[0].Patch.Title)
	assert.Equal(t, items[0].ID, items[0].Patch.ID)

	patch, err := patches.Get("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	require.NotNil(t, patch)
	assert.Equal(t, cob.PatchOpen, patch.State.Status)
}

func TestPatchesGetAbsent(t *testing.T) {
	store, _ := openSeeded(t)

	patch, err := store.Patches(testRID).Get("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, err)
	assert.Nil(t, patch)
}

func TestPatchesListCorruptRow(t *testing.T) {
	store, db := openSeeded(t)

	_, err := db.Exec(`INSERT INTO patches (repo, id, patch) VALUES (?, ?, ?), (?, ?, ?)`,
		string(testRID), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", `{"title":"good","state":{"status":"open"}}`,
		string(testRID), "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", `{not json`)
	require.NoError(t, err)

	items, err := store.Patches(testRID).List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NoError(t, items[0].Err)
	assert.Error(t, items[1].Err)
}

func TestPatchCounts(t *testing.T) {
	store, db := openSeeded(t)

	rows := [][2]string{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", `{"state":{"status":"open"}}`},
		{"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", `{"state":{"status":"open"}}`},
		{"cccccccccccccccccccccccccccccccccccccccc", `{"state":{"status":"merged"}}`},
		{"dddddddddddddddddddddddddddddddddddddddd", `{"state":{"status":"draft"}}`},
	}
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO patches (repo, id, patch) VALUES (?, ?, ?)`, string(testRID), r[0], r[1])
		require.NoError(t, err)
	}

	counts, err := store.Patches(testRID).Counts()
	require.NoError(t, err)
	assert.Equal(t, cob.PatchCounts{Draft: 1, Open: 2, Merged: 1}, counts)
}

func TestIssuesScopedByRepo(t *testing.T) {
	store, db := openSeeded(t)

	_, err := db.Exec(`INSERT INTO issues (repo, id, issue) VALUES (?, ?, ?), (?, ?, ?)`,
		string(testRID), "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", `{"title":"mine","state":{"status":"open"}}`,
		"rad:zOther", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", `{"title":"other","state":{"status":"closed"}}`)
	require.NoError(t, err)

	items, err := store.Issues(testRID).List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mine", items[0].Issue.Title)

	counts, err := store.Issues(testRID).Counts()
	require.NoError(t, err)
	assert.Equal(t, cob.IssueCounts{Open: 1}, counts)
}
