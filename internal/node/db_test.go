package node

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radview/internal/cob"
)

func openSeeded(t *testing.T) (*DB, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "node.db")

	nodeDB, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = nodeDB.Close() })

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	return nodeDB, raw
}

func TestAlias(t *testing.T) {
	nodeDB, raw := openSeeded(t)

	_, err := raw.Exec(`INSERT INTO nodes (id, alias) VALUES (?, ?), (?, NULL)`,
		"z6MkAlice", "alice", "z6MkNoAlias")
	require.NoError(t, err)

	alias, ok := nodeDB.Alias("z6MkAlice")
	assert.True(t, ok)
	assert.Equal(t, cob.Alias("alice"), alias)

	_, ok = nodeDB.Alias("z6MkNoAlias")
	assert.False(t, ok)

	_, ok = nodeDB.Alias("z6MkUnknown")
	assert.False(t, ok)
}

func TestSeedingCount(t *testing.T) {
	nodeDB, raw := openSeeded(t)
	rid := cob.RepoID("rad:z42hL2jL4XNk6K8ND91tkkpexKj")

	assert.Equal(t, 0, nodeDB.SeedingCount(rid))

	_, err := raw.Exec(`INSERT INTO routing (repo, node) VALUES (?, ?), (?, ?)`,
		rid.String(), "z6MkAlice", rid.String(), "z6MkBob")
	require.NoError(t, err)

	assert.Equal(t, 2, nodeDB.SeedingCount(rid))
}

func TestIsSeeding(t *testing.T) {
	nodeDB, raw := openSeeded(t)
	allowed := cob.RepoID("rad:zAllowed")
	blocked := cob.RepoID("rad:zBlocked")

	_, err := raw.Exec(`INSERT INTO policies (repo, policy) VALUES (?, ?), (?, ?)`,
		allowed.String(), "allow", blocked.String(), "block")
	require.NoError(t, err)

	assert.True(t, nodeDB.IsSeeding(allowed))
	assert.False(t, nodeDB.IsSeeding(blocked))
	assert.False(t, nodeDB.IsSeeding("rad:zUnknown"))
}
