// Package storage reads the node's repository storage. Repositories are
// bare git repositories laid out under <home>/storage/<rid>, each carrying
// its identity document alongside.
package storage

import "github.com/radview/internal/cob"

// Repository is a read-only handle on one stored repository.
type Repository interface {
	ID() cob.RepoID
	Head() (cob.Oid, error)
	IdentityDoc() (cob.Doc, error)
	// RemoteRefs returns the given remote's references, keyed by their
	// unqualified name (e.g. "refs/heads/main").
	RemoteRefs(id cob.NodeID) (map[cob.RefName]cob.Oid, error)
}

// ReadStorage is the repository store collaborator: open one repository or
// enumerate them all.
type ReadStorage interface {
	Repository(id cob.RepoID) (Repository, error)
	Repositories() ([]cob.RepoInfo, error)
}
