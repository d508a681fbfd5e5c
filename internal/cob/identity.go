// Package cob holds read-only snapshots of Radicle collaborative objects
// (issues, patches) and the identity types they reference. Nothing in this
// package is mutated after construction; values are loaded from the node's
// caches and projected into views by internal/view.
package cob

import (
	"fmt"
	"strings"
)

// ActorID is the public key identifying a participant, in its multibase
// form (e.g. "z6MkltRpzcq2ybm13yLGyrZdqmFntCG6GHQSNbsy645DdTbF").
type ActorID string

// NodeID identifies a node on the network. Nodes and actors share the same
// key space.
type NodeID = ActorID

// DID returns the actor's decentralized identifier.
func (a ActorID) DID() string {
	return "did:key:" + string(a)
}

// Alias is a human-readable display name for an actor, resolved from the
// node's address book.
type Alias string

// RepoID is a repository identifier URN, e.g. "rad:z42hL2jL4XNk6K8ND91tkkpexKj".
type RepoID string

const repoIDPrefix = "rad:"

// ParseRepoID validates a repository URN.
func ParseRepoID(s string) (RepoID, error) {
	if !strings.HasPrefix(s, repoIDPrefix) || len(s) == len(repoIDPrefix) {
		return "", fmt.Errorf("invalid repository id %q", s)
	}
	return RepoID(s), nil
}

// Name returns the URN without its "rad:" prefix. Storage directories are
// keyed by this form.
func (id RepoID) Name() string {
	return strings.TrimPrefix(string(id), repoIDPrefix)
}

func (id RepoID) String() string { return string(id) }

// Oid is a git object id in hex form.
type Oid string

// ParseOid validates a full hex object id.
func ParseOid(s string) (Oid, error) {
	if len(s) != 40 {
		return "", fmt.Errorf("invalid object id %q", s)
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return "", fmt.Errorf("invalid object id %q", s)
		}
	}
	return Oid(s), nil
}

func (o Oid) String() string { return string(o) }

// Collaborative-object ids are the object ids of the entries that created
// them, so they all share the Oid representation.
type (
	IssueID    = Oid
	PatchID    = Oid
	CommentID  = Oid
	RevisionID = Oid
	ReviewID   = Oid
)

// RefName is a fully qualified git reference name, e.g. "refs/heads/main".
type RefName string

// Label is a free-form tag attached to an issue or patch.
type Label string
