package view

import (
	"sort"

	"github.com/radview/internal/cob"
)

// RemoteSource exposes a repository's per-remote reference map, keyed by
// fully qualified name.
type RemoteSource interface {
	RemoteRefs(id cob.NodeID) (map[cob.RefName]cob.Oid, error)
}

// MatchingRefs returns the names in the actor's remote that point at head.
// It fails soft: any lookup error yields an empty sequence, since a
// revision view must still render when its refs cannot be resolved. Matches
// are sorted by name; callers must not rely on a particular order when more
// than one ref matches.
func MatchingRefs(src RemoteSource, id cob.NodeID, head cob.Oid) []cob.RefName {
	refs, err := src.RemoteRefs(id)
	if err != nil {
		return []cob.RefName{}
	}
	matches := make([]cob.RefName, 0, len(refs))
	for name, target := range refs {
		if target == head {
			matches = append(matches, name)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i] < matches[j] })
	return matches
}
