// Package view projects collaborative-object snapshots into the stable,
// nested JSON documents served to callers. All projections here are pure:
// they read already-loaded domain values plus read-only lookups and never
// mutate their inputs.
package view

import "github.com/radview/internal/cob"

// AliasStore resolves actor ids to display names. A missing alias is a
// normal outcome, not an error.
type AliasStore interface {
	Alias(id cob.ActorID) (cob.Alias, bool)
}

// Author is the uniform author view. Alias is additive: when no alias is
// known the view is just the bare actor id, indistinguishable from the
// domain author form.
type Author struct {
	ID    cob.ActorID `json:"id"`
	Alias cob.Alias   `json:"alias,omitempty"`
}

// ResolveAuthor builds an author view, filling in the alias when the store
// has one.
func ResolveAuthor(id cob.ActorID, aliases AliasStore) Author {
	if alias, ok := aliases.Alias(id); ok {
		return Author{ID: id, Alias: alias}
	}
	return Author{ID: id}
}

func resolveAuthors(ids []cob.ActorID, aliases AliasStore) []Author {
	out := make([]Author, 0, len(ids))
	for _, id := range ids {
		out = append(out, ResolveAuthor(id, aliases))
	}
	return out
}
