package view

import (
	"fmt"
	"sort"

	"github.com/radview/internal/cob"
)

// ReactionGroup collects all authors that reacted with the same emoji on
// the same target. Location is set when the grouping ran in a code-located
// context and applies to every author in the group.
type ReactionGroup struct {
	Emoji    string            `json:"emoji"`
	Authors  []Author          `json:"authors"`
	Location *cob.CodeLocation `json:"location,omitempty"`
}

// GroupReactions groups reactions by emoji. Groups are ordered
// lexicographically by emoji and authors keep their first-seen order within
// a group, so the output is stable for a fixed input. An author reacting
// twice with the same emoji is counted once. The location, when given, is
// attached to every group produced by this call.
func GroupReactions(reactions []cob.Reaction, location *cob.CodeLocation, aliases AliasStore) []ReactionGroup {
	byEmoji := make(map[string][]cob.ActorID)
	seen := make(map[string]map[cob.ActorID]bool)
	emojis := make([]string, 0, len(reactions))

	for _, r := range reactions {
		if seen[r.Emoji] == nil {
			seen[r.Emoji] = make(map[cob.ActorID]bool)
			emojis = append(emojis, r.Emoji)
		}
		if seen[r.Emoji][r.Author] {
			continue
		}
		seen[r.Emoji][r.Author] = true
		byEmoji[r.Emoji] = append(byEmoji[r.Emoji], r.Author)
	}
	sort.Strings(emojis)

	groups := make([]ReactionGroup, 0, len(emojis))
	for _, emoji := range emojis {
		groups = append(groups, ReactionGroup{
			Emoji:    emoji,
			Authors:  resolveAuthors(byEmoji[emoji], aliases),
			Location: location,
		})
	}
	return groups
}

// GroupLocatedReactions groups revision-level reactions: reactions are
// bucketed by code location first (buckets keep first-seen order), each
// bucket is grouped by emoji, and the per-bucket groups are flattened into
// one sequence. Two reactions with the same emoji at different locations
// stay in separate groups.
func GroupLocatedReactions(reactions []cob.Reaction, aliases AliasStore) []ReactionGroup {
	buckets := make(map[string][]cob.Reaction)
	locations := make([]*cob.CodeLocation, 0, len(reactions))
	order := make([]string, 0, len(reactions))

	for _, r := range reactions {
		key := locationKey(r.Location)
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
			locations = append(locations, r.Location)
		}
		buckets[key] = append(buckets[key], r)
	}

	groups := make([]ReactionGroup, 0, len(reactions))
	for i, key := range order {
		groups = append(groups, GroupReactions(buckets[key], locations[i], aliases)...)
	}
	return groups
}

func locationKey(l *cob.CodeLocation) string {
	if l == nil {
		return ""
	}
	key := fmt.Sprintf("%s\x00%s", l.Commit, l.Path)
	if l.Old != nil {
		key += fmt.Sprintf("\x00o%d-%d", l.Old.Start, l.Old.End)
	}
	if l.New != nil {
		key += fmt.Sprintf("\x00n%d-%d", l.New.Start, l.New.End)
	}
	return key
}
