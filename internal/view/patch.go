package view

import (
	"fmt"

	"github.com/radview/internal/cob"
)

// Revision is the view of one patch revision. Refs lists the symbolic
// references in the patch author's remote that point at the revision head.
type Revision struct {
	ID          cob.RevisionID  `json:"id"`
	Author      Author          `json:"author"`
	Description string          `json:"description"`
	Edits       []Edit          `json:"edits"`
	Reactions   []ReactionGroup `json:"reactions"`
	Base        cob.Oid         `json:"base"`
	Oid         cob.Oid         `json:"oid"`
	Refs        []cob.RefName   `json:"refs"`
	Discussions []Comment       `json:"discussions"`
	Timestamp   int64           `json:"timestamp"`
	Reviews     []Review        `json:"reviews"`
}

// Patch is the assembled patch document.
type Patch struct {
	ID        cob.PatchID    `json:"id"`
	Author    Author         `json:"author"`
	Title     string         `json:"title"`
	State     cob.PatchState `json:"state"`
	Target    string         `json:"target"`
	Labels    []cob.Label    `json:"labels"`
	Merges    []Merge        `json:"merges"`
	Assignees []Author       `json:"assignees"`
	Revisions []Revision     `json:"revisions"`
}

// ProjectPatch assembles the full patch document. A malformed revision
// fails the whole projection; there is no partial-revision output. Only the
// ref correlation inside a revision degrades (to an empty list) instead of
// failing.
func ProjectPatch(patch *cob.Patch, repo RemoteSource, aliases AliasStore) (Patch, error) {
	merges := make([]Merge, 0, len(patch.Merges))
	for _, m := range patch.Merges {
		merges = append(merges, ProjectMerge(m, aliases))
	}

	revisions := make([]Revision, 0, len(patch.Revisions))
	for i, rev := range patch.Revisions {
		v, err := projectRevision(patch, rev, repo, aliases)
		if err != nil {
			return Patch{}, fmt.Errorf("patch %s: revision %d: %w", patch.ID, i, err)
		}
		revisions = append(revisions, v)
	}

	return Patch{
		ID:        patch.ID,
		Author:    ResolveAuthor(patch.Author, aliases),
		Title:     patch.Title,
		State:     patch.State,
		Target:    patch.Target,
		Labels:    labels(patch.Labels),
		Merges:    merges,
		Assignees: resolveAuthors(patch.Assignees, aliases),
		Revisions: revisions,
	}, nil
}

func projectRevision(patch *cob.Patch, rev cob.Revision, repo RemoteSource, aliases AliasStore) (Revision, error) {
	if rev.ID == "" {
		return Revision{}, fmt.Errorf("missing revision id")
	}
	if rev.Head == "" {
		return Revision{}, fmt.Errorf("revision %s has no head commit", rev.ID)
	}

	edits := make([]Edit, 0, len(rev.Edits))
	for _, e := range rev.Edits {
		edits = append(edits, ProjectEdit(e, aliases))
	}

	reviews := make([]Review, 0)
	for _, r := range patch.ReviewsOf(rev.ID) {
		reviews = append(reviews, ProjectReview(r, aliases))
	}

	return Revision{
		ID:          rev.ID,
		Author:      ResolveAuthor(rev.Author, aliases),
		Description: rev.Description,
		Edits:       edits,
		Reactions:   GroupLocatedReactions(rev.Reactions, aliases),
		Base:        rev.Base,
		Oid:         rev.Head,
		Refs:        MatchingRefs(repo, patch.Author, rev.Head),
		Discussions: projectComments(rev.Discussion, aliases),
		Timestamp:   rev.Timestamp,
		Reviews:     reviews,
	}, nil
}
