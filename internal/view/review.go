package view

import "github.com/radview/internal/cob"

// Review is the view of one reviewer's pass over a revision.
type Review struct {
	ID        cob.ReviewID `json:"id"`
	Author    Author       `json:"author"`
	Verdict   *cob.Verdict `json:"verdict"`
	Summary   *string      `json:"summary"`
	Comments  []Comment    `json:"comments"`
	Timestamp int64        `json:"timestamp"`
}

// Merge is the view of a node merging a revision.
type Merge struct {
	Author    Author         `json:"author"`
	Commit    cob.Oid        `json:"commit"`
	Timestamp int64          `json:"timestamp"`
	Revision  cob.RevisionID `json:"revision"`
}

// ProjectReview maps a review, delegating its comments to the comment
// projector.
func ProjectReview(r cob.Review, aliases AliasStore) Review {
	return Review{
		ID:        r.ID,
		Author:    ResolveAuthor(r.Author, aliases),
		Verdict:   r.Verdict,
		Summary:   r.Summary,
		Comments:  projectComments(r.Comments, aliases),
		Timestamp: r.Timestamp,
	}
}

// ProjectMerge maps a merge record. Merge authors arrive as raw node ids,
// so the author view is built straight from the identifier.
func ProjectMerge(m cob.Merge, aliases AliasStore) Merge {
	return Merge{
		Author:    ResolveAuthor(m.Author, aliases),
		Commit:    m.Commit,
		Timestamp: m.Timestamp,
		Revision:  m.Revision,
	}
}
