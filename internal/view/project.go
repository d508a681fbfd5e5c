package view

import "github.com/radview/internal/cob"

// Info is the project overview document: the identity payload plus
// governance, head, counts and seeding data. The payload fields are
// inlined at the top level.
type Info struct {
	cob.Project
	Delegates  []Author        `json:"delegates"`
	Threshold  int             `json:"threshold"`
	Visibility cob.Visibility  `json:"visibility"`
	Head       cob.Oid         `json:"head"`
	Patches    cob.PatchCounts `json:"patches"`
	Issues     cob.IssueCounts `json:"issues"`
	ID         cob.RepoID      `json:"id"`
	Seeding    int             `json:"seeding"`
}

// ProjectInfo assembles the project overview from an identity document and
// the already-fetched head, counts and seeding number.
func ProjectInfo(id cob.RepoID, doc cob.Doc, head cob.Oid, issues cob.IssueCounts, patches cob.PatchCounts, seeding int, aliases AliasStore) Info {
	return Info{
		Project:    doc.Payload,
		Delegates:  resolveAuthors(doc.Delegates, aliases),
		Threshold:  doc.Threshold,
		Visibility: doc.Visibility,
		Head:       head,
		Patches:    patches,
		Issues:     issues,
		ID:         id,
		Seeding:    seeding,
	}
}
