package cob

// Patch state status values.
const (
	PatchDraft    = "draft"
	PatchOpen     = "open"
	PatchArchived = "archived"
	PatchMerged   = "merged"
)

// PatchState is the lifecycle state of a patch. Revision and Commit are set
// only in the merged state.
type PatchState struct {
	Status   string      `json:"status"`
	Revision *RevisionID `json:"revision,omitempty"`
	Commit   *Oid        `json:"commit,omitempty"`
}

// Verdict is the outcome of a review.
type Verdict string

const (
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
)

// Review is one reviewer's pass over a patch revision.
type Review struct {
	ID        ReviewID  `json:"id"`
	Author    ActorID   `json:"author"`
	Verdict   *Verdict  `json:"verdict"`
	Summary   *string   `json:"summary"`
	Comments  []Comment `json:"comments"`
	Timestamp int64     `json:"timestamp"`
}

// Merge records a node merging a patch revision into its canonical branch.
type Merge struct {
	Author    NodeID     `json:"author"`
	Commit    Oid        `json:"commit"`
	Timestamp int64      `json:"timestamp"`
	Revision  RevisionID `json:"revision"`
}

// Revision is one proposed version of a patch's change set. Discussion
// comments and reactions may be anchored to code locations.
type Revision struct {
	ID          RevisionID `json:"id"`
	Author      ActorID    `json:"author"`
	Description string     `json:"description"`
	Edits       []Edit     `json:"edits"`
	Reactions   []Reaction `json:"reactions"`
	Base        Oid        `json:"base"`
	Head        Oid        `json:"head"`
	Discussion  []Comment  `json:"discussion"`
	Timestamp   int64      `json:"timestamp"`
}

// Patch is a snapshot of a patch collaborative object. Reviews are keyed by
// the revision they target.
type Patch struct {
	ID        PatchID                 `json:"id"`
	Author    ActorID                 `json:"author"`
	Title     string                  `json:"title"`
	State     PatchState              `json:"state"`
	Target    string                  `json:"target"`
	Labels    []Label                 `json:"labels"`
	Assignees []ActorID               `json:"assignees"`
	Merges    []Merge                 `json:"merges"`
	Revisions []Revision              `json:"revisions"`
	Reviews   map[RevisionID][]Review `json:"reviews,omitempty"`
}

// ReviewsOf returns the reviews targeting the given revision, in stored
// order.
func (p *Patch) ReviewsOf(id RevisionID) []Review {
	return p.Reviews[id]
}

// Timestamp returns the creation time of the patch, taken from its first
// revision. Zero when the patch has no revisions.
func (p *Patch) Timestamp() int64 {
	if len(p.Revisions) == 0 {
		return 0
	}
	return p.Revisions[0].Timestamp
}

// PatchCounts aggregates patches by state for a repository.
type PatchCounts struct {
	Draft    int `json:"draft"`
	Open     int `json:"open"`
	Archived int `json:"archived"`
	Merged   int `json:"merged"`
}
