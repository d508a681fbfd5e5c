package cob

// Issue state status values.
const (
	IssueOpen   = "open"
	IssueClosed = "closed"
)

// IssueState is the lifecycle state of an issue. Reason is set only for
// closed issues ("solved", "other", ...).
type IssueState struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Issue is a snapshot of an issue collaborative object.
type Issue struct {
	ID        IssueID    `json:"id"`
	Author    ActorID    `json:"author"`
	Title     string     `json:"title"`
	State     IssueState `json:"state"`
	Assignees []ActorID  `json:"assignees"`
	Labels    []Label    `json:"labels"`
	Comments  []Comment  `json:"comments"`
}

// Timestamp returns the creation time of the issue, taken from its first
// comment. Zero when the issue has no comments.
func (i *Issue) Timestamp() int64 {
	if len(i.Comments) == 0 {
		return 0
	}
	return i.Comments[0].Timestamp
}

// IssueCounts aggregates issues by state for a repository.
type IssueCounts struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
}
