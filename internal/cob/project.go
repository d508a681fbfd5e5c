package cob

// Project is the project payload of a repository's identity document.
type Project struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	DefaultBranch string `json:"defaultBranch"`
}

// Visibility type values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Visibility controls who may fetch a repository. Allow lists the actors
// granted access to a private repository.
type Visibility struct {
	Type  string    `json:"type"`
	Allow []ActorID `json:"allow,omitempty"`
}

// IsPublic reports whether the repository is publicly visible.
func (v Visibility) IsPublic() bool {
	return v.Type == VisibilityPublic
}

// Doc is a repository identity document: the project payload plus the
// delegates that govern it.
type Doc struct {
	Payload    Project    `json:"payload"`
	Delegates  []ActorID  `json:"delegates"`
	Threshold  int        `json:"threshold"`
	Visibility Visibility `json:"visibility"`
}

// RepoInfo pairs a repository id with its identity document, as returned by
// storage listings.
type RepoInfo struct {
	RID RepoID `json:"rid"`
	Doc Doc    `json:"doc"`
}
