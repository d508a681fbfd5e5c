package cob

// LineRange is a half-open line span inside a file.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CodeLocation anchors a comment or reaction to a place in a diff. Old and
// new sides are both optional; a location with neither refers to the file
// as a whole.
type CodeLocation struct {
	Commit Oid        `json:"commit"`
	Path   string     `json:"path"`
	Old    *LineRange `json:"old,omitempty"`
	New    *LineRange `json:"new,omitempty"`
}

// Embed is a named reference to content attached to a comment body.
type Embed struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Reaction is a single author's emoji response. Location is set only for
// reactions anchored to code (revision-level reactions); it is nil for
// reactions on plain comments.
type Reaction struct {
	Author   ActorID       `json:"author"`
	Emoji    string        `json:"emoji"`
	Location *CodeLocation `json:"location,omitempty"`
}

// Edit is one entry in a comment's edit history. Creating a comment counts
// as its first edit.
type Edit struct {
	Author    ActorID `json:"author"`
	Body      string  `json:"body"`
	Timestamp int64   `json:"timestamp"`
	Embeds    []Embed `json:"embeds"`
}

// Comment is a threaded comment. Issue comments carry no location; patch
// and review comments may be anchored to code via Location.
type Comment struct {
	ID        CommentID     `json:"id"`
	Author    ActorID       `json:"author"`
	Body      string        `json:"body"`
	Edits     []Edit        `json:"edits"`
	Embeds    []Embed       `json:"embeds"`
	Reactions []Reaction    `json:"reactions"`
	Timestamp int64         `json:"timestamp"`
	ReplyTo   *CommentID    `json:"replyTo,omitempty"`
	Resolved  bool          `json:"resolved"`
	Location  *CodeLocation `json:"location,omitempty"`
}
