package view

import "github.com/radview/internal/cob"

// Edit is the view of one entry in a comment's edit history.
type Edit struct {
	Author    Author      `json:"author"`
	Body      string      `json:"body"`
	Timestamp int64       `json:"timestamp"`
	Embeds    []cob.Embed `json:"embeds"`
}

// Comment is the view of a threaded comment. The location key is present
// only for code-located comments (patch and review threads).
type Comment struct {
	ID        cob.CommentID     `json:"id"`
	Author    Author            `json:"author"`
	Body      string            `json:"body"`
	Edits     []Edit            `json:"edits"`
	Embeds    []cob.Embed       `json:"embeds"`
	Reactions []ReactionGroup   `json:"reactions"`
	Timestamp int64             `json:"timestamp"`
	ReplyTo   *cob.CommentID    `json:"replyTo"`
	Location  *cob.CodeLocation `json:"location,omitempty"`
	Resolved  bool              `json:"resolved"`
}

// ProjectEdit maps a single edit, resolving its author.
func ProjectEdit(e cob.Edit, aliases AliasStore) Edit {
	return Edit{
		Author:    ResolveAuthor(e.Author, aliases),
		Body:      e.Body,
		Timestamp: e.Timestamp,
		Embeds:    embeds(e.Embeds),
	}
}

// ProjectComment maps one comment independently of its siblings. Edits are
// projected element-wise in order; reactions are grouped with the comment's
// own location (nil for plain comments).
func ProjectComment(c cob.Comment, aliases AliasStore) Comment {
	edits := make([]Edit, 0, len(c.Edits))
	for _, e := range c.Edits {
		edits = append(edits, ProjectEdit(e, aliases))
	}
	return Comment{
		ID:        c.ID,
		Author:    ResolveAuthor(c.Author, aliases),
		Body:      c.Body,
		Edits:     edits,
		Embeds:    embeds(c.Embeds),
		Reactions: GroupReactions(c.Reactions, c.Location, aliases),
		Timestamp: c.Timestamp,
		ReplyTo:   c.ReplyTo,
		Location:  c.Location,
		Resolved:  c.Resolved,
	}
}

func projectComments(comments []cob.Comment, aliases AliasStore) []Comment {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, ProjectComment(c, aliases))
	}
	return out
}

// embeds normalizes a nil embed list to an empty one so views always
// serialize a sequence.
func embeds(e []cob.Embed) []cob.Embed {
	if e == nil {
		return []cob.Embed{}
	}
	return e
}
