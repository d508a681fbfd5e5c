package view

import "github.com/radview/internal/cob"

// Issue is the assembled issue document.
type Issue struct {
	ID         cob.IssueID    `json:"id"`
	Author     Author         `json:"author"`
	Title      string         `json:"title"`
	State      cob.IssueState `json:"state"`
	Assignees  []Author       `json:"assignees"`
	Discussion []Comment      `json:"discussion"`
	Labels     []cob.Label    `json:"labels"`
}

// ProjectIssue assembles the full issue view, preserving comment order.
func ProjectIssue(issue *cob.Issue, aliases AliasStore) Issue {
	return Issue{
		ID:         issue.ID,
		Author:     ResolveAuthor(issue.Author, aliases),
		Title:      issue.Title,
		State:      issue.State,
		Assignees:  resolveAuthors(issue.Assignees, aliases),
		Discussion: projectComments(issue.Comments, aliases),
		Labels:     labels(issue.Labels),
	}
}

func labels(l []cob.Label) []cob.Label {
	if l == nil {
		return []cob.Label{}
	}
	return l
}
