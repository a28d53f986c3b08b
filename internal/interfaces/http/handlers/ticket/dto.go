package ticket

import (
	"tickettracker/internal/application/ticket/usecases"
)

// TicketFieldsRequest carries the editable ticket fields. Request bodies in
// this package are only decoded; the use cases check them after authorizing
// the actor.
type TicketFieldsRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Type          string   `json:"ticket_type"`
	Priority      int      `json:"priority"`
	ApplicationID uint     `json:"application"`
	Tags          []string `json:"tags"`
}

func (r *TicketFieldsRequest) toInput() usecases.TicketFieldsInput {
	return usecases.TicketFieldsInput{
		Title:         r.Title,
		Description:   r.Description,
		Type:          r.Type,
		Priority:      r.Priority,
		ApplicationID: r.ApplicationID,
		Tags:          r.Tags,
	}
}

// CommentRequest is the body of transitions that only need a comment.
type CommentRequest struct {
	Comment string `json:"comment"`
}

type AssignTicketRequest struct {
	AssignedTo uint   `json:"assigned_to"`
	Comment    string `json:"comment"`
}

type CloseTicketRequest struct {
	Comment      string `json:"comment"`
	Duplicate    bool   `json:"duplicate"`
	SameAsTicket *uint  `json:"same_as_ticket"`
}

type AddCommentRequest struct {
	Comment string `json:"comment"`
	Private bool   `json:"private"`
}

type SplitChildRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	Type          string `json:"ticket_type"`
	Priority      int    `json:"priority"`
	ApplicationID uint   `json:"application"`
	AssignedTo    *uint  `json:"assigned_to"`
}

type SplitTicketRequest struct {
	Comment  string              `json:"comment"`
	Children []SplitChildRequest `json:"children"`
}

func (r *SplitTicketRequest) toChildren() []usecases.SplitChildInput {
	out := make([]usecases.SplitChildInput, 0, len(r.Children))
	for _, c := range r.Children {
		out = append(out, usecases.SplitChildInput{
			Title:         c.Title,
			Description:   c.Description,
			Status:        c.Status,
			Type:          c.Type,
			Priority:      c.Priority,
			ApplicationID: c.ApplicationID,
			AssignedToID:  c.AssignedTo,
		})
	}
	return out
}

// ListTicketsRequest mirrors the query string of GET /tickets.
type ListTicketsRequest struct {
	View            string `form:"view"`
	Status          string `form:"status"`
	Type            string `form:"ticket_type"`
	Priority        int    `form:"priority"`
	Application     string `form:"application"`
	AssignedTo      string `form:"assigned_to"`
	SubmittedBy     string `form:"submitted_by"`
	Owner           string `form:"owner"`
	Query           string `form:"q"`
	Tag             string `form:"tag"`
	IncludeInactive bool   `form:"include_inactive"`
}
