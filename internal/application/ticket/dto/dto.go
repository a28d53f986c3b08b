package dto

import (
	"time"

	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/mapper"
)

type TicketDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"description_html"`
	Status          string    `json:"status"`
	StatusLabel     string    `json:"status_label"`
	IsClosed        bool      `json:"is_closed"`
	Type            string    `json:"ticket_type"`
	Priority        int       `json:"priority"`
	PriorityLabel   string    `json:"priority_label"`
	ApplicationID   uint      `json:"application_id"`
	SubmittedByID   *uint     `json:"submitted_by_id"`
	AssignedToID    *uint     `json:"assigned_to_id"`
	ParentID        *uint     `json:"parent_id"`
	Votes           int       `json:"votes"`
	Active          bool      `json:"active"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type FollowUpDTO struct {
	ID            uint      `json:"id"`
	TicketID      uint      `json:"ticket_id"`
	SubmittedByID *uint     `json:"submitted_by_id"`
	Comment       string    `json:"comment"`
	CommentHTML   string    `json:"comment_html"`
	Action        string    `json:"action"`
	Private       bool      `json:"private"`
	CreatedAt     time.Time `json:"created_at"`
}

// DuplicateDTO is one "ticket duplicates original" edge.
type DuplicateDTO struct {
	TicketID   uint      `json:"ticket_id"`
	OriginalID uint      `json:"original_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Permissions tells a client which actions the viewer may offer.
type Permissions struct {
	CanEdit           bool `json:"can_edit"`
	CanAdminister     bool `json:"can_administer"`
	CanCommentPrivate bool `json:"can_comment_private"`
	CanVote           bool `json:"can_vote"`
}

// TicketDetailDTO is a ticket with everything its read view shows.
type TicketDetailDTO struct {
	Ticket      TicketDTO      `json:"ticket"`
	FollowUps   []FollowUpDTO  `json:"follow_ups"`
	Duplicates  []DuplicateDTO `json:"duplicates"`
	Originals   []DuplicateDTO `json:"originals"`
	Parent      *TicketDTO     `json:"parent,omitempty"`
	Children    []TicketDTO    `json:"children"`
	Permissions Permissions    `json:"permissions"`
}

type ApplicationDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type UserDTO struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	IsStaff     bool   `json:"is_staff"`
}

func ToTicketDTO(t *ticket.Ticket) TicketDTO {
	return TicketDTO{
		ID:              t.ID(),
		Title:           t.Title(),
		Description:     t.Description(),
		DescriptionHTML: t.DescriptionHTML(),
		Status:          t.Status().String(),
		StatusLabel:     t.Status().Label(),
		IsClosed:        t.IsClosed(),
		Type:            t.Type().String(),
		Priority:        t.Priority().Int(),
		PriorityLabel:   t.Priority().String(),
		ApplicationID:   t.ApplicationID(),
		SubmittedByID:   t.SubmittedByID(),
		AssignedToID:    t.AssignedToID(),
		ParentID:        t.ParentID(),
		Votes:           t.Votes(),
		Active:          t.IsActive(),
		Tags:            t.Tags(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func ToTicketDTOList(tickets []*ticket.Ticket) []TicketDTO {
	out := mapper.MapSlice(tickets, ToTicketDTO)
	if out == nil {
		return []TicketDTO{}
	}
	return out
}

func ToFollowUpDTO(f *ticket.FollowUp) FollowUpDTO {
	return FollowUpDTO{
		ID:            f.ID(),
		TicketID:      f.TicketID(),
		SubmittedByID: f.SubmittedByID(),
		Comment:       f.Comment(),
		CommentHTML:   f.CommentHTML(),
		Action:        f.Action().String(),
		Private:       f.IsPrivate(),
		CreatedAt:     f.CreatedAt(),
	}
}

func ToFollowUpDTOList(followUps []*ticket.FollowUp) []FollowUpDTO {
	out := mapper.MapSlice(followUps, ToFollowUpDTO)
	if out == nil {
		return []FollowUpDTO{}
	}
	return out
}

func ToDuplicateDTO(d *ticket.Duplicate) DuplicateDTO {
	return DuplicateDTO{TicketID: d.TicketID(), OriginalID: d.OriginalID(), CreatedAt: d.CreatedAt()}
}

func ToDuplicateDTOList(dups []*ticket.Duplicate) []DuplicateDTO {
	out := mapper.MapSlice(dups, ToDuplicateDTO)
	if out == nil {
		return []DuplicateDTO{}
	}
	return out
}

func ToApplicationDTO(a *ticket.Application) ApplicationDTO {
	return ApplicationDTO{ID: a.ID(), Name: a.Name(), Slug: a.Slug()}
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID(),
		Username:    u.Username(),
		DisplayName: u.DisplayName(),
		Email:       u.Email(),
		IsStaff:     u.IsStaff(),
	}
}
