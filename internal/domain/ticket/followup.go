package ticket

import (
	"fmt"
	"strings"
	"time"

	vo "tickettracker/internal/domain/ticket/valueobjects"
)

// FollowUp is a comment on a ticket, optionally tagged with the lifecycle
// action it accompanied. Private follow-ups are only visible to admins and
// the ticket's submitter.
type FollowUp struct {
	id            uint
	ticketID      uint
	submittedByID *uint
	comment       string
	commentHTML   string
	action        vo.FollowUpAction
	private       bool
	createdAt     time.Time
}

func NewFollowUp(ticketID, submittedByID uint, comment string, action vo.FollowUpAction, private bool) (*FollowUp, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, ErrCommentRequired
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid follow-up action: %s", action)
	}

	var by *uint
	if submittedByID != 0 {
		by = &submittedByID
	}
	return &FollowUp{
		ticketID:      ticketID,
		submittedByID: by,
		comment:       comment,
		action:        action,
		private:       private,
		createdAt:     time.Now().UTC(),
	}, nil
}

func ReconstructFollowUp(
	id, ticketID uint,
	submittedByID *uint,
	comment, commentHTML string,
	action vo.FollowUpAction,
	private bool,
	createdAt time.Time,
) (*FollowUp, error) {
	if id == 0 {
		return nil, fmt.Errorf("follow-up ID cannot be zero")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid follow-up action: %s", action)
	}
	return &FollowUp{
		id:            id,
		ticketID:      ticketID,
		submittedByID: submittedByID,
		comment:       comment,
		commentHTML:   commentHTML,
		action:        action,
		private:       private,
		createdAt:     createdAt,
	}, nil
}

func (f *FollowUp) ID() uint                  { return f.id }
func (f *FollowUp) TicketID() uint            { return f.ticketID }
func (f *FollowUp) SubmittedByID() *uint      { return f.submittedByID }
func (f *FollowUp) Comment() string           { return f.comment }
func (f *FollowUp) CommentHTML() string       { return f.commentHTML }
func (f *FollowUp) Action() vo.FollowUpAction { return f.action }
func (f *FollowUp) IsPrivate() bool           { return f.private }
func (f *FollowUp) CreatedAt() time.Time      { return f.createdAt }

func (f *FollowUp) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("follow-up ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("follow-up ID cannot be zero")
	}
	f.id = id
	return nil
}

func (f *FollowUp) SetRenderedComment(html string) {
	f.commentHTML = html
}
