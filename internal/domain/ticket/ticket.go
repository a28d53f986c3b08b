package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"tickettracker/internal/domain/shared/events"
	vo "tickettracker/internal/domain/ticket/valueobjects"
)

const MaxTitleLength = 80

// Ticket is the lifecycle aggregate. descriptionHTML is a cache derived from
// description by the persistence layer on every save.
type Ticket struct {
	id              uint
	title           string
	description     string
	descriptionHTML string
	status          vo.TicketStatus
	ticketType      vo.TicketType
	priority        vo.Priority
	applicationID   uint
	submittedByID   *uint
	assignedToID    *uint
	parentID        *uint
	votes           int
	active          bool
	tags            []string
	createdAt       time.Time
	updatedAt       time.Time

	events []events.DomainEvent
}

// Fields carries the user editable part of a ticket.
type Fields struct {
	Title         string
	Description   string
	Type          vo.TicketType
	Priority      vo.Priority
	ApplicationID uint
	Tags          []string
}

func (f Fields) validate() error {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLength)
	}
	if strings.TrimSpace(f.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if !f.Type.IsValid() {
		return fmt.Errorf("invalid ticket type: %s", f.Type)
	}
	if !f.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %d", f.Priority)
	}
	if f.ApplicationID == 0 {
		return fmt.Errorf("application is required")
	}
	return nil
}

// NewTicket opens a ticket in status new on behalf of submitterID.
func NewTicket(f Fields, submitterID uint) (*Ticket, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	if submitterID == 0 {
		return nil, fmt.Errorf("submitter is required")
	}

	now := time.Now().UTC()
	return &Ticket{
		title:         strings.TrimSpace(f.Title),
		description:   f.Description,
		status:        vo.StatusNew,
		ticketType:    f.Type,
		priority:      f.Priority,
		applicationID: f.ApplicationID,
		submittedByID: &submitterID,
		active:        true,
		tags:          normalizeTags(f.Tags),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructTicket rebuilds a ticket from persistence without validation of
// business rules beyond basic consistency.
func ReconstructTicket(
	id uint,
	f Fields,
	descriptionHTML string,
	status vo.TicketStatus,
	submittedByID, assignedToID, parentID *uint,
	votes int,
	active bool,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !f.Type.IsValid() {
		return nil, fmt.Errorf("invalid ticket type: %s", f.Type)
	}
	if !f.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %d", f.Priority)
	}
	if votes < 0 {
		votes = 0
	}

	return &Ticket{
		id:              id,
		title:           f.Title,
		description:     f.Description,
		descriptionHTML: descriptionHTML,
		status:          status,
		ticketType:      f.Type,
		priority:        f.Priority,
		applicationID:   f.ApplicationID,
		submittedByID:   submittedByID,
		assignedToID:    assignedToID,
		parentID:        parentID,
		votes:           votes,
		active:          active,
		tags:            normalizeTags(f.Tags),
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                { return t.id }
func (t *Ticket) Title() string           { return t.title }
func (t *Ticket) Description() string     { return t.description }
func (t *Ticket) DescriptionHTML() string { return t.descriptionHTML }
func (t *Ticket) Status() vo.TicketStatus { return t.status }
func (t *Ticket) Type() vo.TicketType     { return t.ticketType }
func (t *Ticket) Priority() vo.Priority   { return t.priority }
func (t *Ticket) ApplicationID() uint     { return t.applicationID }
func (t *Ticket) SubmittedByID() *uint    { return t.submittedByID }
func (t *Ticket) AssignedToID() *uint     { return t.assignedToID }
func (t *Ticket) ParentID() *uint         { return t.parentID }
func (t *Ticket) Votes() int              { return t.votes }
func (t *Ticket) IsActive() bool          { return t.active }
func (t *Ticket) CreatedAt() time.Time    { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time    { return t.updatedAt }
func (t *Ticket) IsClosed() bool          { return t.status.IsClosed() }

func (t *Ticket) Tags() []string {
	out := make([]string, len(t.tags))
	copy(out, t.tags)
	return out
}

// IsSubmittedBy reports whether userID opened the ticket.
func (t *Ticket) IsSubmittedBy(userID uint) bool {
	return userID != 0 && t.submittedByID != nil && *t.submittedByID == userID
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetRenderedDescription stores the HTML rendered from the current description.
func (t *Ticket) SetRenderedDescription(html string) {
	t.descriptionHTML = html
}

// Edit replaces the user editable fields. Status is untouched.
func (t *Ticket) Edit(f Fields) error {
	if err := f.validate(); err != nil {
		return err
	}
	t.title = strings.TrimSpace(f.Title)
	t.description = f.Description
	t.ticketType = f.Type
	t.priority = f.Priority
	t.applicationID = f.ApplicationID
	t.tags = normalizeTags(f.Tags)
	t.touch()
	return nil
}

// Accept moves the ticket to accepted. A non-admin actor takes ownership.
func (t *Ticket) Accept(actorID uint, actorIsAdmin bool) {
	t.setStatus(vo.StatusAccepted)
	if !actorIsAdmin {
		t.assignedToID = &actorID
	}
	t.record(EventTicketAccepted, actorID)
}

// AssignTo hands the ticket to assigneeID and moves it to assigned.
func (t *Ticket) AssignTo(assigneeID, actorID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	t.setStatus(vo.StatusAssigned)
	t.assignedToID = &assigneeID
	t.record(EventTicketAssigned, actorID)
	return nil
}

// Close applies from any status, including an already closed one.
func (t *Ticket) Close(actorID uint) {
	t.setStatus(vo.StatusClosed)
	t.record(EventTicketClosed, actorID)
}

// CloseAsDuplicate closes the ticket as a repeat of originalID and returns
// the duplicate link to persist.
func (t *Ticket) CloseAsDuplicate(originalID, actorID uint) (*Duplicate, error) {
	if originalID == t.id {
		return nil, ErrSelfDuplicate
	}
	dup, err := NewDuplicate(t.id, originalID)
	if err != nil {
		return nil, err
	}
	t.setStatus(vo.StatusDuplicate)
	t.record(EventTicketClosed, actorID)
	return dup, nil
}

func (t *Ticket) Reopen(actorID uint) {
	t.setStatus(vo.StatusReopened)
	t.record(EventTicketReopened, actorID)
}

// MarkSplit closes the ticket in favour of its children.
func (t *Ticket) MarkSplit(actorID uint) {
	t.setStatus(vo.StatusSplit)
	t.record(EventTicketSplit, actorID)
}

// ChildSpec describes one ticket produced by a split. Zero values inherit
// from the parent.
type ChildSpec struct {
	Title         string
	Description   string
	Status        vo.TicketStatus
	Type          vo.TicketType
	Priority      vo.Priority
	ApplicationID uint
	AssignedToID  *uint
}

// NewChild builds a ticket that descends from t. The child keeps the
// parent's submitter and tags.
func (t *Ticket) NewChild(cs ChildSpec) (*Ticket, error) {
	if t.id == 0 {
		return nil, fmt.Errorf("parent ticket must be persisted first")
	}

	f := Fields{
		Title:         cs.Title,
		Description:   cs.Description,
		Type:          cs.Type,
		Priority:      cs.Priority,
		ApplicationID: cs.ApplicationID,
		Tags:          t.tags,
	}
	if strings.TrimSpace(f.Title) == "" {
		f.Title = t.title
	}
	if f.Type == "" {
		f.Type = t.ticketType
	}
	if f.Priority == 0 {
		f.Priority = t.priority
	}
	if f.ApplicationID == 0 {
		f.ApplicationID = t.applicationID
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	status := cs.Status
	if status == "" {
		status = vo.StatusNew
	}
	if !status.IsValid() || status.IsClosed() {
		return nil, fmt.Errorf("invalid status for a split ticket: %s", status)
	}

	now := time.Now().UTC()
	parentID := t.id
	child := &Ticket{
		title:         strings.TrimSpace(f.Title),
		description:   f.Description,
		status:        status,
		ticketType:    f.Type,
		priority:      f.Priority,
		applicationID: f.ApplicationID,
		assignedToID:  cs.AssignedToID,
		parentID:      &parentID,
		active:        true,
		tags:          normalizeTags(f.Tags),
		createdAt:     now,
		updatedAt:     now,
	}
	if t.submittedByID != nil {
		submitter := *t.submittedByID
		child.submittedByID = &submitter
	}
	return child, nil
}

// UpVote adds one vote. Callers guard against repeat votes.
func (t *Ticket) UpVote() {
	t.votes++
}

// DownVote removes one vote, never going below zero.
func (t *Ticket) DownVote() {
	if t.votes > 0 {
		t.votes--
	}
}

func (t *Ticket) Deactivate() {
	t.active = false
	t.touch()
}

func (t *Ticket) Activate() {
	t.active = true
	t.touch()
}

// Events returns the events recorded since the last ClearEvents.
func (t *Ticket) Events() []events.DomainEvent {
	out := make([]events.DomainEvent, len(t.events))
	copy(out, t.events)
	return out
}

func (t *Ticket) ClearEvents() {
	t.events = nil
}

// RecordCreated queues the creation event once the ticket has an ID.
func (t *Ticket) RecordCreated(actorID uint) {
	t.record(EventTicketCreated, actorID)
}

// RecordComment queues a commented event.
func (t *Ticket) RecordComment(actorID uint, private bool) {
	evt := NewTicketEvent(EventTicketCommented, t, actorID)
	evt.Private = private
	t.events = append(t.events, evt)
}

func (t *Ticket) setStatus(next vo.TicketStatus) {
	t.status = next
	t.touch()
}

func (t *Ticket) record(eventType string, actorID uint) {
	t.events = append(t.events, NewTicketEvent(eventType, t, actorID))
}

func (t *Ticket) touch() {
	t.updatedAt = time.Now().UTC()
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
