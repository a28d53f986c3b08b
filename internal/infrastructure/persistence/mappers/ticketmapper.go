package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"tickettracker/internal/domain/ticket"
	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/infrastructure/persistence/models"
)

// TicketMapper converts between the ticket aggregate and its rows.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) (*models.TicketModel, error)
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(ms []models.TicketModel) ([]*ticket.Ticket, error)
}

type ticketMapper struct{}

func NewTicketMapper() TicketMapper {
	return &ticketMapper{}
}

func (m *ticketMapper) ToModel(t *ticket.Ticket) (*models.TicketModel, error) {
	tags, err := json.Marshal(t.Tags())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return &models.TicketModel{
		ID:              t.ID(),
		Title:           t.Title(),
		Description:     t.Description(),
		DescriptionHTML: t.DescriptionHTML(),
		Status:          t.Status().String(),
		TicketType:      t.Type().String(),
		Priority:        t.Priority().Int(),
		ApplicationID:   t.ApplicationID(),
		SubmittedByID:   t.SubmittedByID(),
		AssignedToID:    t.AssignedToID(),
		ParentID:        t.ParentID(),
		Votes:           t.Votes(),
		Active:          t.IsActive(),
		Tags:            datatypes.JSON(tags),
		CreatedAt:       t.CreatedAt().UnixMilli(),
		UpdatedAt:       t.UpdatedAt().UnixMilli(),
	}, nil
}

func (m *ticketMapper) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	var tags []string
	if len(model.Tags) > 0 {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of ticket %d: %w", model.ID, err)
		}
	}

	t, err := ticket.ReconstructTicket(
		model.ID,
		ticket.Fields{
			Title:         model.Title,
			Description:   model.Description,
			Type:          vo.TicketType(model.TicketType),
			Priority:      vo.Priority(model.Priority),
			ApplicationID: model.ApplicationID,
			Tags:          tags,
		},
		model.DescriptionHTML,
		vo.TicketStatus(model.Status),
		model.SubmittedByID,
		model.AssignedToID,
		model.ParentID,
		model.Votes,
		model.Active,
		time.UnixMilli(model.CreatedAt).UTC(),
		time.UnixMilli(model.UpdatedAt).UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %d: %w", model.ID, err)
	}
	return t, nil
}

func (m *ticketMapper) ToDomainList(ms []models.TicketModel) ([]*ticket.Ticket, error) {
	out := make([]*ticket.Ticket, 0, len(ms))
	for i := range ms {
		t, err := m.ToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func FollowUpToModel(f *ticket.FollowUp) *models.FollowUpModel {
	return &models.FollowUpModel{
		ID:            f.ID(),
		TicketID:      f.TicketID(),
		SubmittedByID: f.SubmittedByID(),
		Comment:       f.Comment(),
		CommentHTML:   f.CommentHTML(),
		Action:        f.Action().String(),
		Private:       f.IsPrivate(),
		CreatedAt:     f.CreatedAt().UnixMilli(),
	}
}

func FollowUpToDomain(model *models.FollowUpModel) (*ticket.FollowUp, error) {
	return ticket.ReconstructFollowUp(
		model.ID,
		model.TicketID,
		model.SubmittedByID,
		model.Comment,
		model.CommentHTML,
		vo.FollowUpAction(model.Action),
		model.Private,
		time.UnixMilli(model.CreatedAt).UTC(),
	)
}

func DuplicateToDomain(model *models.TicketDuplicateModel) *ticket.Duplicate {
	return ticket.ReconstructDuplicate(model.ID, model.TicketID, model.OriginalID, time.UnixMilli(model.CreatedAt).UTC())
}

func ApplicationToDomain(model *models.ApplicationModel) *ticket.Application {
	return ticket.ReconstructApplication(model.ID, model.Name, model.Slug)
}
