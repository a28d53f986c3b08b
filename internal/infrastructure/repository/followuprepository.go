package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/infrastructure/persistence/mappers"
	"tickettracker/internal/infrastructure/persistence/models"
	"tickettracker/internal/shared/db"
	"tickettracker/internal/shared/services/markdown"
)

type FollowUpRepository struct {
	db       *gorm.DB
	renderer markdown.Renderer
}

func NewFollowUpRepository(db *gorm.DB, renderer markdown.Renderer) *FollowUpRepository {
	return &FollowUpRepository{db: db, renderer: renderer}
}

// Save renders the comment and inserts the follow-up.
func (r *FollowUpRepository) Save(ctx context.Context, f *ticket.FollowUp) error {
	html, err := r.renderer.Render(f.Comment())
	if err != nil {
		return fmt.Errorf("failed to render comment: %w", err)
	}
	f.SetRenderedComment(html)

	model := mappers.FollowUpToModel(f)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save follow-up: %w", err)
	}
	return f.SetID(model.ID)
}

// ListPublic returns the ticket's non-private follow-ups, newest first.
func (r *FollowUpRepository) ListPublic(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error) {
	return r.list(ctx, ticketID, true)
}

// ListAll returns every follow-up of the ticket, newest first.
func (r *FollowUpRepository) ListAll(ctx context.Context, ticketID uint) ([]*ticket.FollowUp, error) {
	return r.list(ctx, ticketID, false)
}

func (r *FollowUpRepository) list(ctx context.Context, ticketID uint, publicOnly bool) ([]*ticket.FollowUp, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID)
	if publicOnly {
		query = query.Where("private = ?", false)
	}

	var rows []models.FollowUpModel
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list follow-ups: %w", err)
	}

	out := make([]*ticket.FollowUp, 0, len(rows))
	for i := range rows {
		f, err := mappers.FollowUpToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
