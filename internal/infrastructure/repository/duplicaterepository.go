package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/infrastructure/persistence/mappers"
	"tickettracker/internal/infrastructure/persistence/models"
	"tickettracker/internal/shared/db"
)

type DuplicateRepository struct {
	db *gorm.DB
}

func NewDuplicateRepository(db *gorm.DB) *DuplicateRepository {
	return &DuplicateRepository{db: db}
}

func (r *DuplicateRepository) Save(ctx context.Context, d *ticket.Duplicate) error {
	model := &models.TicketDuplicateModel{
		TicketID:   d.TicketID(),
		OriginalID: d.OriginalID(),
		CreatedAt:  d.CreatedAt().UnixMilli(),
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save duplicate link: %w", err)
	}
	d.SetID(model.ID)
	return nil
}

func (r *DuplicateRepository) ListDuplicatesOf(ctx context.Context, ticketID uint) ([]*ticket.Duplicate, error) {
	return r.list(ctx, "original_id = ?", ticketID)
}

func (r *DuplicateRepository) ListOriginalsOf(ctx context.Context, ticketID uint) ([]*ticket.Duplicate, error) {
	return r.list(ctx, "ticket_id = ?", ticketID)
}

func (r *DuplicateRepository) list(ctx context.Context, cond string, ticketID uint) ([]*ticket.Duplicate, error) {
	var rows []models.TicketDuplicateModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, ticketID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list duplicate links: %w", err)
	}
	out := make([]*ticket.Duplicate, len(rows))
	for i := range rows {
		out[i] = mappers.DuplicateToDomain(&rows[i])
	}
	return out, nil
}
