package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/infrastructure/persistence/mappers"
	"tickettracker/internal/infrastructure/persistence/models"
	"tickettracker/internal/shared/db"
	"tickettracker/internal/shared/services/markdown"
)

// TicketRepository persists tickets and refreshes description_html from the
// description on every write.
type TicketRepository struct {
	db       *gorm.DB
	mapper   mappers.TicketMapper
	renderer markdown.Renderer
}

func NewTicketRepository(db *gorm.DB, renderer markdown.Renderer) *TicketRepository {
	return &TicketRepository{
		db:       db,
		mapper:   mappers.NewTicketMapper(),
		renderer: renderer,
	}
}

func (r *TicketRepository) render(t *ticket.Ticket) error {
	html, err := r.renderer.Render(t.Description())
	if err != nil {
		return fmt.Errorf("failed to render ticket description: %w", err)
	}
	t.SetRenderedDescription(html)
	return nil
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if err := r.render(t); err != nil {
		return err
	}
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	return t.SetID(model.ID)
}

// Update writes every column except the identity, creation time and vote
// counter. Votes only move through AdjustVotes.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if err := r.render(t); err != nil {
		return err
	}
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{ID: model.ID}).
		Select("*").
		Omit("id", "created_at", "votes").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	// RowsAffected may be 0 on mysql when nothing changed, so it is not checked.
	return nil
}

func (r *TicketRepository) GetActiveByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.get(ctx, id, true)
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.get(ctx, id, false)
}

func (r *TicketRepository) get(ctx context.Context, id uint, activeOnly bool) (*ticket.Ticket, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})
	if activeOnly {
		query = query.Scopes(db.OnlyActive(""))
	}

	var model models.TicketModel
	if err := query.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ticket %d: %w", id, ticket.ErrTicketNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) ListActive(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return r.list(ctx, filter, true)
}

func (r *TicketRepository) ListAll(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return r.list(ctx, filter, false)
}

func (r *TicketRepository) list(ctx context.Context, filter ticket.TicketFilter, activeOnly bool) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})
	if activeOnly {
		query = query.Scopes(db.OnlyActive("tickets"))
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		query = query.Where("tickets.status IN ?", statuses)
	}
	if filter.Type != nil {
		query = query.Where("tickets.ticket_type = ?", filter.Type.String())
	}
	if filter.Priority != nil {
		query = query.Where("tickets.priority = ?", filter.Priority.Int())
	}
	if filter.ApplicationSlug != "" {
		apps := tx.Model(&models.ApplicationModel{}).Select("id").Where("slug = ?", filter.ApplicationSlug)
		query = query.Where("tickets.application_id IN (?)", apps)
	}
	if filter.AssignedToID != nil {
		query = query.Where("tickets.assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.SubmittedByID != nil {
		query = query.Where("tickets.submitted_by_id = ?", *filter.SubmittedByID)
	}
	if filter.OwnerID != nil {
		query = query.Where("(tickets.submitted_by_id = ? OR tickets.assigned_to_id = ?)", *filter.OwnerID, *filter.OwnerID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + escapeLike(q) + "%"
		query = query.Where("(tickets.title LIKE ? ESCAPE '!' OR tickets.description LIKE ? ESCAPE '!')", like, like)
	}
	if tag := strings.ToLower(strings.TrimSpace(filter.Tag)); tag != "" {
		query = query.Where("tickets.tags LIKE ? ESCAPE '!'", `%"`+escapeLike(tag)+`"%`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var rows []models.TicketModel
	if err := query.
		Order("tickets.created_at DESC").
		Order("tickets.id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketRepository) ListChildren(ctx context.Context, parentID uint) ([]*ticket.Ticket, error) {
	var rows []models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OnlyActive("")).
		Where("parent_id = ?", parentID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list child tickets: %w", err)
	}
	return r.mapper.ToDomainList(rows)
}

func (r *TicketRepository) AdjustVotes(ctx context.Context, id uint, delta int) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	expr := gorm.Expr("CASE WHEN votes + ? < 0 THEN 0 ELSE votes + ? END", delta, delta)
	result := tx.Model(&models.TicketModel{}).Where("id = ?", id).UpdateColumn("votes", expr)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to adjust votes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := tx.Model(&models.TicketModel{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return 0, fmt.Errorf("failed to check ticket: %w", err)
		}
		if exists == 0 {
			return 0, fmt.Errorf("ticket %d: %w", id, ticket.ErrTicketNotFound)
		}
	}

	var model models.TicketModel
	if err := tx.Select("votes").Where("id = ?", id).Take(&model).Error; err != nil {
		return 0, fmt.Errorf("failed to read votes: %w", err)
	}
	return model.Votes, nil
}

// escapeLike escapes LIKE wildcards with '!', which both mysql and sqlite
// accept as an ESCAPE character.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
