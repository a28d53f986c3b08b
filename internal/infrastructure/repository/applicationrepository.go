package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/infrastructure/persistence/mappers"
	"tickettracker/internal/infrastructure/persistence/models"
	"tickettracker/internal/shared/db"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Save inserts new applications and updates existing ones.
func (r *ApplicationRepository) Save(ctx context.Context, app *ticket.Application) error {
	model := &models.ApplicationModel{ID: app.ID(), Name: app.Name(), Slug: app.Slug()}
	tx := db.GetTxFromContext(ctx, r.db)

	if app.ID() == 0 {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save application: %w", err)
		}
		app.SetID(model.ID)
		return nil
	}
	if err := tx.Model(model).Select("name", "slug").Updates(model).Error; err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint) (*ticket.Application, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ApplicationRepository) GetBySlug(ctx context.Context, slug string) (*ticket.Application, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *ApplicationRepository) first(ctx context.Context, cond string, arg any) (*ticket.Application, error) {
	var model models.ApplicationModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %v: %w", arg, ticket.ErrApplicationNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return mappers.ApplicationToDomain(&model), nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*ticket.Application, error) {
	var rows []models.ApplicationModel
	if err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	out := make([]*ticket.Application, len(rows))
	for i := range rows {
		out[i] = mappers.ApplicationToDomain(&rows[i])
	}
	return out, nil
}
