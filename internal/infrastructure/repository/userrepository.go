package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tickettracker/internal/domain/user"
	"tickettracker/internal/infrastructure/persistence/mappers"
	"tickettracker/internal/infrastructure/persistence/models"
	"tickettracker/internal/shared/db"
)

// GroupResolver answers current group membership for a user.
type GroupResolver interface {
	GroupsOf(ctx context.Context, userID uint) ([]string, error)
}

type UserRepository struct {
	db     *gorm.DB
	groups GroupResolver
}

func NewUserRepository(db *gorm.DB, groups GroupResolver) *UserRepository {
	return &UserRepository{db: db, groups: groups}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return u.SetID(model.ID)
}

// GetByID loads the user with the group membership stored right now.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) first(ctx context.Context, cond string, arg any) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %v: %w", arg, user.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var groups []string
	if r.groups != nil {
		g, err := r.groups.GroupsOf(ctx, model.ID)
		if err != nil {
			return nil, err
		}
		groups = g
	}
	return mappers.UserToDomain(&model, groups), nil
}

// ListStaff returns active staff without group data; it feeds assignee
// choices only.
func (r *UserRepository) ListStaff(ctx context.Context) ([]*user.User, error) {
	var rows []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("is_staff = ? AND is_active = ?", true, true).
		Order("username ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	out := make([]*user.User, len(rows))
	for i := range rows {
		out[i] = mappers.UserToDomain(&rows[i], nil)
	}
	return out, nil
}
