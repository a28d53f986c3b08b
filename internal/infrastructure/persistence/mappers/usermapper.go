package mappers

import (
	"tickettracker/internal/domain/user"
	"tickettracker/internal/infrastructure/persistence/models"
)

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:          u.ID(),
		Username:    u.Username(),
		Email:       u.Email(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		IsStaff:     u.IsStaff(),
		IsSuperuser: u.IsSuperuser(),
		IsActive:    u.IsActive(),
		CreatedAt:   u.CreatedAt(),
	}
}

// UserToDomain attaches the group names resolved separately for the user.
func UserToDomain(model *models.UserModel, groups []string) *user.User {
	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.Email,
		model.FirstName,
		model.LastName,
		model.IsStaff,
		model.IsSuperuser,
		model.IsActive,
		groups,
		model.CreatedAt,
	)
}
