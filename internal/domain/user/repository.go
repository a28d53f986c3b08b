package user

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) error
	// GetByID loads the user together with its current group membership.
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// ListStaff returns active staff users ordered by username.
	ListStaff(ctx context.Context) ([]*User, error)
}

// GroupManager maintains group membership.
type GroupManager interface {
	AddToGroup(ctx context.Context, userID uint, group string) error
	RemoveFromGroup(ctx context.Context, userID uint, group string) error
}
