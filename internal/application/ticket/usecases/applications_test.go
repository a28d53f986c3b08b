package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	apperrors "tickettracker/internal/shared/errors"
)

func TestCreateApplicationUseCase_Execute(t *testing.T) {
	t.Run("admin creates application", func(t *testing.T) {
		uc := NewCreateApplicationUseCase(&mockApplicationRepository{}, authorization.NewTicketPolicy(), &mockLogger{})

		result, err := uc.Execute(context.Background(), CreateApplicationCommand{Actor: adminUser, Name: "Web Portal"})

		require.NoError(t, err)
		assert.Equal(t, "Web Portal", result.Name)
		assert.Equal(t, "web-portal", result.Slug)
	})

	t.Run("non-admin denied", func(t *testing.T) {
		uc := NewCreateApplicationUseCase(&mockApplicationRepository{}, authorization.NewTicketPolicy(), &mockLogger{})

		_, err := uc.Execute(context.Background(), CreateApplicationCommand{Actor: otherUser, Name: "Web Portal"})

		assert.True(t, apperrors.IsForbiddenError(err))
	})

	t.Run("name too long", func(t *testing.T) {
		uc := NewCreateApplicationUseCase(&mockApplicationRepository{}, authorization.NewTicketPolicy(), &mockLogger{})

		_, err := uc.Execute(context.Background(), CreateApplicationCommand{Actor: adminUser, Name: "An Application Name That Is Long"})

		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		repo := &mockApplicationRepository{
			SaveFunc: func(context.Context, *ticket.Application) error {
				return errors.New("UNIQUE constraint failed: applications.slug")
			},
		}
		uc := NewCreateApplicationUseCase(repo, authorization.NewTicketPolicy(), &mockLogger{})

		_, err := uc.Execute(context.Background(), CreateApplicationCommand{Actor: adminUser, Name: "Web Portal"})

		assert.True(t, apperrors.IsConflictError(err))
	})
}

func TestListApplicationsUseCase_Execute(t *testing.T) {
	repo := &mockApplicationRepository{}
	uc := NewListApplicationsUseCase(repo, &mockLogger{})

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)

	repo.ListFunc = func(context.Context) ([]*ticket.Application, error) {
		return []*ticket.Application{ticket.ReconstructApplication(1, "API", "api")}, nil
	}
	result, err = uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "api", result[0].Slug)
}

func TestListStaffUseCase_Execute(t *testing.T) {
	uc := NewListStaffUseCase(newMockUserRepository(adminUser, otherUser, staffMember), &mockLogger{})

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	usernames := make([]string, 0, len(result))
	for _, u := range result {
		usernames = append(usernames, u.Username)
	}
	assert.ElementsMatch(t, []string{adminUser.Username(), staffMember.Username()}, usernames)
}

var _ user.Repository = (*mockUserRepository)(nil)
