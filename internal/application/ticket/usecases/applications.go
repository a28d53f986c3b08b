package usecases

import (
	"context"

	"tickettracker/internal/application/ticket/dto"
	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/shared/authorization"
	apperrors "tickettracker/internal/shared/errors"
	"tickettracker/internal/shared/logger"
	"tickettracker/internal/shared/mapper"
	"tickettracker/internal/shared/utils"
)

type CreateApplicationCommand struct {
	Actor *user.User `json:"-"`
	Name  string     `json:"name" validate:"required,max=20"`
}

type CreateApplicationUseCase struct {
	appRepo ticket.ApplicationRepository
	policy  *authorization.TicketPolicy
	logger  logger.Interface
}

func NewCreateApplicationUseCase(
	appRepo ticket.ApplicationRepository,
	policy *authorization.TicketPolicy,
	logger logger.Interface,
) *CreateApplicationUseCase {
	return &CreateApplicationUseCase{appRepo: appRepo, policy: policy, logger: logger}
}

func (uc *CreateApplicationUseCase) Execute(ctx context.Context, cmd CreateApplicationCommand) (*dto.ApplicationDTO, error) {
	uc.logger.Infow("executing create application use case", "name", cmd.Name, "user_id", actorID(cmd.Actor))

	if err := authorize(uc.policy, cmd.Actor, authorization.ActionManageApplications, nil); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	app, err := ticket.NewApplication(cmd.Name)
	if err != nil {
		return nil, domainError(err)
	}
	if err := uc.appRepo.Save(ctx, app); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("an application with this name already exists", app.Slug())
		}
		uc.logger.Errorw("failed to create application", "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("application created successfully", "application_id", app.ID(), "slug", app.Slug())
	result := dto.ToApplicationDTO(app)
	return &result, nil
}

type ListApplicationsUseCase struct {
	appRepo ticket.ApplicationRepository
	logger  logger.Interface
}

func NewListApplicationsUseCase(appRepo ticket.ApplicationRepository, logger logger.Interface) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{appRepo: appRepo, logger: logger}
}

func (uc *ListApplicationsUseCase) Execute(ctx context.Context) ([]dto.ApplicationDTO, error) {
	apps, err := uc.appRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list applications", "error", err)
		return nil, err
	}
	out := mapper.MapSlice(apps, dto.ToApplicationDTO)
	if out == nil {
		out = []dto.ApplicationDTO{}
	}
	return out, nil
}

// ListStaffUseCase returns the users tickets may be assigned to.
type ListStaffUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListStaffUseCase(userRepo user.Repository, logger logger.Interface) *ListStaffUseCase {
	return &ListStaffUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListStaffUseCase) Execute(ctx context.Context) ([]dto.UserDTO, error) {
	staff, err := uc.userRepo.ListStaff(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list staff", "error", err)
		return nil, err
	}
	out := mapper.MapSlice(staff, dto.ToUserDTO)
	if out == nil {
		out = []dto.UserDTO{}
	}
	return out, nil
}
