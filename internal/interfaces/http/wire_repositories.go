package http

import (
	"gorm.io/gorm"

	"tickettracker/internal/domain/ticket"
	"tickettracker/internal/domain/user"
	"tickettracker/internal/infrastructure/repository"
	"tickettracker/internal/shared/services/markdown"
)

type repositories struct {
	userRepo      user.Repository
	ticketRepo    ticket.TicketRepository
	followUpRepo  ticket.FollowUpRepository
	duplicateRepo ticket.DuplicateRepository
	voteRepo      ticket.VoteRepository
	appRepo       ticket.ApplicationRepository
}

func newRepositories(db *gorm.DB, renderer markdown.Renderer, groups repository.GroupResolver) *repositories {
	return &repositories{
		userRepo:      repository.NewUserRepository(db, groups),
		ticketRepo:    repository.NewTicketRepository(db, renderer),
		followUpRepo:  repository.NewFollowUpRepository(db, renderer),
		duplicateRepo: repository.NewDuplicateRepository(db),
		voteRepo:      repository.NewVoteRepository(db),
		appRepo:       repository.NewApplicationRepository(db),
	}
}
