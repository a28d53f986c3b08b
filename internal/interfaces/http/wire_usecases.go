package http

import (
	"tickettracker/internal/application/ticket/usecases"
)

type allUseCases struct {
	createTicket      *usecases.CreateTicketUseCase
	updateTicket      *usecases.UpdateTicketUseCase
	acceptTicket      *usecases.AcceptTicketUseCase
	assignTicket      *usecases.AssignTicketUseCase
	closeTicket       *usecases.CloseTicketUseCase
	reopenTicket      *usecases.ReopenTicketUseCase
	addComment        *usecases.AddCommentUseCase
	splitTicket       *usecases.SplitTicketUseCase
	voteTicket        *usecases.VoteTicketUseCase
	getTicket         *usecases.GetTicketUseCase
	listTickets       *usecases.ListTicketsUseCase
	setTicketActive   *usecases.SetTicketActiveUseCase
	createApplication *usecases.CreateApplicationUseCase
	listApplications  *usecases.ListApplicationsUseCase
	listStaff         *usecases.ListStaffUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	log := c.log.Named("usecase")

	return &allUseCases{
		createTicket:      usecases.NewCreateTicketUseCase(r.ticketRepo, r.appRepo, c.txMgr, c.dispatcher, c.policy, log),
		updateTicket:      usecases.NewUpdateTicketUseCase(r.ticketRepo, r.appRepo, c.policy, log),
		acceptTicket:      usecases.NewAcceptTicketUseCase(r.ticketRepo, r.followUpRepo, c.txMgr, c.dispatcher, c.policy, log),
		assignTicket:      usecases.NewAssignTicketUseCase(r.ticketRepo, r.followUpRepo, r.userRepo, c.txMgr, c.dispatcher, c.policy, log),
		closeTicket:       usecases.NewCloseTicketUseCase(r.ticketRepo, r.followUpRepo, r.duplicateRepo, c.txMgr, c.dispatcher, c.policy, log),
		reopenTicket:      usecases.NewReopenTicketUseCase(r.ticketRepo, r.followUpRepo, c.txMgr, c.dispatcher, c.policy, log),
		addComment:        usecases.NewAddCommentUseCase(r.ticketRepo, r.followUpRepo, c.dispatcher, c.policy, log),
		splitTicket:       usecases.NewSplitTicketUseCase(r.ticketRepo, r.followUpRepo, r.appRepo, r.userRepo, c.txMgr, c.dispatcher, c.policy, log),
		voteTicket:        usecases.NewVoteTicketUseCase(r.ticketRepo, r.voteRepo, c.txMgr, c.policy, log),
		getTicket:         usecases.NewGetTicketUseCase(r.ticketRepo, r.followUpRepo, r.duplicateRepo, c.policy, log),
		listTickets:       usecases.NewListTicketsUseCase(r.ticketRepo, r.userRepo, c.policy, log),
		setTicketActive:   usecases.NewSetTicketActiveUseCase(r.ticketRepo, c.policy, log),
		createApplication: usecases.NewCreateApplicationUseCase(r.appRepo, c.policy, log),
		listApplications:  usecases.NewListApplicationsUseCase(r.appRepo, log),
		listStaff:         usecases.NewListStaffUseCase(r.userRepo, log),
	}
}
