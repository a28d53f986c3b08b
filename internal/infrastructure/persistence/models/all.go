package models

// All lists every model owned by this service, in creation order.
func All() []any {
	return []any{
		&UserModel{},
		&ApplicationModel{},
		&TicketModel{},
		&FollowUpModel{},
		&TicketDuplicateModel{},
		&UserVoteLogModel{},
	}
}
