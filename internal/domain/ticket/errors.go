package ticket

import "errors"

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrApplicationNotFound = errors.New("application not found")

	ErrSelfDuplicate   = errors.New("a ticket cannot duplicate itself")
	ErrCommentRequired = errors.New("comment is required")
)
