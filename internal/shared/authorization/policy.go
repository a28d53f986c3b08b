package authorization

type Action string

const (
	ActionView               Action = "view"
	ActionViewPrivate        Action = "view_private"
	ActionCreate             Action = "create"
	ActionEdit               Action = "edit"
	ActionAccept             Action = "accept"
	ActionAssign             Action = "assign"
	ActionClose              Action = "close"
	ActionReopen             Action = "reopen"
	ActionSplit              Action = "split"
	ActionComment            Action = "comment"
	ActionCommentPrivate     Action = "comment_private"
	ActionVote               Action = "vote"
	ActionSetActive          Action = "set_active"
	ActionListInactive       Action = "list_inactive"
	ActionManageApplications Action = "manage_applications"
)

type rule int

const (
	anyone rule = iota
	authenticated
	submitterOrAdmin
	adminOnly
)

var rules = map[Action]rule{
	ActionView:               anyone,
	ActionViewPrivate:        submitterOrAdmin,
	ActionCreate:             authenticated,
	ActionEdit:               submitterOrAdmin,
	ActionAccept:             authenticated,
	ActionAssign:             adminOnly,
	ActionClose:              adminOnly,
	ActionReopen:             adminOnly,
	ActionSplit:              adminOnly,
	ActionComment:            authenticated,
	ActionCommentPrivate:     submitterOrAdmin,
	ActionVote:               authenticated,
	ActionSetActive:          adminOnly,
	ActionListInactive:       adminOnly,
	ActionManageApplications: adminOnly,
}

// Resource is the ticket an action targets.
type Resource interface {
	IsSubmittedBy(userID uint) bool
}

// Decision is the outcome of one authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// TicketPolicy answers whether a subject may perform an action.
type TicketPolicy struct{}

func NewTicketPolicy() *TicketPolicy {
	return &TicketPolicy{}
}

// Authorize evaluates action for subject against resource. A nil subject
// is an anonymous viewer; resource may be nil for actions that do not
// target a ticket.
func (p *TicketPolicy) Authorize(subject Subject, action Action, resource Resource) Decision {
	r, ok := rules[action]
	if !ok {
		return deny("unknown action " + string(action))
	}
	if r == anyone {
		return allow()
	}
	if subject == nil || subject.ID() == 0 {
		return deny("authentication required")
	}

	switch r {
	case authenticated:
		return allow()
	case submitterOrAdmin:
		if IsAdmin(subject) {
			return allow()
		}
		if resource != nil && resource.IsSubmittedBy(subject.ID()) {
			return allow()
		}
		return deny("only the submitter or an admin may " + string(action))
	default:
		if IsAdmin(subject) {
			return allow()
		}
		return deny("admin privileges required to " + string(action))
	}
}
