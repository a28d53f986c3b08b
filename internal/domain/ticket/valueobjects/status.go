package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusNew       TicketStatus = "new"
	StatusAccepted  TicketStatus = "accepted"
	StatusAssigned  TicketStatus = "assigned"
	StatusReopened  TicketStatus = "re-opened"
	StatusClosed    TicketStatus = "closed"
	StatusDuplicate TicketStatus = "duplicate"
	StatusSplit     TicketStatus = "split"
)

var statusLabels = map[TicketStatus]string{
	StatusNew:       "New",
	StatusAccepted:  "Accepted",
	StatusAssigned:  "Assigned",
	StatusReopened:  "Re-Opened",
	StatusClosed:    "Closed",
	StatusDuplicate: "Closed - Duplicate",
	StatusSplit:     "Closed - Split",
}

// ClosedStatuses are the statuses for which IsClosed is true.
var ClosedStatuses = []TicketStatus{StatusClosed, StatusDuplicate, StatusSplit}

// OpenStatuses are every status that is not closed.
var OpenStatuses = []TicketStatus{StatusNew, StatusAccepted, StatusAssigned, StatusReopened}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) Label() string {
	return statusLabels[ts]
}

func (ts TicketStatus) IsValid() bool {
	_, ok := statusLabels[ts]
	return ok
}

// IsClosed is true for closed, duplicate and split.
func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed || ts == StatusDuplicate || ts == StatusSplit
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
