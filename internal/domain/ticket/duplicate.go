package ticket

import (
	"fmt"
	"time"
)

// Duplicate links a ticket to the original it repeats.
type Duplicate struct {
	id         uint
	ticketID   uint
	originalID uint
	createdAt  time.Time
}

func NewDuplicate(ticketID, originalID uint) (*Duplicate, error) {
	if ticketID == 0 || originalID == 0 {
		return nil, fmt.Errorf("both ticket and original are required")
	}
	if ticketID == originalID {
		return nil, ErrSelfDuplicate
	}
	return &Duplicate{ticketID: ticketID, originalID: originalID, createdAt: time.Now().UTC()}, nil
}

func ReconstructDuplicate(id, ticketID, originalID uint, createdAt time.Time) *Duplicate {
	return &Duplicate{id: id, ticketID: ticketID, originalID: originalID, createdAt: createdAt}
}

func (d *Duplicate) ID() uint             { return d.id }
func (d *Duplicate) TicketID() uint       { return d.ticketID }
func (d *Duplicate) OriginalID() uint     { return d.originalID }
func (d *Duplicate) CreatedAt() time.Time { return d.createdAt }

func (d *Duplicate) SetID(id uint) {
	d.id = id
}
