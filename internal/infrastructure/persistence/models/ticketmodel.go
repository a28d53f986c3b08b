package models

import (
	"gorm.io/datatypes"
)

// TicketModel is the persistence shape of ticket.Ticket. Relations are kept
// as plain id columns and resolved by the application layer.
type TicketModel struct {
	ID              uint           `gorm:"primaryKey"`
	Title           string         `gorm:"size:80;not null"`
	Description     string         `gorm:"type:text;not null"`
	DescriptionHTML string         `gorm:"column:description_html;type:text;not null"`
	Status          string         `gorm:"size:20;not null;index"`
	TicketType      string         `gorm:"size:20;not null;index"`
	Priority        int            `gorm:"not null;index"`
	ApplicationID   uint           `gorm:"not null;index"`
	SubmittedByID   *uint          `gorm:"index"`
	AssignedToID    *uint          `gorm:"index"`
	ParentID        *uint          `gorm:"index"`
	Votes           int            `gorm:"not null;default:0"`
	Active          bool           `gorm:"not null;default:true;index"`
	Tags            datatypes.JSON `gorm:"type:json"`
	CreatedAt       int64          `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt       int64          `gorm:"autoUpdateTime:milli;not null"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

type FollowUpModel struct {
	ID            uint   `gorm:"primaryKey"`
	TicketID      uint   `gorm:"not null;index"`
	SubmittedByID *uint  `gorm:"index"`
	Comment       string `gorm:"type:text;not null"`
	CommentHTML   string `gorm:"column:comment_html;type:text;not null"`
	Action        string `gorm:"size:20;not null;default:no_action"`
	Private       bool   `gorm:"not null;default:false"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (FollowUpModel) TableName() string {
	return "ticket_followups"
}

type TicketDuplicateModel struct {
	ID         uint  `gorm:"primaryKey"`
	TicketID   uint  `gorm:"not null;index"`
	OriginalID uint  `gorm:"not null;index"`
	CreatedAt  int64 `gorm:"autoCreateTime:milli;not null"`
}

func (TicketDuplicateModel) TableName() string {
	return "ticket_duplicates"
}

// UserVoteLogModel allows one row per user, ticket and direction.
type UserVoteLogModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:uk_vote_user_ticket_direction,priority:1"`
	TicketID  uint   `gorm:"not null;uniqueIndex:uk_vote_user_ticket_direction,priority:2;index"`
	Direction string `gorm:"size:10;not null;uniqueIndex:uk_vote_user_ticket_direction,priority:3"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (UserVoteLogModel) TableName() string {
	return "user_vote_logs"
}

type ApplicationModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:20;not null"`
	Slug string `gorm:"size:50;not null;uniqueIndex"`
}

func (ApplicationModel) TableName() string {
	return "applications"
}
