package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	vo "tickettracker/internal/domain/ticket/valueobjects"
	"tickettracker/internal/infrastructure/persistence/models"
	"tickettracker/internal/shared/db"
)

// VoteRepository relies on the unique (user, ticket, direction) index: a
// conflicting insert affects no rows and is reported as not recorded.
type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Record(ctx context.Context, userID, ticketID uint, direction vo.VoteDirection) (bool, error) {
	model := &models.UserVoteLogModel{
		UserID:    userID,
		TicketID:  ticketID,
		Direction: string(direction),
		CreatedAt: time.Now().UnixMilli(),
	}
	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to record vote: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *VoteRepository) HasVoted(ctx context.Context, userID, ticketID uint, direction vo.VoteDirection) (bool, error) {
	var n int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserVoteLogModel{}).
		Where("user_id = ? AND ticket_id = ? AND direction = ?", userID, ticketID, string(direction)).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return n > 0, nil
}
