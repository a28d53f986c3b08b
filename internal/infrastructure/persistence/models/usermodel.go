package models

import "time"

// UserModel holds identity and privilege flags. Group membership is kept
// by casbin in casbin_rule.
type UserModel struct {
	ID          uint   `gorm:"primarykey"`
	Username    string `gorm:"uniqueIndex;size:150;not null"`
	Email       string `gorm:"size:255"`
	FirstName   string `gorm:"size:150"`
	LastName    string `gorm:"size:150"`
	IsStaff     bool   `gorm:"not null;default:false;index"`
	IsSuperuser bool   `gorm:"not null;default:false"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserModel) TableName() string {
	return "users"
}
