package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:64;uniqueIndex;not null;column:username" json:"username"`
	Password  string    `gorm:"size:256;not null;column:password" json:"-"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (User) TableName() string { return "users" }
