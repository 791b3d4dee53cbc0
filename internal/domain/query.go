package domain

import (
	"time"

	"github.com/google/uuid"
)

// Query is one user-submitted question. Answer fields stay nil until an
// agent response is correlated to it; answering again overwrites them.
type Query struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	QueryText    string     `gorm:"type:text;not null;column:query_text" json:"query_text"`
	ResponseText *string    `gorm:"type:text;column:response_text" json:"response_text,omitempty"`
	ResponseTime *time.Time `gorm:"column:response_time" json:"response_time,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;index" json:"created_at"`
}

func (Query) TableName() string { return "users_queries" }

func (q *Query) Answered() bool { return q != nil && q.ResponseText != nil }
