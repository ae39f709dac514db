package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId string    `gorm:"type:text;not null;index"`
	Question  string    `gorm:"type:text"`
	Answer    string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`
}

func (Conversation) TableName() string {
	return "conversations"
}
