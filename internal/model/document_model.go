package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId string    `gorm:"type:text;not null;index"`
	FileName  string    `gorm:"type:text"`
	FilePath  string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
