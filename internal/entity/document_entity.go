package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is the metadata of one uploaded file. A document belongs to
// exactly one session and is immutable after upload.
type Document struct {
	Id        uuid.UUID
	SessionId string
	FileName  string
	FilePath  string
	Timestamp time.Time
}
