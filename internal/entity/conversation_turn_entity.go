package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one question/answer exchange. Turns are append-only
// and replayed in ascending timestamp order.
type ConversationTurn struct {
	Id        uuid.UUID
	SessionId string
	Question  string
	Answer    string
	Timestamp time.Time
}
