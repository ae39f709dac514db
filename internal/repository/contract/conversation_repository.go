package contract

import (
	"context"

	"rag-assistant-be/internal/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	// FindBySessionId returns turns in ascending timestamp order.
	FindBySessionId(ctx context.Context, sessionId string) ([]*entity.ConversationTurn, error)
	// ListSessionIds returns every session id seen in the store, most
	// recently active first.
	ListSessionIds(ctx context.Context) ([]string, error)
}
