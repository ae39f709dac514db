package contract

import (
	"context"

	"rag-assistant-be/internal/entity"
)

type DocumentRepository interface {
	CreateBulk(ctx context.Context, documents []*entity.Document) error
	// FindBySessionId returns documents in ascending upload order.
	FindBySessionId(ctx context.Context, sessionId string) ([]*entity.Document, error)
}
