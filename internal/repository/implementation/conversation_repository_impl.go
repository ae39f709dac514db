package implementation

import (
	"context"

	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/mapper"
	"rag-assistant-be/internal/model"
	"rag-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, turn *entity.ConversationTurn) error {
	m := r.mapper.ToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindBySessionId(ctx context.Context, sessionId string) ([]*entity.ConversationTurn, error) {
	var models []*model.Conversation
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("timestamp ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	turns := make([]*entity.ConversationTurn, len(models))
	for i, m := range models {
		turns[i] = r.mapper.ToEntity(m)
	}
	return turns, nil
}

func (r *ConversationRepositoryImpl) ListSessionIds(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT session_id FROM (
			SELECT session_id, MAX(timestamp) AS max_timestamp
			FROM conversations
			GROUP BY session_id
		) t ORDER BY max_timestamp DESC`).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
