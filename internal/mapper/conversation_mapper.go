package mapper

import (
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.ConversationTurn {
	if c == nil {
		return nil
	}
	return &entity.ConversationTurn{
		Id:        c.Id,
		SessionId: c.SessionId,
		Question:  c.Question,
		Answer:    c.Answer,
		Timestamp: c.Timestamp,
	}
}

func (m *ConversationMapper) ToModel(t *entity.ConversationTurn) *model.Conversation {
	if t == nil {
		return nil
	}
	return &model.Conversation{
		Id:        t.Id,
		SessionId: t.SessionId,
		Question:  t.Question,
		Answer:    t.Answer,
		Timestamp: t.Timestamp,
	}
}
