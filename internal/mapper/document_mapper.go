package mapper

import (
	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:        d.Id,
		SessionId: d.SessionId,
		FileName:  d.FileName,
		FilePath:  d.FilePath,
		Timestamp: d.Timestamp,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:        d.Id,
		SessionId: d.SessionId,
		FileName:  d.FileName,
		FilePath:  d.FilePath,
		Timestamp: d.Timestamp,
	}
}
