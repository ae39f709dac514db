package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// ChunkEmbedding is one embedded chunk inside a per-session collection.
// The unique index over (collection_name, document_id, chunk_index) is what
// makes re-ingesting the same chunk an overwrite instead of a duplicate.
type ChunkEmbedding struct {
	ChunkId        string          `gorm:"type:text;primaryKey"` // legacy "<documentId>_chunk<index>" rendering
	CollectionName string          `gorm:"type:text;not null;index;uniqueIndex:idx_collection_chunk,priority:1"`
	DocumentId     string          `gorm:"type:text;not null;uniqueIndex:idx_collection_chunk,priority:2"`
	ChunkIndex     int             `gorm:"not null;uniqueIndex:idx_collection_chunk,priority:3"`
	TotalChunks    int             `gorm:"not null"`
	Source         string          `gorm:"type:text"`
	Content        string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // dimensionality fixed by the embedding model
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (ChunkEmbedding) TableName() string {
	return "chunk_embeddings"
}
