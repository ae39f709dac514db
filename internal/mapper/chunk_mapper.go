package mapper

import (
	"encoding/json"
	"time"

	"rag-assistant-be/internal/model"
	"rag-assistant-be/pkg/store"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// chunkExtras is the JSONB payload attached to every chunk row; fields the
// retrieval path does not need as columns live here.
type chunkExtras struct {
	EmbedCreatedAt time.Time `json:"embedCreatedAt"`
}

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToModel(collection string, chunk store.Chunk, vector []float32) *model.ChunkEmbedding {
	extras, _ := json.Marshal(chunkExtras{EmbedCreatedAt: chunk.Metadata.EmbedAt})

	return &model.ChunkEmbedding{
		ChunkId:        chunk.Key().String(),
		CollectionName: collection,
		DocumentId:     chunk.Metadata.DocumentID,
		ChunkIndex:     chunk.Metadata.ChunkIndex,
		TotalChunks:    chunk.Metadata.TotalChunks,
		Source:         chunk.Metadata.Source,
		Content:        chunk.Content,
		EmbeddingValue: pgvector.NewVector(vector),
		Metadata:       datatypes.JSON(extras),
	}
}

func (m *ChunkMapper) ToChunk(row *model.ChunkEmbedding) store.Chunk {
	var extras chunkExtras
	if len(row.Metadata) > 0 {
		_ = json.Unmarshal(row.Metadata, &extras)
	}

	return store.Chunk{
		Content: row.Content,
		Metadata: store.ChunkMetadata{
			Source:      row.Source,
			DocumentID:  row.DocumentId,
			ChunkIndex:  row.ChunkIndex,
			TotalChunks: row.TotalChunks,
			EmbedAt:     extras.EmbedCreatedAt,
		},
	}
}
