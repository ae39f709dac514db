package store

import (
	"fmt"
	"time"
)

// ChunkKey identifies a chunk inside a collection. It is a comparable
// struct on purpose: the legacy "<documentId>_chunk<index>" string id is
// only a rendering, never the identity, so a delimiter appearing inside a
// document id cannot collide two chunks.
type ChunkKey struct {
	DocumentID string
	ChunkIndex int
}

// String renders the legacy composite id used as the row id in the vector
// collection.
func (k ChunkKey) String() string {
	return fmt.Sprintf("%s_chunk%d", k.DocumentID, k.ChunkIndex)
}

// ChunkMetadata carries the positional metadata attached at chunking time
// plus the transient retrieval score set during a single query.
type ChunkMetadata struct {
	Source      string    `json:"source"`
	DocumentID  string    `json:"documentId"`
	ChunkIndex  int       `json:"chunkIndex"`
	TotalChunks int       `json:"totalChunks"`
	EmbedAt     time.Time `json:"embedCreatedAt,omitzero"`

	// Score is the relevance score from the last retrieval. Not persisted,
	// recomputed per query.
	Score float64 `json:"score,omitempty"`
}

// Chunk is the unit of embedding and retrieval: a bounded slice of a
// document's text with positional metadata.
type Chunk struct {
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Key returns the chunk's identity within its collection.
func (c Chunk) Key() ChunkKey {
	return ChunkKey{DocumentID: c.Metadata.DocumentID, ChunkIndex: c.Metadata.ChunkIndex}
}
