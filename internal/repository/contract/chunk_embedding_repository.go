package contract

import (
	"context"

	"rag-assistant-be/pkg/store"
)

// EmbeddedChunk pairs a chunk with its embedding vector for ingestion.
type EmbeddedChunk struct {
	Chunk  store.Chunk
	Vector []float32
}

// ScoredChunk is a retrieval hit with its cosine similarity (1.0 =
// identical direction).
type ScoredChunk struct {
	Chunk      store.Chunk
	Similarity float64
}

type ChunkEmbeddingRepository interface {
	// UpsertBatch inserts the batch into the collection; a chunk whose
	// (documentId, chunkIndex) already exists is overwritten.
	UpsertBatch(ctx context.Context, collection string, batch []EmbeddedChunk) error
	// FindByCollection returns every chunk of the collection ordered by
	// (documentId, chunkIndex); an unknown collection yields an empty slice.
	FindByCollection(ctx context.Context, collection string) ([]store.Chunk, error)
	// SearchSimilar returns the limit nearest chunks by cosine distance,
	// best first, scoped to one collection.
	SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]ScoredChunk, error)
	// DeleteByCollection drops a collection's chunks entirely.
	DeleteByCollection(ctx context.Context, collection string) error
	// CountByCollection returns the number of chunks in the collection.
	CountByCollection(ctx context.Context, collection string) (int64, error)
}
