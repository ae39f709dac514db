package implementation

import (
	"context"

	"rag-assistant-be/internal/mapper"
	"rag-assistant-be/internal/model"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/pkg/store"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChunkEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkEmbeddingRepository(db *gorm.DB) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkEmbeddingRepositoryImpl) UpsertBatch(ctx context.Context, collection string, batch []contract.EmbeddedChunk) error {
	if len(batch) == 0 {
		return nil
	}

	models := make([]*model.ChunkEmbedding, len(batch))
	for i, item := range batch {
		models[i] = r.mapper.ToModel(collection, item.Chunk, item.Vector)
	}

	// Conflict on the collection-scoped chunk identity makes re-ingestion
	// an overwrite, never a duplicate.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "collection_name"},
				{Name: "document_id"},
				{Name: "chunk_index"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_chunks", "source", "content", "embedding_value", "metadata", "updated_at",
			}),
		}).
		Create(models).Error
}

func (r *ChunkEmbeddingRepositoryImpl) FindByCollection(ctx context.Context, collection string) ([]store.Chunk, error) {
	var models []*model.ChunkEmbedding
	err := r.db.WithContext(ctx).
		Where("collection_name = ?", collection).
		Order("document_id ASC, chunk_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]store.Chunk, len(models))
	for i, m := range models {
		chunks[i] = r.mapper.ToChunk(m)
	}
	return chunks, nil
}

func (r *ChunkEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, collection string, vector []float32, limit int) ([]contract.ScoredChunk, error) {
	if limit <= 0 {
		return []contract.ScoredChunk{}, nil
	}

	type result struct {
		model.ChunkEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	// Cosine distance in pgvector is 1 - cosine_similarity.
	err := r.db.WithContext(ctx).
		Table("chunk_embeddings").
		Select("chunk_embeddings.*, 1 - (embedding_value <=> ?) AS similarity", queryVector).
		Where("collection_name = ?", collection).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]contract.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = contract.ScoredChunk{
			Chunk:      r.mapper.ToChunk(&res.ChunkEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByCollection(ctx context.Context, collection string) error {
	return r.db.WithContext(ctx).
		Where("collection_name = ?", collection).
		Delete(&model.ChunkEmbedding{}).Error
}

func (r *ChunkEmbeddingRepositoryImpl) CountByCollection(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ChunkEmbedding{}).
		Where("collection_name = ?", collection).
		Count(&count).Error
	return count, err
}
