// Package vectorindex owns the per-session vector collections and the
// hybrid (dense + lexical + graph) retrieval over them.
package vectorindex

import (
	"context"
	"errors"
	"sync"
	"time"

	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/pkg/embedding"
	"rag-assistant-be/pkg/rag/graph"
	"rag-assistant-be/pkg/rag/lexical"
	"rag-assistant-be/pkg/store"

	"golang.org/x/sync/errgroup"
)

// ErrNotInitialized is returned by every operation invoked before the
// first Initialize call.
var ErrNotInitialized = errors.New("vector index not initialized")

// CollectionPrefix namespaces the per-session collections.
const CollectionPrefix = "rag_collection_"

// CollectionName resolves a session id to its collection name.
func CollectionName(sessionId string) string {
	return CollectionPrefix + sessionId
}

// maxConcurrentEmbeds bounds the embedding fan-out during ingestion.
const maxConcurrentEmbeds = 8

// Service binds one session's collection at a time. Rebinding to another
// session swaps the collection, the lexical corpus and the graph under a
// mutex, so concurrent searches never observe a half-switched index.
type Service struct {
	repo     contract.ChunkEmbeddingRepository
	embedder embedding.Provider
	log      logger.ILogger

	mu          sync.RWMutex
	initialized bool
	sessionId   string
	collection  string
	graph       *graph.Graph
	retriever   *lexical.Retriever
}

func NewService(repo contract.ChunkEmbeddingRepository, embedder embedding.Provider, log logger.ILogger) *Service {
	return &Service{
		repo:      repo,
		embedder:  embedder,
		log:       log,
		graph:     graph.New(),
		retriever: lexical.NewRetriever(),
	}
}

// Initialize binds the service to sessionId's collection, creating it
// implicitly on first write, and rebuilds the lexical retriever and the
// graph from whatever the collection already holds. Idempotent for the
// same id; a different id re-binds the service.
func (s *Service) Initialize(ctx context.Context, sessionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized && s.sessionId == sessionId {
		return nil
	}

	collection := CollectionName(sessionId)
	existing, err := s.repo.FindByCollection(ctx, collection)
	if err != nil {
		return err
	}

	s.retriever = lexical.NewRetriever()
	s.retriever.Build(existing)

	s.graph = graph.New()
	for _, chunk := range existing {
		s.graph.AddNode(chunk.Metadata.DocumentID, chunk.Metadata.Source)
	}

	s.sessionId = sessionId
	s.collection = collection
	s.initialized = true

	s.log.Info("vectorindex", "index bound to session", map[string]interface{}{
		"sessionId":       sessionId,
		"existing_chunks": len(existing),
	})
	return nil
}

// Graph exposes the relationship graph of the bound session so callers can
// register document relationships.
func (s *Service) Graph() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// SessionId returns the bound session id, empty before Initialize.
func (s *Service) SessionId() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionId
}

// AddBatch embeds every chunk concurrently, waits for the whole fan-out,
// and upserts the batch keyed by chunk identity. Either the whole batch is
// handed to the store or none of it: an embedding failure aborts before
// any write, and since ids are idempotent a failed call is safe to retry
// wholesale.
func (s *Service) AddBatch(ctx context.Context, chunks []store.Chunk) error {
	s.mu.RLock()
	if !s.initialized {
		s.mu.RUnlock()
		return ErrNotInitialized
	}
	collection := s.collection
	gr := s.graph
	retriever := s.retriever
	s.mu.RUnlock()

	if len(chunks) == 0 {
		return nil
	}

	batch := make([]contract.EmbeddedChunk, len(chunks))
	now := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmbeds)
	for i, chunk := range chunks {
		g.Go(func() error {
			vector, err := s.embedder.Generate(gctx, chunk.Content)
			if err != nil {
				return err
			}
			chunk.Metadata.EmbedAt = now
			batch[i] = contract.EmbeddedChunk{Chunk: chunk, Vector: vector}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.repo.UpsertBatch(ctx, collection, batch); err != nil {
		return err
	}

	for _, item := range batch {
		gr.AddNode(item.Chunk.Metadata.DocumentID, item.Chunk.Metadata.Source)
	}
	retriever.Add(chunks)

	s.log.Info("vectorindex", "batch ingested", map[string]interface{}{
		"collection": collection,
		"chunks":     len(chunks),
	})
	return nil
}

// HybridSearch runs the dense phase over 2k nearest neighbors, reranks
// them lexically when a corpus exists, keeps the top k and lets the graph
// refine the final ordering. An empty collection yields an empty slice,
// never an error.
func (s *Service) HybridSearch(ctx context.Context, query string, k int) ([]store.Chunk, error) {
	s.mu.RLock()
	if !s.initialized {
		s.mu.RUnlock()
		return nil, ErrNotInitialized
	}
	collection := s.collection
	gr := s.graph
	retriever := s.retriever
	s.mu.RUnlock()

	if k <= 0 {
		return []store.Chunk{}, nil
	}

	queryVector, err := s.embedder.Generate(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := s.repo.SearchSimilar(ctx, collection, queryVector, 2*k)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return []store.Chunk{}, nil
	}

	candidates := make([]store.Chunk, len(scored))
	for i, sc := range scored {
		chunk := sc.Chunk
		chunk.Metadata.Score = sc.Similarity
		candidates[i] = chunk
	}

	if retriever.Len() > 0 {
		candidates = retriever.Rerank(query, candidates)
	}

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	return gr.RefineResults(candidates), nil
}

// GetEmbedding delegates to the embedding collaborator without caching.
func (s *Service) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	return s.embedder.Generate(ctx, text)
}
