// Package session owns session identity and the conversation/document
// persistence contract around it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/internal/repository/memory"

	"github.com/google/uuid"
)

// StorageError wraps any failure of the underlying relational store. The
// store does not retry; retry policy belongs to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("session store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err came from the session store's backing
// storage.
func IsStorageError(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

// Turn is the read model for one conversation exchange.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DocumentMeta is the read model for one uploaded document.
type DocumentMeta struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
}

// Store tracks the active session and persists turns and document metadata
// through the repositories. A fresh session id is generated eagerly at
// construction, so CurrentSessionId never fails.
type Store struct {
	conversations contract.ConversationRepository
	documents     contract.DocumentRepository
	cache         *memory.SessionCache

	mu        sync.RWMutex
	sessionId string
}

func NewStore(
	conversations contract.ConversationRepository,
	documents contract.DocumentRepository,
	cache *memory.SessionCache,
) *Store {
	id := uuid.NewString()
	cache.RememberSessionId(id)

	return &Store{
		conversations: conversations,
		documents:     documents,
		cache:         cache,
		sessionId:     id,
	}
}

// CurrentSessionId returns the active session id.
func (s *Store) CurrentSessionId() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionId
}

// StartNewSession generates a fresh id and makes it active. Previous
// sessions keep their data.
func (s *Store) StartNewSession() string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessionId = id
	s.mu.Unlock()

	s.cache.RememberSessionId(id)
	return id
}

// SwitchSession makes sessionId active without validating existence:
// unknown ids denote an empty session until documents or turns arrive.
func (s *Store) SwitchSession(sessionId string) {
	s.mu.Lock()
	s.sessionId = sessionId
	s.mu.Unlock()

	s.cache.RememberSessionId(sessionId)
}

// SaveConversationTurn appends a turn with a generated id and the current
// timestamp.
func (s *Store) SaveConversationTurn(ctx context.Context, sessionId, question, answer string) error {
	turn := &entity.ConversationTurn{
		Id:        uuid.New(),
		SessionId: sessionId,
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now(),
	}
	if err := s.conversations.Create(ctx, turn); err != nil {
		return &StorageError{Op: "save conversation turn", Err: err}
	}
	return nil
}

// GetConversationHistory returns the session's turns, oldest first.
func (s *Store) GetConversationHistory(ctx context.Context, sessionId string) ([]Turn, error) {
	turns, err := s.conversations.FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, &StorageError{Op: "load conversation history", Err: err}
	}

	history := make([]Turn, len(turns))
	for i, t := range turns {
		history[i] = Turn{Question: t.Question, Answer: t.Answer}
	}
	return history, nil
}

// SaveDocumentMetadata records one row per uploaded document, all under the
// same session id, and invalidates the session's cached document list.
func (s *Store) SaveDocumentMetadata(ctx context.Context, sessionId string, docs []DocumentMeta) error {
	if len(docs) == 0 {
		return nil
	}

	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = &entity.Document{
			Id:        uuid.New(),
			SessionId: sessionId,
			FileName:  d.FileName,
			FilePath:  d.FilePath,
			Timestamp: time.Now(),
		}
	}

	if err := s.documents.CreateBulk(ctx, entities); err != nil {
		return &StorageError{Op: "save document metadata", Err: err}
	}

	s.cache.InvalidateDocuments(sessionId)
	return nil
}

// GetDocumentMetadata returns the session's documents in upload order,
// serving from the in-process cache when it is warm.
func (s *Store) GetDocumentMetadata(ctx context.Context, sessionId string) ([]DocumentMeta, error) {
	cached, ok := s.cache.GetDocuments(sessionId)
	if !ok {
		loaded, err := s.documents.FindBySessionId(ctx, sessionId)
		if err != nil {
			return nil, &StorageError{Op: "load document metadata", Err: err}
		}
		s.cache.SetDocuments(sessionId, loaded)
		cached = loaded
	}

	metas := make([]DocumentMeta, len(cached))
	for i, d := range cached {
		metas[i] = DocumentMeta{FileName: d.FileName, FilePath: d.FilePath}
	}
	return metas, nil
}

// ListAllSessionIds unions ids known to the store with ids created
// in-process but not yet persisted. Store order (most recently active
// first) is preserved; local-only ids follow.
func (s *Store) ListAllSessionIds(ctx context.Context) ([]string, error) {
	persisted, err := s.conversations.ListSessionIds(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list session ids", Err: err}
	}

	seen := make(map[string]struct{}, len(persisted))
	ids := make([]string, 0, len(persisted))
	for _, id := range persisted {
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, id := range s.cache.LocalSessionIds() {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}
