package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"rag-assistant-be/internal/dto"
	"rag-assistant-be/internal/pkg/logger"
	"rag-assistant-be/pkg/llm"
	"rag-assistant-be/pkg/loader"
	"rag-assistant-be/pkg/rag/profile"
	"rag-assistant-be/pkg/rag/session"
	"rag-assistant-be/pkg/rag/vectorindex"
	"rag-assistant-be/pkg/store"
)

// resultsPerVariation is the k handed to every hybrid search fan-out call.
const resultsPerVariation = 3

// QueryProcessingError wraps any failure inside the query pipeline so
// callers see one failure type per query, with the cause preserved.
type QueryProcessingError struct {
	Err error
}

func (e *QueryProcessingError) Error() string {
	return fmt.Sprintf("failed to process query: %v", e.Err)
}

func (e *QueryProcessingError) Unwrap() error {
	return e.Err
}

type IRagService interface {
	Initialize(ctx context.Context) error
	IngestDocuments(ctx context.Context, files []loader.UploadedFile) (int, error)
	Query(ctx context.Context, question string) (*dto.QueryResponse, error)
	SwitchProfile(name string) error
	SwitchModel(provider string) error
	StartNewConversation(ctx context.Context) (string, error)
	SwitchConversation(ctx context.Context, sessionId string) error
	CurrentSessionId() string
	ListSessions(ctx context.Context) ([]string, error)
	GetDocumentNames(ctx context.Context, sessionId string) ([]session.DocumentMeta, error)
	GetConversationHistory(ctx context.Context) ([]session.Turn, error)
}

type ragService struct {
	sessions  *session.Store
	index     *vectorindex.Service
	docLoader *loader.Loader
	model     *llm.Switcher
	publisher IPublisherService
	log       logger.ILogger

	mu            sync.RWMutex
	activeProfile profile.Profile
}

func NewRagService(
	sessions *session.Store,
	index *vectorindex.Service,
	docLoader *loader.Loader,
	model *llm.Switcher,
	publisher IPublisherService,
	log logger.ILogger,
) IRagService {
	return &ragService{
		sessions:      sessions,
		index:         index,
		docLoader:     docLoader,
		model:         model,
		publisher:     publisher,
		log:           log,
		activeProfile: profile.Default(),
	}
}

// Initialize binds the vector index to the current session. Must run once
// before the first query.
func (s *ragService) Initialize(ctx context.Context) error {
	return s.index.Initialize(ctx, s.sessions.CurrentSessionId())
}

// IngestDocuments chunks the uploaded files, embeds and stores every chunk
// under the current session, and records the document metadata. All files
// in one upload share the session that was active when the call started.
// Returns the number of chunks stored.
func (s *ragService) IngestDocuments(ctx context.Context, files []loader.UploadedFile) (int, error) {
	sessionId := s.sessions.CurrentSessionId()
	if err := s.index.Initialize(ctx, sessionId); err != nil {
		return 0, err
	}

	chunks, err := s.docLoader.LoadChunks(files)
	if err != nil {
		return 0, err
	}

	if err := s.index.AddBatch(ctx, chunks); err != nil {
		return 0, err
	}

	metas := make([]session.DocumentMeta, len(files))
	fileNames := make([]string, len(files))
	for i, f := range files {
		metas[i] = session.DocumentMeta{FileName: f.Name, FilePath: f.Path}
		fileNames[i] = f.Name
	}
	if err := s.sessions.SaveDocumentMetadata(ctx, sessionId, metas); err != nil {
		return 0, err
	}

	s.publishIngested(sessionId, fileNames, len(chunks))

	s.log.Info("rag", "documents ingested", map[string]interface{}{
		"sessionId": sessionId,
		"files":     len(files),
		"chunks":    len(chunks),
	})
	return len(chunks), nil
}

// publishIngested emits the ingest event. The documents are already
// persisted at this point, so a publish failure is logged, not surfaced.
func (s *ragService) publishIngested(sessionId string, fileNames []string, chunks int) {
	payload, err := json.Marshal(dto.DocumentsIngestedMessage{
		SessionId: sessionId,
		FileNames: fileNames,
		Chunks:    chunks,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to marshal ingest message: %v", err)
		return
	}
	if err := s.publisher.Publish(payload); err != nil {
		log.Printf("[ERROR] Failed to publish ingest message: %v", err)
	}
}

// Query runs the full pipeline: variation fan-out retrieval, context
// assembly with per-source dedup, prompt composition, model call, turn
// persistence. Any failure surfaces as a QueryProcessingError and leaves
// no partial turn behind.
func (s *ragService) Query(ctx context.Context, question string) (*dto.QueryResponse, error) {
	sessionId := s.sessions.CurrentSessionId()

	// Defensive re-bind: a conversation switch may have happened since the
	// last call on this index instance.
	if err := s.index.Initialize(ctx, sessionId); err != nil {
		return nil, &QueryProcessingError{Err: err}
	}

	merged, err := s.retrieve(ctx, question)
	if err != nil {
		return nil, &QueryProcessingError{Err: err}
	}

	retained, sources := dedupBySource(merged)
	contextBlock := renderContext(retained)

	history, err := s.sessions.GetConversationHistory(ctx, sessionId)
	if err != nil {
		return nil, &QueryProcessingError{Err: err}
	}

	prompt := s.composePrompt(question, contextBlock, history)

	answer, err := s.model.Generate(ctx, prompt)
	if err != nil {
		return nil, &QueryProcessingError{Err: err}
	}

	if err := s.sessions.SaveConversationTurn(ctx, sessionId, question, answer); err != nil {
		return nil, &QueryProcessingError{Err: err}
	}

	s.log.Info("rag", "query processed", map[string]interface{}{
		"sessionId": sessionId,
		"sources":   len(sources),
	})
	return &dto.QueryResponse{Answer: answer, Sources: sources}, nil
}

// retrieve fans the hybrid search out over the query variations and unions
// the results by chunk identity, first-seen order preserved, then sorts by
// descending retrieval score.
func (s *ragService) retrieve(ctx context.Context, question string) ([]store.Chunk, error) {
	seen := make(map[store.ChunkKey]struct{})
	var merged []store.Chunk

	for _, variation := range queryVariations(question) {
		chunks, err := s.index.HybridSearch(ctx, variation, resultsPerVariation)
		if err != nil {
			return nil, err
		}
		for _, chunk := range chunks {
			key := chunk.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, chunk)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Metadata.Score > merged[j].Metadata.Score
	})
	return merged, nil
}

// queryVariations widens retrieval coverage with templated rewrites of the
// question. Variations that share too few tokens with the question are
// dropped; if everything is dropped the literal question alone remains.
func queryVariations(question string) []string {
	candidates := []string{
		question,
		fmt.Sprintf("key information about %s", question),
		fmt.Sprintf("main points regarding %s", question),
		fmt.Sprintf("explain %s", question),
		fmt.Sprintf("details about %s", question),
	}

	seen := make(map[string]struct{}, len(candidates))
	variations := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		if candidate != question && !vectorindex.CheckRelevance(question, candidate) {
			continue
		}
		variations = append(variations, candidate)
	}

	if len(variations) == 0 {
		return []string{question}
	}
	return variations
}

// dedupBySource keeps only the highest-scored chunk per source document.
// Breadth across sources beats depth within one source in a bounded
// prompt. Input must already be sorted by descending score; equal scores
// keep the first-seen chunk.
func dedupBySource(chunks []store.Chunk) ([]store.Chunk, []string) {
	seen := make(map[string]struct{}, len(chunks))
	retained := make([]store.Chunk, 0, len(chunks))
	sources := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		if _, dup := seen[chunk.Metadata.Source]; dup {
			continue
		}
		seen[chunk.Metadata.Source] = struct{}{}
		retained = append(retained, chunk)
		sources = append(sources, chunk.Metadata.Source)
	}
	return retained, sources
}

func renderContext(chunks []store.Chunk) string {
	blocks := make([]string, len(chunks))
	for i, chunk := range chunks {
		m := chunk.Metadata
		blocks[i] = fmt.Sprintf(`
Source: %s
Document ID: %s
Chunk: %d of %d
Content:
%s
-------------------
`, m.Source, m.DocumentID, m.ChunkIndex+1, m.TotalChunks, chunk.Content)
	}
	return strings.Join(blocks, "\n")
}

func (s *ragService) composePrompt(question, contextBlock string, history []session.Turn) string {
	s.mu.RLock()
	persona := s.activeProfile
	s.mu.RUnlock()

	return fmt.Sprintf(`%s

Task: Answer the question comprehensively and accurately using the provided context and conversation history.

Context:
%s

Conversation History:
%s

Current Question: %s

Instructions:
1. Use only information from the provided question's context to answer the question
2. If the context doesn't contain enough information, acknowledge the limitations
3. Cite specific sources from the context when possible
4. Maintain consistency with previous conversation history only if the information is relevant to the current question
5. Provide a clear, well-structured response

Answer:`, persona.SystemPrompt, contextBlock, formatHistory(history), question)
}

// formatHistory renders the trailing three exchanges, oldest first.
func formatHistory(history []session.Turn) string {
	if len(history) == 0 {
		return "No previous conversation."
	}

	if len(history) > 3 {
		history = history[len(history)-3:]
	}

	var b strings.Builder
	for i, turn := range history {
		fmt.Fprintf(&b, "\nExchange %d:\nQ: %s\nA: %s\n", i+1, turn.Question, turn.Answer)
	}
	return b.String()
}

// SwitchProfile replaces the active persona by display name.
func (s *ragService) SwitchProfile(name string) error {
	p, err := profile.ByName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.activeProfile = p
	s.mu.Unlock()

	s.log.Info("rag", "profile switched", map[string]interface{}{"profile": p.Name})
	return nil
}

// SwitchModel selects a different LLM backend for subsequent queries.
func (s *ragService) SwitchModel(provider string) error {
	if err := s.model.Switch(llm.BackendName(provider)); err != nil {
		return err
	}

	s.log.Info("rag", "llm backend switched", map[string]interface{}{"provider": provider})
	return nil
}

// StartNewConversation creates a fresh session and binds the index to its
// empty collection.
func (s *ragService) StartNewConversation(ctx context.Context) (string, error) {
	id := s.sessions.StartNewSession()
	if err := s.index.Initialize(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// SwitchConversation re-binds the index to sessionId's collection, loading
// whatever it already holds. Unknown ids denote an empty session.
func (s *ragService) SwitchConversation(ctx context.Context, sessionId string) error {
	s.sessions.SwitchSession(sessionId)
	return s.index.Initialize(ctx, sessionId)
}

func (s *ragService) CurrentSessionId() string {
	return s.sessions.CurrentSessionId()
}

func (s *ragService) ListSessions(ctx context.Context) ([]string, error) {
	return s.sessions.ListAllSessionIds(ctx)
}

func (s *ragService) GetDocumentNames(ctx context.Context, sessionId string) ([]session.DocumentMeta, error) {
	return s.sessions.GetDocumentMetadata(ctx, sessionId)
}

func (s *ragService) GetConversationHistory(ctx context.Context) ([]session.Turn, error) {
	return s.sessions.GetConversationHistory(ctx, s.sessions.CurrentSessionId())
}
