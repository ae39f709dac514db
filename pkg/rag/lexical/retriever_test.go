package lexical

import (
	"testing"

	"rag-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func makeChunk(docID string, index int, content string) store.Chunk {
	return store.Chunk{
		Content: content,
		Metadata: store.ChunkMetadata{
			DocumentID: docID,
			ChunkIndex: index,
			Source:     docID + ".txt",
		},
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercase and split",
			text: "Hello, World!",
			want: []string{"hello", "world"},
		},
		{
			name: "punctuation only",
			text: "?!...",
			want: []string{},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "mixed separators",
			text: "vector-index_v2 (draft)",
			want: []string{"vector", "index_v2", "draft"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestScoreMatchesQueryTerms(t *testing.T) {
	r := NewRetriever()
	r.Build([]store.Chunk{
		makeChunk("d1", 0, "the solar system has eight planets"),
		makeChunk("d2", 0, "gorm maps structs to tables"),
	})

	solar := r.Score("solar planets", store.ChunkKey{DocumentID: "d1", ChunkIndex: 0})
	gormScore := r.Score("solar planets", store.ChunkKey{DocumentID: "d2", ChunkIndex: 0})

	assert.Greater(t, solar, 0.0)
	assert.Equal(t, 0.0, gormScore)
}

func TestScoreUnknownChunkIsZero(t *testing.T) {
	r := NewRetriever()
	r.Build([]store.Chunk{makeChunk("d1", 0, "some text")})

	assert.Equal(t, 0.0, r.Score("some text", store.ChunkKey{DocumentID: "ghost", ChunkIndex: 3}))
}

func TestAddOverwritesSameKey(t *testing.T) {
	r := NewRetriever()
	r.Build([]store.Chunk{makeChunk("d1", 0, "original wording")})

	r.Add([]store.Chunk{makeChunk("d1", 0, "replacement wording entirely")})

	assert.Equal(t, 1, r.Len(), "same identity must not duplicate the corpus entry")
	assert.Equal(t, 0.0, r.Score("original", store.ChunkKey{DocumentID: "d1", ChunkIndex: 0}))
	assert.Greater(t, r.Score("replacement", store.ChunkKey{DocumentID: "d1", ChunkIndex: 0}), 0.0)
}

func TestRerankOrdersByLexicalOverlap(t *testing.T) {
	r := NewRetriever()
	chunks := []store.Chunk{
		makeChunk("d1", 0, "cooking pasta with tomatoes and basil"),
		makeChunk("d2", 0, "pasta pasta pasta recipe for fresh pasta"),
		makeChunk("d3", 0, "a chapter about medieval history"),
	}
	r.Build(chunks)

	reranked := r.Rerank("pasta recipe", chunks)

	assert.Len(t, reranked, 3)
	assert.Equal(t, "d2", reranked[0].Metadata.DocumentID)
	assert.Equal(t, "d3", reranked[2].Metadata.DocumentID)
	assert.Greater(t, reranked[0].Metadata.Score, reranked[1].Metadata.Score)
}

func TestRerankStableForZeroScores(t *testing.T) {
	r := NewRetriever()
	chunks := []store.Chunk{
		makeChunk("d1", 0, "alpha beta"),
		makeChunk("d2", 0, "gamma delta"),
		makeChunk("d3", 0, "epsilon zeta"),
	}
	r.Build(chunks)

	// No query term appears anywhere, so dense order must survive.
	reranked := r.Rerank("unrelated question", chunks)

	assert.Equal(t, "d1", reranked[0].Metadata.DocumentID)
	assert.Equal(t, "d2", reranked[1].Metadata.DocumentID)
	assert.Equal(t, "d3", reranked[2].Metadata.DocumentID)
}

func TestRerankEmptyCorpusPassesThrough(t *testing.T) {
	r := NewRetriever()
	candidates := []store.Chunk{
		makeChunk("d1", 0, "anything"),
		makeChunk("d2", 0, "else"),
	}
	candidates[0].Metadata.Score = 0.9
	candidates[1].Metadata.Score = 0.5

	reranked := r.Rerank("query", candidates)

	assert.Equal(t, candidates, reranked)
}

func TestBuildReplacesCorpus(t *testing.T) {
	r := NewRetriever()
	r.Build([]store.Chunk{makeChunk("d1", 0, "first corpus")})
	r.Build([]store.Chunk{makeChunk("d2", 0, "second corpus")})

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0.0, r.Score("first", store.ChunkKey{DocumentID: "d1", ChunkIndex: 0}))
}
