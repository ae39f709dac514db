// Package lexical implements the in-memory BM25 retriever used to rerank
// dense candidates with term-overlap scoring.
package lexical

import (
	"math"
	"regexp"
	"strings"
	"sync"

	"rag-assistant-be/pkg/store"
)

const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

var tokenPattern = regexp.MustCompile(`\W+`)

// Tokenize lowercases the text and splits it on non-word characters.
func Tokenize(text string) []string {
	parts := tokenPattern.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Retriever holds the tokenized corpus of one collection. It is rebuilt
// whenever the collection changes; building is cheap relative to the
// embedding calls around it.
type Retriever struct {
	mu        sync.RWMutex
	docTokens map[store.ChunkKey][]string
	docFreq   map[string]int
	totalLen  int
}

func NewRetriever() *Retriever {
	return &Retriever{
		docTokens: make(map[store.ChunkKey][]string),
		docFreq:   make(map[string]int),
	}
}

// Build replaces the corpus with the given chunks.
func (r *Retriever) Build(chunks []store.Chunk) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docTokens = make(map[store.ChunkKey][]string, len(chunks))
	r.docFreq = make(map[string]int)
	r.totalLen = 0

	for _, chunk := range chunks {
		tokens := Tokenize(chunk.Content)
		key := chunk.Key()
		// Same key overwrites: the corpus mirrors the collection's
		// idempotent upsert semantics.
		if prev, ok := r.docTokens[key]; ok {
			r.totalLen -= len(prev)
			r.removeDocFreq(prev)
		}
		r.docTokens[key] = tokens
		r.totalLen += len(tokens)
		for _, t := range uniqueTokens(tokens) {
			r.docFreq[t]++
		}
	}
}

// Add extends the corpus with a new batch without rebuilding the rest.
func (r *Retriever) Add(chunks []store.Chunk) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, chunk := range chunks {
		tokens := Tokenize(chunk.Content)
		key := chunk.Key()
		if prev, ok := r.docTokens[key]; ok {
			r.totalLen -= len(prev)
			r.removeDocFreq(prev)
		}
		r.docTokens[key] = tokens
		r.totalLen += len(tokens)
		for _, t := range uniqueTokens(tokens) {
			r.docFreq[t]++
		}
	}
}

// Len returns the corpus size.
func (r *Retriever) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docTokens)
}

// Score computes the BM25 score of one indexed chunk against the query.
// Unknown chunks score zero.
func (r *Retriever) Score(query string, key store.ChunkKey) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scoreLocked(Tokenize(query), key)
}

// Rerank orders candidates by descending BM25 score against the query.
// The sort is stable: zero-score or equal-score candidates keep the order
// the dense phase gave them. The input slice is not modified.
func (r *Retriever) Rerank(query string, candidates []store.Chunk) []store.Chunk {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.docTokens) == 0 || len(candidates) == 0 {
		out := make([]store.Chunk, len(candidates))
		copy(out, candidates)
		return out
	}

	queryTokens := Tokenize(query)

	type scored struct {
		chunk store.Chunk
		score float64
	}
	items := make([]scored, len(candidates))
	for i, c := range candidates {
		s := r.scoreLocked(queryTokens, c.Key())
		c.Metadata.Score = s
		items[i] = scored{chunk: c, score: s}
	}

	// Insertion-stable sort by descending score.
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].score > items[j-1].score; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}

	out := make([]store.Chunk, len(items))
	for i, it := range items {
		out[i] = it.chunk
	}
	return out
}

func (r *Retriever) scoreLocked(queryTokens []string, key store.ChunkKey) float64 {
	tokens, ok := r.docTokens[key]
	if !ok || len(tokens) == 0 || len(queryTokens) == 0 {
		return 0
	}

	termFreq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		termFreq[t]++
	}

	n := float64(len(r.docTokens))
	avgLen := float64(r.totalLen) / n
	docLen := float64(len(tokens))

	var score float64
	for _, qt := range queryTokens {
		tf := float64(termFreq[qt])
		if tf == 0 {
			continue
		}
		df := float64(r.docFreq[qt])
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))
		score += idf * (tf * (bm25K1 + 1)) / (tf + bm25K1*(1-bm25B+bm25B*docLen/avgLen))
	}
	return score
}

func (r *Retriever) removeDocFreq(tokens []string) {
	for _, t := range uniqueTokens(tokens) {
		if r.docFreq[t] > 1 {
			r.docFreq[t]--
		} else {
			delete(r.docFreq, t)
		}
	}
}

func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
