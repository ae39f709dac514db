package graph

import (
	"sort"
	"sync"

	"rag-assistant-be/pkg/store"
)

// Graph tracks directed "relates-to" links between documents of one
// collection. It is a purely structural ranking signal: documents with more
// known relationships are treated as more central to the session's
// knowledge base.
type Graph struct {
	mu        sync.RWMutex
	adjacency map[string]map[string]struct{}
	sources   map[string]string
}

func New() *Graph {
	return &Graph{
		adjacency: make(map[string]map[string]struct{}),
		sources:   make(map[string]string),
	}
}

// AddNode registers a document. Idempotent; re-adding keeps existing edges.
func (g *Graph) AddNode(documentID, source string) {
	if documentID == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adjacency[documentID]; !ok {
		g.adjacency[documentID] = make(map[string]struct{})
	}
	g.sources[documentID] = source
}

// AddEdge links from -> to. A no-op when the origin document is unknown,
// so edges never reference nodes that do not exist.
func (g *Graph) AddEdge(from, to string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	neighbors, ok := g.adjacency[from]
	if !ok {
		return
	}
	neighbors[to] = struct{}{}
}

// NeighborCount returns the out-degree of a document, zero when unknown.
func (g *Graph) NeighborCount(documentID string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency[documentID])
}

// RefineResults orders chunks by the connectedness of their documents,
// most-connected first. The sort is stable, so chunks tied on neighbor
// count keep their first-seen order, and chunks without a document id are
// passed through unscored at the end. No chunk is ever dropped or
// duplicated, and no input can make this fail.
func (g *Graph) RefineResults(chunks []store.Chunk) []store.Chunk {
	if len(chunks) == 0 {
		return []store.Chunk{}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	refined := make([]store.Chunk, len(chunks))
	copy(refined, chunks)

	sort.SliceStable(refined, func(i, j int) bool {
		iID, jID := refined[i].Metadata.DocumentID, refined[j].Metadata.DocumentID
		if iID == "" || jID == "" {
			// Unidentified chunks sink to the tail.
			return iID != "" && jID == ""
		}
		return len(g.adjacency[iID]) > len(g.adjacency[jID])
	})

	return refined
}

// Clear drops all nodes and edges. Called when the owning index re-binds to
// another session.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.adjacency = make(map[string]map[string]struct{})
	g.sources = make(map[string]string)
}

// Len returns the number of registered documents.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.adjacency)
}
