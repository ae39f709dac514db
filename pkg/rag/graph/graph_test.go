package graph

import (
	"testing"

	"rag-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func chunkFor(docID, source string) store.Chunk {
	return store.Chunk{
		Content: "content of " + docID,
		Metadata: store.ChunkMetadata{
			Source:     source,
			DocumentID: docID,
		},
	}
}

func TestAddNodeIdempotent(t *testing.T) {
	g := New()

	g.AddNode("d1", "notes.txt")
	g.AddEdge("d1", "d2")
	g.AddNode("d1", "notes.txt")

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 1, g.NeighborCount("d1"), "re-adding a node must keep its edges")
}

func TestAddEdgeUnknownOrigin(t *testing.T) {
	g := New()

	g.AddEdge("ghost", "d1")

	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.NeighborCount("ghost"))
}

func TestRefineResultsOrdersByConnectedness(t *testing.T) {
	g := New()
	g.AddNode("d1", "a.txt")
	g.AddNode("d2", "b.txt")
	g.AddNode("d3", "c.txt")
	g.AddEdge("d2", "d1")
	g.AddEdge("d2", "d3")
	g.AddEdge("d3", "d1")

	refined := g.RefineResults([]store.Chunk{
		chunkFor("d1", "a.txt"),
		chunkFor("d2", "b.txt"),
		chunkFor("d3", "c.txt"),
	})

	assert.Len(t, refined, 3)
	assert.Equal(t, "d2", refined[0].Metadata.DocumentID)
	assert.Equal(t, "d3", refined[1].Metadata.DocumentID)
	assert.Equal(t, "d1", refined[2].Metadata.DocumentID)
}

func TestRefineResultsStableOnTies(t *testing.T) {
	g := New()
	g.AddNode("d1", "a.txt")
	g.AddNode("d2", "b.txt")

	input := []store.Chunk{
		chunkFor("d1", "a.txt"),
		chunkFor("d2", "b.txt"),
	}
	refined := g.RefineResults(input)

	assert.Equal(t, "d1", refined[0].Metadata.DocumentID, "equal degree keeps input order")
	assert.Equal(t, "d2", refined[1].Metadata.DocumentID)
}

func TestRefineResultsMissingDocumentIdSinksToTail(t *testing.T) {
	g := New()
	g.AddNode("d1", "a.txt")

	refined := g.RefineResults([]store.Chunk{
		{Content: "orphan"},
		chunkFor("d1", "a.txt"),
	})

	assert.Len(t, refined, 2)
	assert.Equal(t, "d1", refined[0].Metadata.DocumentID)
	assert.Equal(t, "", refined[1].Metadata.DocumentID)
}

func TestRefineResultsEdgeShapes(t *testing.T) {
	g := New()

	empty := g.RefineResults(nil)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	// Chunks from documents the graph never saw pass through untouched.
	unknown := g.RefineResults([]store.Chunk{
		chunkFor("dx", "x.txt"),
		chunkFor("dy", "y.txt"),
	})
	assert.Len(t, unknown, 2)
	assert.Equal(t, "dx", unknown[0].Metadata.DocumentID)
	assert.Equal(t, "dy", unknown[1].Metadata.DocumentID)
}

func TestRefineResultsDoesNotMutateInput(t *testing.T) {
	g := New()
	g.AddNode("d1", "a.txt")
	g.AddNode("d2", "b.txt")
	g.AddEdge("d2", "d1")

	input := []store.Chunk{
		chunkFor("d1", "a.txt"),
		chunkFor("d2", "b.txt"),
	}
	_ = g.RefineResults(input)

	assert.Equal(t, "d1", input[0].Metadata.DocumentID)
	assert.Equal(t, "d2", input[1].Metadata.DocumentID)
}

func TestClear(t *testing.T) {
	g := New()
	g.AddNode("d1", "a.txt")
	g.AddEdge("d1", "d2")

	g.Clear()

	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.NeighborCount("d1"))
}
