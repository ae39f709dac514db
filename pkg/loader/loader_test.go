package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "w" + string(rune('a'+i%26))
	}
	return strings.Join(parts, " ")
}

func TestChunkTextSingleWindow(t *testing.T) {
	l := New()

	chunks := l.ChunkText("just a few words", "d1", "notes.txt")

	require.Len(t, chunks, 1)
	assert.Equal(t, "just a few words", chunks[0].Content)
	assert.Equal(t, "d1", chunks[0].Metadata.DocumentID)
	assert.Equal(t, "notes.txt", chunks[0].Metadata.Source)
	assert.Equal(t, 0, chunks[0].Metadata.ChunkIndex)
	assert.Equal(t, 1, chunks[0].Metadata.TotalChunks)
}

func TestChunkTextOverlappingWindows(t *testing.T) {
	l := NewWithWindow(10, 3)

	content := words(24)
	chunks := l.ChunkText(content, "d1", "notes.txt")

	require.True(t, len(chunks) > 1)

	all := strings.Fields(content)
	for i, c := range chunks {
		assert.Equal(t, i, c.Metadata.ChunkIndex)
		assert.Equal(t, len(chunks), c.Metadata.TotalChunks)
		assert.LessOrEqual(t, len(strings.Fields(c.Content)), 10)
	}

	// Adjacent windows share the overlap: chunk 1 starts 7 words in.
	second := strings.Fields(chunks[1].Content)
	assert.Equal(t, all[7], second[0])

	// The last word of the input is always covered.
	last := strings.Fields(chunks[len(chunks)-1].Content)
	assert.Equal(t, all[len(all)-1], last[len(last)-1])
}

func TestChunkTextEmptyContent(t *testing.T) {
	l := New()

	assert.Nil(t, l.ChunkText("", "d1", "notes.txt"))
	assert.Nil(t, l.ChunkText("   \n\t  ", "d1", "notes.txt"))
}

func TestNewWithWindowRejectsBadShape(t *testing.T) {
	l := NewWithWindow(10, 10)
	assert.Equal(t, DefaultChunkSize, l.chunkSize)
	assert.Equal(t, DefaultOverlap, l.overlap)

	l = NewWithWindow(0, 0)
	assert.Equal(t, DefaultChunkSize, l.chunkSize)
}

func TestLoadChunksReadsPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stored_upload")
	require.NoError(t, os.WriteFile(path, []byte("alpha beta gamma"), 0o644))

	l := New()
	chunks, err := l.LoadChunks([]UploadedFile{{Name: "notes.txt", Path: path}})

	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "alpha beta gamma", chunks[0].Content)
	assert.Equal(t, "notes.txt", chunks[0].Metadata.Source)
	assert.True(t, strings.HasPrefix(chunks[0].Metadata.DocumentID, "doc_"))
}

func TestLoadChunksDistinctDocumentIds(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a")
	pathB := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(pathA, []byte("first file"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("second file"), 0o644))

	l := New()
	chunks, err := l.LoadChunks([]UploadedFile{
		{Name: "a.txt", Path: pathA},
		{Name: "b.txt", Path: pathB},
	})

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.NotEqual(t, chunks[0].Metadata.DocumentID, chunks[1].Metadata.DocumentID)
}

func TestLoadChunksRejectsUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	l := New()
	_, err := l.LoadChunks([]UploadedFile{{Name: "report.pdf", Path: path}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestLoadChunksMissingPath(t *testing.T) {
	l := New()
	_, err := l.LoadChunks([]UploadedFile{{Name: "notes.txt", Path: ""}})
	require.Error(t, err)
}
