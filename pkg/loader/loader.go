package loader

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rag-assistant-be/pkg/store"
)

const (
	// DefaultChunkSize is the word-window width used when chunking.
	DefaultChunkSize = 400
	// DefaultOverlap is the number of words shared between adjacent windows.
	DefaultOverlap = 75
)

// UploadedFile is the loader's view of one uploaded document.
type UploadedFile struct {
	Name string // original file name, becomes the chunk source label
	Path string // location of the stored upload on disk
}

// Loader splits uploaded documents into overlapping word-window chunks with
// stable positional metadata.
type Loader struct {
	chunkSize int
	overlap   int
}

func New() *Loader {
	return &Loader{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
}

// NewWithWindow creates a loader with a custom window. Overlap must be
// smaller than the chunk size; otherwise the defaults are used.
func NewWithWindow(chunkSize, overlap int) *Loader {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return New()
	}
	return &Loader{chunkSize: chunkSize, overlap: overlap}
}

// LoadChunks reads every file, extracts its text and chunks it. Only plain
// text is supported; PDF extraction is delegated to an upstream converter.
func (l *Loader) LoadChunks(files []UploadedFile) ([]store.Chunk, error) {
	var chunks []store.Chunk

	for _, file := range files {
		if file.Path == "" {
			return nil, fmt.Errorf("file path is empty for %q", file.Name)
		}

		content, err := l.extractText(file)
		if err != nil {
			return nil, err
		}

		documentID := newDocumentID()
		chunks = append(chunks, l.ChunkText(content, documentID, file.Name)...)
	}

	return chunks, nil
}

// ChunkText splits content into overlapping word windows. Every chunk of
// the same document shares documentID, and chunkIndex < totalChunks holds
// for all of them.
func (l *Loader) ChunkText(content, documentID, source string) []store.Chunk {
	words := strings.Fields(content)
	if len(words) == 0 {
		return nil
	}

	step := l.chunkSize - l.overlap
	totalChunks := (len(words) + step - 1) / step

	var chunks []store.Chunk
	for i, index := 0, 0; i < len(words); i, index = i+step, index+1 {
		end := i + l.chunkSize
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, store.Chunk{
			Content: strings.Join(words[i:end], " "),
			Metadata: store.ChunkMetadata{
				Source:      source,
				DocumentID:  documentID,
				ChunkIndex:  index,
				TotalChunks: totalChunks,
			},
		})

		if end == len(words) {
			break
		}
	}

	// The ceiling estimate can overshoot when the tail window swallows the
	// remainder, so re-stamp the real count.
	for i := range chunks {
		chunks[i].Metadata.TotalChunks = len(chunks)
	}

	return chunks
}

func (l *Loader) extractText(file UploadedFile) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Name))
	switch ext {
	case ".txt", ".md", ".log", "":
		raw, err := os.ReadFile(file.Path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file.Name, err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("unsupported file type %q for file %s", ext, file.Name)
	}
}

func newDocumentID() string {
	return fmt.Sprintf("doc_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
