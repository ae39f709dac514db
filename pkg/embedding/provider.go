package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Provider maps text to a fixed-dimension embedding vector. Implementations
// must return an *Error for any transport or non-2xx failure so callers can
// detect embedding faults with errors.As.
type Provider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// Error wraps a failed embedding call with the provider that produced it.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("embedding (%s): %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsEmbeddingError reports whether err originated in an embedding provider.
func IsEmbeddingError(err error) bool {
	var target *Error
	return errors.As(err, &target)
}

// normalizeVector scales a vector to unit length. Cosine distance in
// pgvector assumes normalized vectors, so every provider normalizes before
// returning.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
