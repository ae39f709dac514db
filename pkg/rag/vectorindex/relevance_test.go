package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRelevance(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		want      bool
	}{
		{
			name:      "self similarity is always relevant",
			query:     "what is a vector index",
			candidate: "what is a vector index",
			want:      true,
		},
		{
			name:      "templated variation keeps the query tokens",
			query:     "pgvector cosine distance",
			candidate: "key information about pgvector cosine distance",
			want:      true,
		},
		{
			name:      "no shared tokens",
			query:     "solar system",
			candidate: "gorm migrations",
			want:      false,
		},
		{
			name:      "one of five tokens matches",
			query:     "alpha beta gamma delta epsilon",
			candidate: "alpha unrelated words here",
			want:      true, // 1/5 = 0.2 meets the threshold
		},
		{
			name:      "one of six tokens misses threshold",
			query:     "alpha beta gamma delta epsilon zeta",
			candidate: "alpha unrelated words here",
			want:      false,
		},
		{
			name:      "empty query never relevant",
			query:     "",
			candidate: "anything",
			want:      false,
		},
		{
			name:      "punctuation-only query never relevant",
			query:     "?!",
			candidate: "anything",
			want:      false,
		},
		{
			name:      "repeated query tokens count once",
			query:     "alpha alpha alpha beta",
			candidate: "alpha",
			want:      true, // unique tokens {alpha, beta}, 1/2 matched
		},
		{
			name:      "case insensitive",
			query:     "Solar System",
			candidate: "the SOLAR system explained",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckRelevance(tt.query, tt.candidate))
		})
	}
}
