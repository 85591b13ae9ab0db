package store

import (
	"os"
	"testing"

	"github.com/srinman/blograg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid string", "plain ascii text", "plain ascii text"},
		{"valid multibyte", "café ☕", "café ☕"},
		{"invalid bytes removed", "abc\xffdef", "abcdef"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeUTF8(tt.input))
		})
	}
}

// Requires a reachable Postgres instance; skipped otherwise.
func TestIndexStore(t *testing.T) {
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		t.Skip("DATABASE_URL not set")
	}

	s, err := NewWithConfig(StoreConfig{
		ConnString: connString,
		TableName:  "test_rag_documents",
	})
	require.NoError(t, err)
	defer s.Close()

	index := models.Index{
		IndexName: "test_chunked_index",
		Documents: []models.Document{
			{
				Text: "A stored chunk of blog content used to exercise the archive table.",
				Metadata: models.Metadata{
					Author:    "Sridher Manivel",
					Category:  "container",
					URL:       "https://blog.example.com/post",
					Title:     "A Post",
					Section:   "Part 1 of 1",
					WordCount: 12,
				},
			},
		},
	}

	require.NoError(t, s.Store(index))

	// Re-running the same build upserts rather than duplicating
	require.NoError(t, s.Store(index))
}
