package indexer_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/srinman/blograg/internal/models"
	"github.com/srinman/blograg/pkg/indexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	index := models.Index{
		IndexName: "blog_summary_index",
		Documents: []models.Document{
			{Text: "summary text", Metadata: models.Metadata{
				Author:   "Sridher Manivel",
				Category: "container",
				URL:      "https://blog.example.com/post",
				Title:    "A Post",
				Type:     "summary",
			}},
		},
	}

	var received models.Index
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/index", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, indexer.Publish(server.URL, index))

	assert.Equal(t, index.IndexName, received.IndexName)
	require.Len(t, received.Documents, 1)
	assert.Equal(t, "summary", received.Documents[0].Metadata.Type)
}

func TestPublishServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index rejected", http.StatusInternalServerError)
	}))
	defer server.Close()

	err := indexer.Publish(server.URL, models.Index{IndexName: "broken"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
