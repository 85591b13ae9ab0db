package types

import (
	"github.com/srinman/blograg/internal/models"
)

// Core interfaces
type Fetcher interface {
	FetchPostList() ([]models.PostRef, error)
	FetchPost(ref models.PostRef) (models.Page, error)
	FetchAll(refs []models.PostRef) ([]models.Page, []models.FetchFailure)
}

type Processor interface {
	ChunkContent(text string) []models.Chunk
	CreateSummary(title, content string) string
}

type IndexStore interface {
	Store(index models.Index) error
	Close()
}
