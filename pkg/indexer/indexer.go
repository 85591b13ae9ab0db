package indexer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/srinman/blograg/internal/models"
	"github.com/srinman/blograg/internal/types"
)

// minDocumentWords is the word count below which a document is flagged
// during validation.
const minDocumentWords = 50

type BuilderConfig struct {
	Author           string
	Category         string
	ChunkedIndexName string
	SummaryIndexName string
}

// Builder assembles chunked and summary indexes from fetched pages.
type Builder struct {
	config    BuilderConfig
	processor types.Processor
}

func NewWithConfig(config BuilderConfig, processor types.Processor) Builder {
	if config.ChunkedIndexName == "" {
		config.ChunkedIndexName = "blog_chunked_index"
	}
	if config.SummaryIndexName == "" {
		config.SummaryIndexName = "blog_summary_index"
	}

	return Builder{
		config:    config,
		processor: processor,
	}
}

// Build runs the chunker and summarizer over every page and wraps the
// results into the chunked and summary indexes. Page order and chunk order
// within a page are preserved. A page with a missing title or URL fails the
// whole build rather than emitting partial documents. An empty page slice
// yields two indexes with empty document sequences.
func (b *Builder) Build(pages []models.Page) (models.Index, models.Index, error) {
	chunked := models.Index{
		IndexName: b.config.ChunkedIndexName,
		Documents: make([]models.Document, 0),
	}
	summary := models.Index{
		IndexName: b.config.SummaryIndexName,
		Documents: make([]models.Document, 0),
	}

	for i, page := range pages {
		if page.Title == "" || page.URL == "" {
			return models.Index{}, models.Index{}, fmt.Errorf("page %d (%s): missing title or url", i, page.URL)
		}

		chunks := b.processor.ChunkContent(page.Content)
		total := len(chunks)
		for _, chunk := range chunks {
			chunked.Documents = append(chunked.Documents, models.Document{
				Text: chunk.Text,
				Metadata: models.Metadata{
					Author:    b.config.Author,
					Category:  b.config.Category,
					URL:       page.URL,
					Title:     page.Title,
					Section:   fmt.Sprintf("Part %d of %d", chunk.SectionNumber, total),
					WordCount: chunk.WordCount,
				},
			})
		}

		summary.Documents = append(summary.Documents, models.Document{
			Text: b.processor.CreateSummary(page.Title, page.Content),
			Metadata: models.Metadata{
				Author:   b.config.Author,
				Category: b.config.Category,
				URL:      page.URL,
				Title:    page.Title,
				Type:     "summary",
			},
		})
	}

	return chunked, summary, nil
}

// Validate reports index-quality issues: an empty document sequence, any
// document shorter than minDocumentWords, or any document with an incomplete
// metadata block. It never mutates or discards documents; an invalid index
// can still be saved and published.
func Validate(index models.Index) (bool, []string) {
	if len(index.Documents) == 0 {
		return false, []string{"no documents in index"}
	}

	var issues []string
	for i, doc := range index.Documents {
		if doc.Text == "" {
			issues = append(issues, fmt.Sprintf("document %d: missing text", i))
		} else if words := len(strings.Fields(doc.Text)); words < minDocumentWords {
			issues = append(issues, fmt.Sprintf("document %d: text too short (%d words)", i, words))
		}

		required := []struct {
			field string
			value string
		}{
			{"author", doc.Metadata.Author},
			{"category", doc.Metadata.Category},
			{"url", doc.Metadata.URL},
			{"title", doc.Metadata.Title},
		}
		for _, meta := range required {
			if meta.value == "" {
				issues = append(issues, fmt.Sprintf("document %d: missing metadata field %q", i, meta.field))
			}
		}
	}

	return len(issues) == 0, issues
}

// Save writes the index as indented JSON. The field names and nesting are a
// wire contract consumed by the downstream indexing service.
func Save(index models.Index, path string) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index %s: %v", index.IndexName, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}

	return nil
}
