package config

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Blog config
	if c.Blog.URL == "" {
		errors = append(errors, ValidationError{
			Field:   "blog.url",
			Message: "blog URL is required",
		})
	} else if !strings.HasPrefix(c.Blog.URL, "http") {
		errors = append(errors, ValidationError{
			Field:   "blog.url",
			Message: "blog URL must be an http(s) URL",
		})
	}

	if _, err := url.Parse(c.Blog.URL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "blog.url",
			Message: "invalid blog URL",
		})
	}

	if c.Blog.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "blog.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	// Validate Processor config
	if c.Processor.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "processor.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if c.Processor.MinChunkSize < 0 || c.Processor.MinChunkSize > c.Processor.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "processor.min_chunk_size",
			Message: "min_chunk_size must be non-negative and no larger than chunk_size",
		})
	}

	// Validate Index config
	if c.Index.ChunkedName == "" {
		errors = append(errors, ValidationError{
			Field:   "index.chunked_name",
			Message: "chunked index name is required",
		})
	}

	if c.Index.SummaryName == "" {
		errors = append(errors, ValidationError{
			Field:   "index.summary_name",
			Message: "summary index name is required",
		})
	}

	if c.Index.ChunkedFile == "" {
		errors = append(errors, ValidationError{
			Field:   "index.chunked_file",
			Message: "chunked output file is required",
		})
	}

	if c.Index.SummaryFile == "" {
		errors = append(errors, ValidationError{
			Field:   "index.summary_file",
			Message: "summary output file is required",
		})
	}

	if c.Index.PublishURL != "" {
		if _, err := url.Parse(c.Index.PublishURL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "index.publish_url",
				Message: "invalid publish URL",
			})
		}
	}

	// Validate Database config
	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	return errors
}
