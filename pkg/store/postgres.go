package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srinman/blograg/internal/models"
)

type StoreConfig struct {
	ConnString string
	TableName  string
}

// IndexStore archives built index documents in Postgres so previous builds
// can be inspected and diffed. Embedding and similarity search belong to the
// downstream indexing service, not this table.
type IndexStore struct {
	config StoreConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(config StoreConfig) (*IndexStore, error) {
	if config.TableName == "" {
		config.TableName = "rag_documents"
	}

	pool, err := pgxpool.New(context.Background(), config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	s := &IndexStore{
		config: config,
		pool:   pool,
	}

	if err := s.initialize(); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

func (s *IndexStore) initialize() error {
	ctx := context.Background()

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			index_name TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT,
			content TEXT,
			section TEXT,
			word_count INTEGER,
			metadata JSONB
		)`, s.config.TableName)

	if _, err := s.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_index_name_idx
		ON %s (index_name)`,
		s.config.TableName, s.config.TableName)

	if _, err := s.pool.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// Store upserts every document of the index inside one transaction. Ids are
// positional within the index name, so re-running a build overwrites the
// previous archive of that index.
func (s *IndexStore) Store(index models.Index) error {
	ctx := context.Background()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, index_name, url, title, content, section, word_count, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			section = EXCLUDED.section,
			word_count = EXCLUDED.word_count,
			metadata = EXCLUDED.metadata`,
		s.config.TableName)

	for i, doc := range index.Documents {
		id := fmt.Sprintf("%s_%d", index.IndexName, i)

		_, err := tx.Exec(ctx, stmt,
			id,
			index.IndexName,
			doc.Metadata.URL,
			sanitizeUTF8(doc.Metadata.Title),
			sanitizeUTF8(doc.Text),
			doc.Metadata.Section,
			doc.Metadata.WordCount,
			doc.Metadata,
		)
		if err != nil {
			return fmt.Errorf("failed to insert document: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (s *IndexStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}
