package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/srinman/blograg/internal/models"
	"github.com/srinman/blograg/internal/types"
	cfgPkg "github.com/srinman/blograg/pkg/config"
	"github.com/srinman/blograg/pkg/crawler"
	"github.com/srinman/blograg/pkg/indexer"
	"github.com/srinman/blograg/pkg/processor"
	"github.com/srinman/blograg/pkg/store"
)

type Config struct {
	BlogURL      string
	Author       string
	Category     string
	RateLimit    float64
	ChunkSize    int
	MinChunkSize int
	ChunkedName  string
	SummaryName  string
	ChunkedFile  string
	SummaryFile  string
	DBUrl        string
	TableName    string
	PublishURL   string
}

func main() {
	config := parseFlags()

	if err := run(config); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() Config {
	var config Config
	var configPath string

	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&config.BlogURL, "blog-url", os.Getenv("BLOG_URL"), "Blog URL to crawl")
	flag.StringVar(&config.Author, "author", "", "Author recorded in document metadata")
	flag.StringVar(&config.Category, "category", "", "Category recorded in document metadata")
	flag.Float64Var(&config.RateLimit, "rate-limit", 0, "Rate limit for crawling (requests/sec)")
	flag.IntVar(&config.ChunkSize, "chunk-size", 0, "Target words per chunk")
	flag.IntVar(&config.MinChunkSize, "min-chunk-size", 0, "Minimum words to keep a trailing chunk")
	flag.StringVar(&config.ChunkedFile, "chunked-out", "", "Output file for the chunked index")
	flag.StringVar(&config.SummaryFile, "summary-out", "", "Output file for the summary index")
	flag.StringVar(&config.DBUrl, "db-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string (optional archive)")
	flag.StringVar(&config.PublishURL, "publish", os.Getenv("RAG_ENDPOINT"), "Indexing service base URL (optional)")
	flag.Parse()

	// Load config file (or defaults) and fill in anything the flags left unset
	if cfg, err := cfgPkg.LoadConfig(configPath); err == nil {
		if config.BlogURL == "" {
			config.BlogURL = cfg.Blog.URL
		}
		if config.Author == "" {
			config.Author = cfg.Blog.Author
		}
		if config.Category == "" {
			config.Category = cfg.Blog.Category
		}
		if config.RateLimit == 0 {
			config.RateLimit = cfg.Blog.RateLimit
		}
		if config.ChunkSize == 0 {
			config.ChunkSize = cfg.Processor.ChunkSize
		}
		if config.MinChunkSize == 0 {
			config.MinChunkSize = cfg.Processor.MinChunkSize
		}
		if config.ChunkedFile == "" {
			config.ChunkedFile = cfg.Index.ChunkedFile
		}
		if config.SummaryFile == "" {
			config.SummaryFile = cfg.Index.SummaryFile
		}
		if config.DBUrl == "" {
			config.DBUrl = cfg.Database.URL
		}
		if config.PublishURL == "" {
			config.PublishURL = cfg.Index.PublishURL
		}
		config.ChunkedName = cfg.Index.ChunkedName
		config.SummaryName = cfg.Index.SummaryName
		config.TableName = cfg.Database.TableName
	}

	return config
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("posts"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run(config Config) error {
	color.Blue("\nBuilding RAG indexes for %s\n", config.BlogURL)

	var fetchBar *progressbar.ProgressBar
	c, err := crawler.NewWithConfig(crawler.CrawlerConfig{
		BaseURL:   config.BlogURL,
		RateLimit: config.RateLimit,
		OnProgress: func(url string) {
			if fetchBar != nil {
				fetchBar.Add(1)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize crawler: %v", err)
	}

	refs, err := c.FetchPostList()
	if err != nil {
		return fmt.Errorf("failed to fetch blog list: %v", err)
	}
	if len(refs) == 0 {
		color.Yellow("No blog posts found at %s", config.BlogURL)
	} else {
		color.Green("✓ Found %d blog posts\n", len(refs))
	}

	fetchBar = getProgressBar(len(refs), "Fetching blog posts...")
	pages, failures := c.FetchAll(refs)
	fetchBar.Finish()

	for _, failure := range failures {
		color.Yellow("\nSkipped %s: %v", failure.URL, failure.Err)
	}
	color.Green("\n✓ Fetched %d posts (%d failed)\n", len(pages), len(failures))

	proc := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    config.ChunkSize,
		MinChunkSize: config.MinChunkSize,
	})

	builder := indexer.NewWithConfig(indexer.BuilderConfig{
		Author:           config.Author,
		Category:         config.Category,
		ChunkedIndexName: config.ChunkedName,
		SummaryIndexName: config.SummaryName,
	}, &proc)

	chunked, summary, err := builder.Build(pages)
	if err != nil {
		return fmt.Errorf("failed to build indexes: %v", err)
	}
	color.Green("✓ Built %d chunks and %d summaries\n", len(chunked.Documents), len(summary.Documents))

	// Quality issues are reported but never block saving
	reportValidation(chunked)
	reportValidation(summary)

	if err := indexer.Save(chunked, config.ChunkedFile); err != nil {
		return err
	}
	if err := indexer.Save(summary, config.SummaryFile); err != nil {
		return err
	}
	color.Green("✓ Saved %s and %s\n", config.ChunkedFile, config.SummaryFile)

	if config.DBUrl != "" {
		var indexStore types.IndexStore
		indexStore, err = store.NewWithConfig(store.StoreConfig{
			ConnString: config.DBUrl,
			TableName:  config.TableName,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize document archive: %v", err)
		}
		defer indexStore.Close()

		for _, index := range []models.Index{chunked, summary} {
			if err := indexStore.Store(index); err != nil {
				return fmt.Errorf("failed to archive index %s: %v", index.IndexName, err)
			}
		}
		color.Green("✓ Archived documents to database\n")
	}

	if config.PublishURL != "" {
		for _, index := range []models.Index{chunked, summary} {
			if err := indexer.Publish(config.PublishURL, index); err != nil {
				return err
			}
			color.Green("✓ Published %s to %s\n", index.IndexName, config.PublishURL)
		}
	}

	return nil
}

func reportValidation(index models.Index) {
	ok, issues := indexer.Validate(index)
	if ok {
		color.Green("✓ Index %s passed validation\n", index.IndexName)
		return
	}

	color.Yellow("Index %s has %d validation issues (saving anyway):", index.IndexName, len(issues))
	for i, issue := range issues {
		if i == 10 {
			color.Yellow("  ... and %d more", len(issues)-10)
			break
		}
		color.Yellow("  - %s", issue)
	}
}
