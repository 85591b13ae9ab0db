package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Blog struct {
		URL       string  `yaml:"url"`
		Author    string  `yaml:"author"`
		Category  string  `yaml:"category"`
		RateLimit float64 `yaml:"rate_limit"`
		UserAgent string  `yaml:"user_agent"`
	} `yaml:"blog"`

	Processor struct {
		ChunkSize    int `yaml:"chunk_size"`
		MinChunkSize int `yaml:"min_chunk_size"`
	} `yaml:"processor"`

	Index struct {
		ChunkedName string `yaml:"chunked_name"`
		SummaryName string `yaml:"summary_name"`
		ChunkedFile string `yaml:"chunked_file"`
		SummaryFile string `yaml:"summary_file"`
		PublishURL  string `yaml:"publish_url"`
	} `yaml:"index"`

	Database struct {
		URL       string `yaml:"url"`
		TableName string `yaml:"table_name"`
	} `yaml:"database"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/blograg/config.yaml"),
			"/etc/blograg/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	applyDefaults(config)
	mergeWithEnv(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Blog.URL == "" {
		config.Blog.URL = "https://blog.srinman.com/"
	}
	if config.Blog.Author == "" {
		config.Blog.Author = "Sridher Manivel"
	}
	if config.Blog.Category == "" {
		config.Blog.Category = "container"
	}
	if config.Blog.RateLimit == 0 {
		config.Blog.RateLimit = 1.0
	}

	if config.Processor.ChunkSize == 0 {
		config.Processor.ChunkSize = 150
	}
	if config.Processor.MinChunkSize == 0 {
		config.Processor.MinChunkSize = 50
	}

	if config.Index.ChunkedName == "" {
		config.Index.ChunkedName = "blog_chunked_index"
	}
	if config.Index.SummaryName == "" {
		config.Index.SummaryName = "blog_summary_index"
	}
	if config.Index.ChunkedFile == "" {
		config.Index.ChunkedFile = "rag_blog_chunked_index.json"
	}
	if config.Index.SummaryFile == "" {
		config.Index.SummaryFile = "rag_blog_summary_index.json"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "rag_documents"
	}
}

func mergeWithEnv(config *Config) {
	if blogURL := os.Getenv("BLOG_URL"); blogURL != "" {
		config.Blog.URL = blogURL
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if endpoint := os.Getenv("RAG_ENDPOINT"); endpoint != "" {
		config.Index.PublishURL = endpoint
	}
}
