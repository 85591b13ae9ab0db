package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/srinman/blograg/internal/models"
	"github.com/srinman/blograg/pkg/processor"
	"golang.org/x/time/rate"
)

type CrawlerConfig struct {
	BaseURL    string
	RateLimit  float64 // requests per second
	Timeout    time.Duration
	UserAgent  string
	OnProgress func(url string)
}

type Crawler struct {
	config  CrawlerConfig
	client  *http.Client
	limiter *rate.Limiter
	baseURL *url.URL
}

func NewWithConfig(config CrawlerConfig) (*Crawler, error) {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 1 // respectful crawling
	}
	if config.UserAgent == "" {
		config.UserAgent = "RAG-Index-Builder/1.0 (Educational Purpose)"
	}

	parsedURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Crawler{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		baseURL: parsedURL,
	}, nil
}

func New(baseURL string) *Crawler {
	c, _ := NewWithConfig(CrawlerConfig{
		BaseURL: baseURL,
	})
	return c
}

func (c *Crawler) get(urlStr string) (*goquery.Document, error) {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, urlStr)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// FetchPostList fetches the blog's landing page and returns the posts linked
// from article and heading elements. Relative links are resolved against the
// base URL; duplicate URLs and the landing page itself are skipped.
func (c *Crawler) FetchPostList() ([]models.PostRef, error) {
	doc, err := c.get(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blog list: %v", err)
	}

	seen := make(map[string]bool)
	var refs []models.PostRef

	doc.Find("article a[href], h2 a[href], h3 a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		link, err := url.Parse(href)
		if err != nil {
			return
		}
		if !link.IsAbs() {
			link = c.baseURL.ResolveReference(link)
		}

		title := strings.TrimSpace(sel.Text())
		urlStr := link.String()

		if title == "" || urlStr == c.config.BaseURL || seen[urlStr] {
			return
		}

		seen[urlStr] = true
		refs = append(refs, models.PostRef{Title: title, URL: urlStr})
	})

	return refs, nil
}

// FetchPost fetches a single post, strips boilerplate elements, extracts the
// main content area and returns a cleaned Page.
func (c *Crawler) FetchPost(ref models.PostRef) (models.Page, error) {
	doc, err := c.get(ref.URL)
	if err != nil {
		return models.Page{}, err
	}

	doc.Find("script, style, nav, footer, header").Remove()

	var content string
	for _, selector := range []string{"article", "main", ".post-content", ".entry-content", ".content"} {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = textWithBreaks(sel.First())
			break
		}
	}
	if content == "" {
		content = textWithBreaks(doc.Find("body"))
	}

	return models.Page{
		Title:   ref.Title,
		URL:     ref.URL,
		Content: processor.CleanContent(content),
	}, nil
}

// FetchAll applies FetchPost over refs in order, collecting successes and
// recording failures without aborting the batch.
func (c *Crawler) FetchAll(refs []models.PostRef) ([]models.Page, []models.FetchFailure) {
	var pages []models.Page
	var failures []models.FetchFailure

	for _, ref := range refs {
		page, err := c.FetchPost(ref)
		if err != nil {
			failures = append(failures, models.FetchFailure{URL: ref.URL, Err: err})
			continue
		}

		if c.config.OnProgress != nil {
			c.config.OnProgress(ref.URL)
		}
		pages = append(pages, page)
	}

	return pages, failures
}

// textWithBreaks renders the selection's block elements separated by blank
// lines so paragraph boundaries survive extraction. Selections without block
// elements fall back to plain text.
func textWithBreaks(sel *goquery.Selection) string {
	blocks := sel.Find("p, h1, h2, h3, h4, h5, h6, li, pre")
	if blocks.Length() == 0 {
		return sel.Text()
	}

	var parts []string
	blocks.Each(func(_ int, block *goquery.Selection) {
		if text := strings.TrimSpace(block.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, "\n\n")
}
