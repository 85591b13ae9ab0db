package crawler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/srinman/blograg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postHTML = `
	<html>
		<head><title>Test Post</title></head>
		<body>
			<nav>Home About Archive Contact and other navigation links</nav>
			<article>
				<p>First paragraph about Kubernetes deployments that is comfortably longer than twenty characters.</p>
				<p>Second paragraph about Istio sidecar configuration that is also comfortably long enough.</p>
			</article>
			<footer>Copyright notice that should be stripped from the output entirely</footer>
		</body>
	</html>
`

func TestCrawlerConfigDefaults(t *testing.T) {
	c, err := NewWithConfig(CrawlerConfig{
		BaseURL: "https://blog.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, c.config.Timeout)
	assert.Equal(t, 1.0, c.config.RateLimit)
	assert.NotEmpty(t, c.config.UserAgent)
}

func TestFetchPostList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`
			<html>
				<body>
					<article><h2><a href="/posts/istio-authz">Istio AuthorizationPolicy on AKS</a></h2></article>
					<article><h2><a href="/posts/istio-authz">Istio AuthorizationPolicy on AKS</a></h2></article>
					<h3><a href="/posts/keda-scaling">Scaling with KEDA</a></h3>
				</body>
			</html>
		`))
	}))
	defer server.Close()

	c, err := NewWithConfig(CrawlerConfig{
		BaseURL:   server.URL,
		RateLimit: 100,
	})
	require.NoError(t, err)

	refs, err := c.FetchPostList()
	require.NoError(t, err)

	// Duplicate links collapse to one entry
	require.Len(t, refs, 2)
	assert.Equal(t, "Istio AuthorizationPolicy on AKS", refs[0].Title)
	assert.Equal(t, server.URL+"/posts/istio-authz", refs[0].URL)
	assert.Equal(t, server.URL+"/posts/keda-scaling", refs[1].URL)
}

func TestFetchPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(postHTML))
	}))
	defer server.Close()

	c, err := NewWithConfig(CrawlerConfig{
		BaseURL:   server.URL,
		RateLimit: 100,
	})
	require.NoError(t, err)

	page, err := c.FetchPost(models.PostRef{Title: "Test Post", URL: server.URL + "/post"})
	require.NoError(t, err)

	assert.Equal(t, "Test Post", page.Title)
	assert.Equal(t, server.URL+"/post", page.URL)
	assert.Contains(t, page.Content, "First paragraph about Kubernetes deployments")
	assert.Contains(t, page.Content, "Second paragraph about Istio sidecar")

	// Paragraph boundaries survive extraction and cleaning
	assert.Contains(t, page.Content, "\n\n")
	assert.NotContains(t, page.Content, "Copyright notice")
	assert.NotContains(t, page.Content, "navigation links")
}

func TestFetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/good" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(postHTML))
	}))
	defer server.Close()

	var progressed int
	c, err := NewWithConfig(CrawlerConfig{
		BaseURL:   server.URL,
		RateLimit: 100,
		OnProgress: func(url string) {
			progressed++
		},
	})
	require.NoError(t, err)

	refs := []models.PostRef{
		{Title: "Good Post", URL: server.URL + "/good"},
		{Title: "Missing Post", URL: server.URL + "/missing"},
	}

	pages, failures := c.FetchAll(refs)

	// The failed fetch is recorded without aborting the batch
	require.Len(t, pages, 1)
	require.Len(t, failures, 1)
	assert.Equal(t, "Good Post", pages[0].Title)
	assert.Equal(t, server.URL+"/missing", failures[0].URL)
	assert.Error(t, failures[0].Err)
	assert.Equal(t, 1, progressed)
}

func TestTextWithBreaksFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`
			<html>
				<body>
					<div>Plain body text without any block elements but long enough to keep.</div>
				</body>
			</html>
		`))
	}))
	defer server.Close()

	c, err := NewWithConfig(CrawlerConfig{
		BaseURL:   server.URL,
		RateLimit: 100,
	})
	require.NoError(t, err)

	page, err := c.FetchPost(models.PostRef{Title: "Plain", URL: server.URL})
	require.NoError(t, err)
	assert.Contains(t, page.Content, "Plain body text without any block elements")
}
