package models

// PostRef identifies a blog post discovered on the blog's landing page.
type PostRef struct {
	Title string
	URL   string
}

// Page is a fetched blog post with cleaned content.
type Page struct {
	Title   string
	URL     string
	Content string
}

// Chunk is a word-bounded slice of a page's content. SectionNumber is
// 1-based and sequential within a page; WordCount always equals the
// whitespace-split token count of Text.
type Chunk struct {
	Text          string
	SectionNumber int
	WordCount     int
}

// Metadata is the per-document metadata block. Chunked documents carry
// Section and WordCount, summary documents carry Type. The json field names
// are a wire contract with the downstream indexing service.
type Metadata struct {
	Author    string `json:"author"`
	Category  string `json:"category"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Section   string `json:"section,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
	Type      string `json:"type,omitempty"`
}

// Document wraps one chunk or one page summary for indexing.
type Document struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// Index is an ordered collection of documents under a single index name.
type Index struct {
	IndexName string     `json:"index_name"`
	Documents []Document `json:"documents"`
}

// FetchFailure records a post that could not be fetched during a crawl.
type FetchFailure struct {
	URL string
	Err error
}
