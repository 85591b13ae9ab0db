package processor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/srinman/blograg/internal/models"
)

// Short chunks (100-150 words) embed better with small embedding models
// than long ones, so the defaults lean small.
const (
	defaultChunkSize    = 150
	defaultMinChunkSize = 50

	shortLineLimit   = 20
	summaryLeadWords = 100
	summaryParaWords = 10
	maxKeyTerms      = 5
)

type ProcessorConfig struct {
	ChunkSize    int // target words per chunk
	MinChunkSize int // minimum words to keep a trailing chunk
}

type Processor struct {
	config ProcessorConfig
}

func NewWithConfig(config ProcessorConfig) Processor {
	if config.ChunkSize == 0 {
		config.ChunkSize = defaultChunkSize
	}
	if config.MinChunkSize == 0 {
		config.MinChunkSize = defaultMinChunkSize
	}

	return Processor{
		config: config,
	}
}

// CleanContent normalizes raw extracted page text: runs of spaces collapse
// to one, non-blank lines of shortLineLimit characters or fewer are dropped
// as likely navigation or footer remnants, and runs of blank lines collapse
// to exactly one blank line. Cleaning already-cleaned text is a no-op.
func CleanContent(text string) string {
	var lines []string
	blankPending := false

	for _, line := range strings.Split(text, "\n") {
		collapsed := strings.Join(strings.Fields(line), " ")

		if collapsed == "" {
			blankPending = true
			continue
		}
		if len(collapsed) <= shortLineLimit {
			continue
		}

		if blankPending && len(lines) > 0 {
			lines = append(lines, "")
		}
		blankPending = false
		lines = append(lines, collapsed)
	}

	return strings.Join(lines, "\n")
}

// ChunkContent splits cleaned text into overlapping word-bounded chunks
// along paragraph boundaries. Paragraphs accumulate greedily until the next
// one would push the buffer past ChunkSize; the buffer is then emitted and
// its last paragraph is retained as the seed of the next chunk, so
// consecutive chunks always share exactly one paragraph. A paragraph longer
// than ChunkSize is never split. Trailing content below MinChunkSize is
// dropped.
func (p *Processor) ChunkContent(text string) []models.Chunk {
	paragraphs := splitParagraphs(text)

	var chunks []models.Chunk
	var current []string
	currentWords := 0
	section := 1

	for _, para := range paragraphs {
		paraWords := len(strings.Fields(para))

		if currentWords+paraWords > p.config.ChunkSize && len(current) > 0 {
			chunks = append(chunks, models.Chunk{
				Text:          strings.Join(current, " "),
				SectionNumber: section,
				WordCount:     currentWords,
			})

			current = []string{current[len(current)-1]}
			currentWords = len(strings.Fields(current[0]))
			section++
		}

		current = append(current, para)
		currentWords += paraWords
	}

	if len(current) > 0 && currentWords >= p.config.MinChunkSize {
		chunks = append(chunks, models.Chunk{
			Text:          strings.Join(current, " "),
			SectionNumber: section,
			WordCount:     currentWords,
		})
	}

	return chunks
}

// CreateSummary derives a deterministic extractive summary from a post's
// title and content: the title, then the first paragraph with more than
// summaryParaWords words capped at summaryLeadWords words, then up to
// maxKeyTerms detected key terms. Content with no qualifying paragraph
// yields the title alone.
func (p *Processor) CreateSummary(title, content string) string {
	var qualifying []string
	for _, para := range splitParagraphs(content) {
		if len(strings.Fields(para)) > summaryParaWords {
			qualifying = append(qualifying, para)
		}
	}

	if len(qualifying) == 0 {
		return title
	}

	parts := []string{title}

	words := strings.Fields(qualifying[0])
	if len(words) > summaryLeadWords {
		words = words[:summaryLeadWords]
	}
	parts = append(parts, strings.Join(words, " "))

	if terms := ExtractKeyTerms(content); len(terms) > 0 {
		if len(terms) > maxKeyTerms {
			terms = terms[:maxKeyTerms]
		}
		parts = append(parts, fmt.Sprintf("Key topics: %s", strings.Join(terms, ", ")))
	}

	return strings.Join(parts, " ")
}

// Key term patterns for cloud and container content: platform names, infra
// nouns, auth terms, scaling terms, observability terms.
var keyTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Kubernetes|K8s|AKS|Azure|Istio|Envoy)\b`),
	regexp.MustCompile(`(?i)\b(?:container|pod|service|deployment|ingress)\b`),
	regexp.MustCompile(`(?i)\b(?:AuthorizationPolicy|JWT|OIDC|EntraID)\b`),
	regexp.MustCompile(`(?i)\b(?:scaling|autoscaling|HPA|KEDA)\b`),
	regexp.MustCompile(`(?i)\b(?:monitoring|logging|observability)\b`),
}

// ExtractKeyTerms scans content against the key term patterns. Matches are
// lower-cased, deduplicated and returned in ascending lexical order.
func ExtractKeyTerms(content string) []string {
	found := make(map[string]struct{})
	for _, pattern := range keyTermPatterns {
		for _, match := range pattern.FindAllString(content, -1) {
			found[strings.ToLower(match)] = struct{}{}
		}
	}

	if len(found) == 0 {
		return nil
	}

	terms := make([]string, 0, len(found))
	for term := range found {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	return terms
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}
