package search

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/repository/contract"
	"campus-assist-be/internal/repository/specification"
	"campus-assist-be/pkg/embedding"
)

// DocumentStore is the slice of the knowledge repository the orchestrator
// needs. contract.KnowledgeRepository satisfies it.
type DocumentStore interface {
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredKnowledgeDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error)
}

// SourceDocument is a retrieved document plus its score. Similarity is nil
// when the document came from the keyword fallback rather than vector search.
type SourceDocument struct {
	Document   *entity.KnowledgeDocument
	Similarity *float64
}

// Config encapsulates search parameters
type Config struct {
	Threshold float64
	TopK      int
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		Threshold: 0.5,
		TopK:      3,
	}
}

// Orchestrator handles vector search with a keyword fallback
type Orchestrator struct {
	embeddingProvider embedding.Provider
	logger            *log.Logger
}

// NewOrchestrator creates a new search orchestrator
func NewOrchestrator(embeddingProvider embedding.Provider, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

// Execute retrieves the documents most relevant to the query. Vector search
// runs first; the keyword fallback is consulted only when vector search
// returns nothing (no hits above threshold, or embedding unavailable).
func (o *Orchestrator) Execute(
	ctx context.Context,
	store DocumentStore,
	query string,
	category string,
	config Config,
) ([]SourceDocument, error) {

	vectorResults, err := o.vectorSearch(ctx, store, query, category, config)
	if err != nil {
		o.logger.Printf("[WARN] Vector search unavailable, falling back to keyword search: %v", err)
	} else if len(vectorResults) > 0 {
		o.logger.Printf("[DEBUG] Vector search returned %d documents", len(vectorResults))
		return vectorResults, nil
	} else {
		o.logger.Printf("[DEBUG] Vector search returned no documents above threshold %.2f", config.Threshold)
	}

	keywordResults, err := o.keywordSearch(ctx, store, query, category, config.TopK)
	if err != nil {
		return nil, err
	}
	o.logger.Printf("[DEBUG] Keyword search returned %d documents", len(keywordResults))
	return keywordResults, nil
}

func (o *Orchestrator) vectorSearch(
	ctx context.Context,
	store DocumentStore,
	query string,
	category string,
	config Config,
) ([]SourceDocument, error) {

	queryEmbedding, err := o.embeddingProvider.Embed(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scored, err := store.SearchSimilarWithScore(ctx, queryEmbedding, config.TopK, config.Threshold, category)
	if err != nil {
		return nil, err
	}

	results := make([]SourceDocument, 0, len(scored))
	for i, res := range scored {
		sim := res.Similarity
		results = append(results, SourceDocument{
			Document:   res.Document,
			Similarity: &sim,
		})
		o.logger.Printf("[DEBUG] Candidate %d: %q score=%.4f", i+1, res.Document.Title, res.Similarity)
	}
	return results, nil
}

// keywordSearch scores active documents by how many query tokens appear in
// their title, content or tags. Tokens of three or more characters count;
// matching is case-insensitive substring containment.
func (o *Orchestrator) keywordSearch(
	ctx context.Context,
	store DocumentStore,
	query string,
	category string,
	limit int,
) ([]SourceDocument, error) {

	specs := []specification.Specification{specification.ActiveOnly{}}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	docs, err := store.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	tokens := queryTokens(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	type scoredDoc struct {
		doc   *entity.KnowledgeDocument
		score int
	}
	var matches []scoredDoc
	for _, doc := range docs {
		haystack := strings.ToLower(doc.Title + " " + doc.Content + " " + strings.Join(doc.Tags, " "))
		score := 0
		for _, token := range tokens {
			if strings.Contains(haystack, token) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scoredDoc{doc: doc, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]SourceDocument, len(matches))
	for i, m := range matches {
		results[i] = SourceDocument{Document: m.doc}
	}
	return results, nil
}

func queryTokens(query string) []string {
	words := strings.Fields(strings.ToLower(query))
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, ".,?!;:\"'")
		if len(word) > 2 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// BuildContext renders retrieved documents as the knowledge block handed to
// the generation prompt. Keyword matches carry no relevance figure.
func BuildContext(results []SourceDocument) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, len(results))
	for i, res := range results {
		doc := res.Document

		header := fmt.Sprintf("**%s** [%s]", doc.Title, doc.Category)
		if res.Similarity != nil {
			header = fmt.Sprintf("**%s** [%s, Relevance: %.0f%%]", doc.Title, doc.Category, *res.Similarity*100)
		}

		var sb strings.Builder
		sb.WriteString(header)
		sb.WriteString("\n")
		sb.WriteString(doc.Content)
		if doc.Source != "" {
			sb.WriteString("\nSource: ")
			sb.WriteString(doc.Source)
		}
		parts[i] = sb.String()
	}

	return strings.Join(parts, "\n\n---\n\n")
}
