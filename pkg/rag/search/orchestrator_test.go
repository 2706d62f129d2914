package search

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/repository/contract"
	"campus-assist-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	scored    []*contract.ScoredKnowledgeDocument
	scoredErr error
	docs      []*entity.KnowledgeDocument
	findErr   error

	vectorCalls  int
	keywordCalls int
	keywordSpecs []specification.Specification
}

func (s *fakeStore) SearchSimilarWithScore(_ context.Context, _ []float32, _ int, _ float64, _ string) ([]*contract.ScoredKnowledgeDocument, error) {
	s.vectorCalls++
	return s.scored, s.scoredErr
}

// FindAll honors the filter specifications the way the SQL layer would, so
// tests catch a missing filter instead of silently returning everything.
func (s *fakeStore) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error) {
	s.keywordCalls++
	s.keywordSpecs = specs
	if s.findErr != nil {
		return nil, s.findErr
	}

	activeOnly := false
	for _, spec := range specs {
		if _, ok := spec.(specification.ActiveOnly); ok {
			activeOnly = true
		}
	}

	var docs []*entity.KnowledgeDocument
	for _, d := range s.docs {
		if activeOnly && !d.IsActive {
			continue
		}
		docs = append(docs, d)
	}
	return docs, nil
}

type fakeEmbedder struct {
	err error
}

func (e *fakeEmbedder) Embed(_ context.Context, _ string, _ string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func doc(title, content string, tags ...string) *entity.KnowledgeDocument {
	return &entity.KnowledgeDocument{
		Id:       uuid.New(),
		Title:    title,
		Content:  content,
		Category: entity.CategoryAcademic,
		Tags:     tags,
		IsActive: true,
	}
}

func newOrchestrator(embedErr error) *Orchestrator {
	return NewOrchestrator(&fakeEmbedder{err: embedErr}, log.New(io.Discard, "", 0))
}

func TestExecuteVectorHitsTakePrecedence(t *testing.T) {
	store := &fakeStore{
		scored: []*contract.ScoredKnowledgeDocument{
			{Document: doc("TA Application Guidelines", "stipend and eligibility"), Similarity: 0.91},
		},
		docs: []*entity.KnowledgeDocument{doc("Lab Booking Guidelines", "booking")},
	}

	results, err := newOrchestrator(nil).Execute(context.Background(), store, "how do I apply for TA", "", DefaultConfig())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "TA Application Guidelines", results[0].Document.Title)
	require.NotNil(t, results[0].Similarity)
	assert.InDelta(t, 0.91, *results[0].Similarity, 1e-9)
	assert.Equal(t, 0, store.keywordCalls, "keyword search must not run when vector search hits")
}

func TestExecuteFallsBackWhenNoVectorHits(t *testing.T) {
	store := &fakeStore{
		docs: []*entity.KnowledgeDocument{
			doc("TA Application Guidelines", "Stipend is ₹12,000 per month for undergraduate TAs", "teaching assistant"),
			doc("Lab Booking Guidelines", "Book at least 48 hours in advance"),
		},
	}

	results, err := newOrchestrator(nil).Execute(context.Background(), store, "what is the TA stipend?", "", DefaultConfig())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "TA Application Guidelines", results[0].Document.Title)
	assert.Nil(t, results[0].Similarity, "keyword hits carry no relevance score")
	assert.Equal(t, 1, store.keywordCalls)
}

func TestExecuteFallsBackWhenEmbeddingFails(t *testing.T) {
	store := &fakeStore{
		docs: []*entity.KnowledgeDocument{
			doc("Bill Reimbursement Procedure", "submit reimbursement within 30 days"),
		},
	}

	results, err := newOrchestrator(errors.New("provider down")).Execute(context.Background(), store, "reimbursement deadline", "", DefaultConfig())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bill Reimbursement Procedure", results[0].Document.Title)
	assert.Equal(t, 0, store.vectorCalls, "vector search is skipped entirely when embedding fails")
}

func TestExecuteKeywordErrorSurfaces(t *testing.T) {
	store := &fakeStore{findErr: errors.New("db down")}

	_, err := newOrchestrator(errors.New("provider down")).Execute(context.Background(), store, "anything here", "", DefaultConfig())
	assert.Error(t, err)
}

func TestKeywordSearchExcludesInactiveDocuments(t *testing.T) {
	inactive := doc("Retired Attendance Policy", "attendance rules from 2019")
	inactive.IsActive = false
	store := &fakeStore{
		docs: []*entity.KnowledgeDocument{
			inactive,
			doc("Academic Policies and Regulations", "minimum 75% attendance required"),
		},
	}

	results, err := newOrchestrator(errors.New("down")).Execute(context.Background(), store, "attendance requirement", "", DefaultConfig())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Academic Policies and Regulations", results[0].Document.Title)

	// The active-only filter must reach the store as a specification, not be
	// left to post-filtering.
	hasActiveOnly := false
	for _, spec := range store.keywordSpecs {
		if _, ok := spec.(specification.ActiveOnly); ok {
			hasActiveOnly = true
		}
	}
	assert.True(t, hasActiveOnly)
}

func TestKeywordSearchForwardsCategoryFilter(t *testing.T) {
	store := &fakeStore{
		docs: []*entity.KnowledgeDocument{doc("Doc", "attendance")},
	}

	_, err := newOrchestrator(errors.New("down")).Execute(context.Background(), store, "attendance", "academic", DefaultConfig())
	require.NoError(t, err)

	found := false
	for _, spec := range store.keywordSpecs {
		if byCat, ok := spec.(specification.ByCategory); ok {
			found = true
			assert.Equal(t, "academic", byCat.Category)
		}
	}
	assert.True(t, found)
}

func TestKeywordSearchCapsAtTopK(t *testing.T) {
	store := &fakeStore{
		docs: []*entity.KnowledgeDocument{
			doc("Doc A", "attendance policy details"),
			doc("Doc B", "attendance shortage rules"),
			doc("Doc C", "attendance certificates"),
			doc("Doc D", "attendance and grading"),
			doc("Doc E", "unrelated content"),
		},
	}

	results, err := newOrchestrator(errors.New("down")).Execute(context.Background(), store, "attendance", "", DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestKeywordSearchRanksByMatchCountStable(t *testing.T) {
	store := &fakeStore{
		docs: []*entity.KnowledgeDocument{
			doc("Single Match", "grading only"),
			doc("Double Match First", "grading and attendance"),
			doc("Double Match Second", "attendance and grading rules"),
		},
	}

	results, err := newOrchestrator(errors.New("down")).Execute(context.Background(), store, "attendance grading", "", DefaultConfig())
	require.NoError(t, err)
	require.Len(t, results, 3)
	// Ties keep input order; higher match counts come first.
	assert.Equal(t, "Double Match First", results[0].Document.Title)
	assert.Equal(t, "Double Match Second", results[1].Document.Title)
	assert.Equal(t, "Single Match", results[2].Document.Title)
}

func TestKeywordSearchMatchesTags(t *testing.T) {
	store := &fakeStore{
		docs: []*entity.KnowledgeDocument{
			doc("Overview", "general department information", "placements", "faculty"),
		},
	}

	results, err := newOrchestrator(errors.New("down")).Execute(context.Background(), store, "placements", "", DefaultConfig())
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestKeywordSearchIgnoresShortTokens(t *testing.T) {
	store := &fakeStore{
		docs: []*entity.KnowledgeDocument{
			doc("Doc", "it is an us to do"),
		},
	}

	// Every query word is two characters or fewer after trimming, so no
	// tokens survive and nothing matches.
	results, err := newOrchestrator(errors.New("down")).Execute(context.Background(), store, "it is to do?!", "", DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQueryTokens(t *testing.T) {
	tokens := queryTokens(`How do I apply, for "TA" positions?`)
	assert.Equal(t, []string{"how", "apply", "for", "positions"}, tokens)
}

func TestBuildContext(t *testing.T) {
	sim := 0.87
	d1 := doc("TA Application Guidelines", "CGPA minimum 7.5")
	d1.Source = "CS Department Circular, August 2025"
	d2 := doc("Lab Booking Guidelines", "48 hours in advance")

	out := BuildContext([]SourceDocument{
		{Document: d1, Similarity: &sim},
		{Document: d2},
	})

	assert.Contains(t, out, "**TA Application Guidelines** [academic, Relevance: 87%]")
	assert.Contains(t, out, "Source: CS Department Circular, August 2025")
	assert.Contains(t, out, "**Lab Booking Guidelines** [academic]")
	assert.Contains(t, out, "\n\n---\n\n")
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Empty(t, BuildContext(nil))
}
