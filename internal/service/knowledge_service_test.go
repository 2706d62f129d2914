package service

import (
	"context"
	"testing"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/repository/contract"
	"campus-assist-be/internal/repository/specification"
	"campus-assist-be/internal/repository/unitofwork"
	"campus-assist-be/pkg/rag/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingKnowledgeRepo answers Count against an in-memory corpus by
// interpreting the filter specifications the way the SQL layer would.
type countingKnowledgeRepo struct {
	contract.KnowledgeRepository
	docs []*entity.KnowledgeDocument
}

func (r *countingKnowledgeRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, doc := range r.docs {
		if matchesSpecs(doc, specs) {
			count++
		}
	}
	return count, nil
}

func matchesSpecs(doc *entity.KnowledgeDocument, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ActiveOnly:
			if !doc.IsActive {
				return false
			}
		case specification.WithEmbedding:
			if len(doc.Embedding) == 0 {
				return false
			}
		case specification.ByCategory:
			if string(doc.Category) != s.Category {
				return false
			}
		}
	}
	return true
}

type fakeUow struct {
	unitofwork.UnitOfWork
	knowledge contract.KnowledgeRepository
}

func (u *fakeUow) KnowledgeRepository() contract.KnowledgeRepository { return u.knowledge }

type fakeUowFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork { return f.uow }

func TestKnowledgeStats(t *testing.T) {
	embedded := []float32{0.1, 0.2}
	docs := []*entity.KnowledgeDocument{
		{Id: uuid.New(), Category: entity.CategoryAcademic, IsActive: true, Embedding: embedded},
		{Id: uuid.New(), Category: entity.CategoryAcademic, IsActive: true},
		{Id: uuid.New(), Category: entity.CategoryFacilities, IsActive: true, Embedding: embedded},
		// Deactivated documents stay out of every figure.
		{Id: uuid.New(), Category: entity.CategoryGeneral, IsActive: false, Embedding: embedded},
	}

	svc := NewKnowledgeService(
		&fakeUowFactory{uow: &fakeUow{knowledge: &countingKnowledgeRepo{docs: docs}}},
		nil, nil, search.Config{},
	)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Embedded)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, map[string]int64{
		"academic":   2,
		"facilities": 1,
	}, stats.ByCategory)
}
