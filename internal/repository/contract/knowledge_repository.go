package contract

import (
	"context"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredKnowledgeDocument wraps KnowledgeDocument with its similarity score
type ScoredKnowledgeDocument struct {
	Document   *entity.KnowledgeDocument
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type KnowledgeRepository interface {
	Create(ctx context.Context, document *entity.KnowledgeDocument) error
	CreateBulk(ctx context.Context, documents []*entity.KnowledgeDocument) error
	Update(ctx context.Context, document *entity.KnowledgeDocument) error
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns active documents with their cosine
	// similarity to the query embedding, filtered by threshold. Category is
	// optional; an empty string searches every category.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*ScoredKnowledgeDocument, error)
}
