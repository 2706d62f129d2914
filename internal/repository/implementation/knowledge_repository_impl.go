package implementation

import (
	"context"
	"errors"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/mapper"
	"campus-assist-be/internal/model"
	"campus-assist-be/internal/repository/contract"
	"campus-assist-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeRepositoryImpl) Create(ctx context.Context, document *entity.KnowledgeDocument) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) CreateBulk(ctx context.Context, documents []*entity.KnowledgeDocument) error {
	models := make([]*model.KnowledgeDocument, len(documents))
	for i, d := range documents {
		models[i] = r.mapper.ToModel(d)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*documents[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) Update(ctx context.Context, document *entity.KnowledgeDocument) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	return r.db.WithContext(ctx).
		Model(&model.KnowledgeDocument{}).
		Where("id = ?", id).
		Update("embedding", vec).Error
}

func (r *KnowledgeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeDocument{}, id).Error
}

func (r *KnowledgeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error) {
	var m model.KnowledgeDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KnowledgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error) {
	var models []*model.KnowledgeDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeDocument{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns active documents with similarity scores,
// filtered by threshold. Cosine distance in pgvector is 1 - cosine_similarity,
// so 1 - (embedding <=> query_vector) recovers the similarity.
func (r *KnowledgeRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64, category string) ([]*contract.ScoredKnowledgeDocument, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.KnowledgeDocument
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("knowledge_documents").
		Select("knowledge_documents.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("is_active = ?", true).
		Where("embedding IS NOT NULL").
		Where("deleted_at IS NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold)

	if category != "" {
		query = query.Where("category = ?", category)
	}

	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeDocument, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredKnowledgeDocument{
			Document:   r.mapper.ToEntity(&res.KnowledgeDocument),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
