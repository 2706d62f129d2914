package mapper

import (
	"time"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(d *model.KnowledgeDocument) *entity.KnowledgeDocument {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var embeddingValues []float32
	if d.Embedding != nil {
		embeddingValues = d.Embedding.Slice()
	}

	return &entity.KnowledgeDocument{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		Category:  entity.Category(d.Category),
		Tags:      d.Tags,
		Source:    d.Source,
		Embedding: embeddingValues,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *KnowledgeMapper) ToModel(d *entity.KnowledgeDocument) *model.KnowledgeDocument {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	var vec *pgvector.Vector
	if d.Embedding != nil {
		v := pgvector.NewVector(d.Embedding)
		vec = &v
	}

	return &model.KnowledgeDocument{
		Id:        d.Id,
		Title:     d.Title,
		Content:   d.Content,
		Category:  string(d.Category),
		Tags:      d.Tags,
		Source:    d.Source,
		Embedding: vec,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *KnowledgeMapper) ToEntities(docs []*model.KnowledgeDocument) []*entity.KnowledgeDocument {
	entities := make([]*entity.KnowledgeDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
