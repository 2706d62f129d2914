package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeDocument struct {
	Id        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string           `gorm:"type:text;not null"`
	Content   string           `gorm:"type:text;not null"`
	Category  string           `gorm:"type:text;not null;index"`
	Tags      []string         `gorm:"serializer:json;type:jsonb"`
	Source    string           `gorm:"type:text"`
	Embedding *pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 / nomic-embed-text dimension
	IsActive  bool             `gorm:"not null;default:true;index"`
	CreatedAt time.Time        `gorm:"autoCreateTime"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt   `gorm:"index"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
