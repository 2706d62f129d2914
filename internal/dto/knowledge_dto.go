package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateKnowledgeRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required,oneof=academic administrative facilities events policies faq general"`
	Tags     []string `json:"tags"`
	Source   string   `json:"source"`
}

type CreateKnowledgeResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateKnowledgeRequest struct {
	Id       uuid.UUID
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Category string   `json:"category" validate:"required,oneof=academic administrative facilities events policies faq general"`
	Tags     []string `json:"tags"`
	Source   string   `json:"source"`
	IsActive *bool    `json:"is_active"`
}

type UpdateKnowledgeResponse struct {
	Id uuid.UUID `json:"id"`
}

type KnowledgeDocumentResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Category     string     `json:"category"`
	Tags         []string   `json:"tags"`
	Source       string     `json:"source"`
	IsActive     bool       `json:"is_active"`
	HasEmbedding bool       `json:"has_embedding"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type KnowledgeStatsResponse struct {
	Total      int64            `json:"total"`
	Embedded   int64            `json:"embedded"`
	Pending    int64            `json:"pending"`
	ByCategory map[string]int64 `json:"by_category"`
}

type SearchKnowledgeResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Source     string    `json:"source"`
	Similarity *float64  `json:"similarity,omitempty"`
}
