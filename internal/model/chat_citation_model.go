package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatCitation struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatMessageId uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Similarity    *float64
	CreatedAt     time.Time `gorm:"autoCreateTime"`

	// Relationships
	ChatMessage *ChatMessage       `gorm:"foreignKey:ChatMessageId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Document    *KnowledgeDocument `gorm:"foreignKey:DocumentId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ChatCitation) TableName() string {
	return "chat_citations"
}
