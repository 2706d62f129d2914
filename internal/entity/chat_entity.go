package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type ChatMessage struct {
	Id            uuid.UUID
	Chat          string
	Role          string
	Aborted       bool
	ChatSessionId uuid.UUID
	CreatedAt     time.Time
}

type ChatCitation struct {
	Id            uuid.UUID
	ChatMessageId uuid.UUID
	DocumentId    uuid.UUID
	Similarity    *float64
	CreatedAt     time.Time

	Document *KnowledgeDocument
}
