package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages  []ChatTurn `json:"messages" validate:"required,min=1,dive"`
	UseRag    *bool      `json:"use_rag"`
	Category  string     `json:"category"`
	SessionId *uuid.UUID `json:"session_id"`
}

// LatestUserMessage returns the content of the last user turn. Streaming
// always answers the newest question; earlier turns are history.
func (r *ChatRequest) LatestUserMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" {
			return r.Messages[i].Content
		}
	}
	return ""
}

type ChatSessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Aborted   bool                   `json:"aborted"`
	Citations []ChatCitationResponse `json:"citations,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type ChatCitationResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Source     string    `json:"source"`
	Similarity *float64  `json:"similarity,omitempty"`
}
