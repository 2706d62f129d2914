package mapper

import (
	"time"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/model"
)

type ChatMapper struct {
	knowledge *KnowledgeMapper
}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{knowledge: NewKnowledgeMapper()}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:            msg.Id,
		Chat:          msg.Chat,
		Role:          msg.Role,
		Aborted:       msg.Aborted,
		ChatSessionId: msg.ChatSessionId,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:            msg.Id,
		Chat:          msg.Chat,
		Role:          msg.Role,
		Aborted:       msg.Aborted,
		ChatSessionId: msg.ChatSessionId,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) CitationToEntity(c *model.ChatCitation) *entity.ChatCitation {
	if c == nil {
		return nil
	}
	return &entity.ChatCitation{
		Id:            c.Id,
		ChatMessageId: c.ChatMessageId,
		DocumentId:    c.DocumentId,
		Similarity:    c.Similarity,
		CreatedAt:     c.CreatedAt,
		Document:      m.knowledge.ToEntity(c.Document),
	}
}

func (m *ChatMapper) CitationToModel(c *entity.ChatCitation) *model.ChatCitation {
	if c == nil {
		return nil
	}
	return &model.ChatCitation{
		Id:            c.Id,
		ChatMessageId: c.ChatMessageId,
		DocumentId:    c.DocumentId,
		Similarity:    c.Similarity,
		CreatedAt:     c.CreatedAt,
	}
}
