package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActiveOnly restricts queries to documents visible to retrieval.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByCategory filters documents by a single category value.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// WithEmbedding keeps documents whose embedding has been computed.
type WithEmbedding struct{}

func (s WithEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}

// ByChatSessionID filters chat records by their parent session.
type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// ByChatMessageIDs filters citations by their parent messages.
type ByChatMessageIDs struct {
	MessageIDs []uuid.UUID
}

func (s ByChatMessageIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_message_id IN ?", s.MessageIDs)
}
