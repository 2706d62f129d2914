package unitofwork

import (
	"context"

	"campus-assist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KnowledgeRepository() contract.KnowledgeRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatCitationRepository() contract.ChatCitationRepository
}
