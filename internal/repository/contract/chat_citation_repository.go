package contract

import (
	"context"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatCitationRepository interface {
	Create(ctx context.Context, citation *entity.ChatCitation) error
	CreateBulk(ctx context.Context, citations []*entity.ChatCitation) error
	DeleteByMessageId(ctx context.Context, messageId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatCitation, error)
}
