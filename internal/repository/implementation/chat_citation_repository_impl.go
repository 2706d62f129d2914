package implementation

import (
	"context"

	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/mapper"
	"campus-assist-be/internal/model"
	"campus-assist-be/internal/repository/contract"
	"campus-assist-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatCitationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatCitationRepository(db *gorm.DB) contract.ChatCitationRepository {
	return &ChatCitationRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatCitationRepositoryImpl) Create(ctx context.Context, citation *entity.ChatCitation) error {
	m := r.mapper.CitationToModel(citation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*citation = *r.mapper.CitationToEntity(m)
	return nil
}

func (r *ChatCitationRepositoryImpl) CreateBulk(ctx context.Context, citations []*entity.ChatCitation) error {
	if len(citations) == 0 {
		return nil
	}
	models := make([]*model.ChatCitation, len(citations))
	for i, c := range citations {
		models[i] = r.mapper.CitationToModel(c)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*citations[i] = *r.mapper.CitationToEntity(m)
	}
	return nil
}

func (r *ChatCitationRepositoryImpl) DeleteByMessageId(ctx context.Context, messageId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_message_id = ?", messageId).Delete(&model.ChatCitation{}).Error
}

func (r *ChatCitationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatCitation, error) {
	var models []*model.ChatCitation
	query := r.db.WithContext(ctx).Preload("Document")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatCitation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.CitationToEntity(m)
	}
	return entities, nil
}
