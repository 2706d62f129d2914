package service

import (
	"context"
	"encoding/json"
	"time"

	"campus-assist-be/internal/dto"
	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/pkg/serverutils"
	"campus-assist-be/internal/repository/specification"
	"campus-assist-be/internal/repository/unitofwork"
	"campus-assist-be/pkg/rag/search"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Create(ctx context.Context, request *dto.CreateKnowledgeRequest) (*dto.CreateKnowledgeResponse, error)
	Update(ctx context.Context, request *dto.UpdateKnowledgeRequest) (*dto.UpdateKnowledgeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeDocumentResponse, error)
	List(ctx context.Context, category string, limit, offset int) ([]*dto.KnowledgeDocumentResponse, error)
	Search(ctx context.Context, query string, category string) ([]*dto.SearchKnowledgeResponse, error)
	Stats(ctx context.Context) (*dto.KnowledgeStatsResponse, error)
}

type knowledgeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	orchestrator     *search.Orchestrator
	searchConfig     search.Config
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	orchestrator *search.Orchestrator,
	searchConfig search.Config,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		orchestrator:     orchestrator,
		searchConfig:     searchConfig,
	}
}

func (ks *knowledgeService) Create(ctx context.Context, request *dto.CreateKnowledgeRequest) (*dto.CreateKnowledgeResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)

	doc := entity.KnowledgeDocument{
		Id:        uuid.New(),
		Title:     request.Title,
		Content:   request.Content,
		Category:  entity.Category(request.Category),
		Tags:      request.Tags,
		Source:    request.Source,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	if err := uow.KnowledgeRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	if err := ks.publishEmbedJob(ctx, doc.Id); err != nil {
		return nil, err
	}

	return &dto.CreateKnowledgeResponse{Id: doc.Id}, nil
}

func (ks *knowledgeService) Update(ctx context.Context, request *dto.UpdateKnowledgeRequest) (*dto.UpdateKnowledgeResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: request.Id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, serverutils.NewNotFound("knowledge document not found")
	}

	contentChanged := doc.Title != request.Title || doc.Content != request.Content

	doc.Title = request.Title
	doc.Content = request.Content
	doc.Category = entity.Category(request.Category)
	doc.Tags = request.Tags
	doc.Source = request.Source
	if request.IsActive != nil {
		doc.IsActive = *request.IsActive
	}
	now := time.Now()
	doc.UpdatedAt = &now

	if err := uow.KnowledgeRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	if contentChanged {
		if err := ks.publishEmbedJob(ctx, doc.Id); err != nil {
			return nil, err
		}
	}

	return &dto.UpdateKnowledgeResponse{Id: doc.Id}, nil
}

func (ks *knowledgeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := ks.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return serverutils.NewNotFound("knowledge document not found")
	}

	return uow.KnowledgeRepository().Delete(ctx, id)
}

func (ks *knowledgeService) Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeDocumentResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, serverutils.NewNotFound("knowledge document not found")
	}

	return toKnowledgeResponse(doc), nil
}

func (ks *knowledgeService) List(ctx context.Context, category string, limit, offset int) ([]*dto.KnowledgeDocumentResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	docs, err := uow.KnowledgeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.KnowledgeDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, toKnowledgeResponse(doc))
	}
	return response, nil
}

func (ks *knowledgeService) Search(ctx context.Context, query string, category string) ([]*dto.SearchKnowledgeResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)

	results, err := ks.orchestrator.Execute(ctx, uow.KnowledgeRepository(), query, category, ks.searchConfig)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SearchKnowledgeResponse, 0, len(results))
	for _, res := range results {
		response = append(response, &dto.SearchKnowledgeResponse{
			Id:         res.Document.Id,
			Title:      res.Document.Title,
			Category:   string(res.Document.Category),
			Source:     res.Document.Source,
			Similarity: res.Similarity,
		})
	}
	return response, nil
}

// Stats reports corpus coverage: how many active documents exist per
// category and how many still wait for their embedding.
func (ks *knowledgeService) Stats(ctx context.Context) (*dto.KnowledgeStatsResponse, error) {
	uow := ks.uowFactory.NewUnitOfWork(ctx)
	repo := uow.KnowledgeRepository()

	total, err := repo.Count(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}

	embedded, err := repo.Count(ctx, specification.ActiveOnly{}, specification.WithEmbedding{})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]int64, len(entity.Categories))
	for _, category := range entity.Categories {
		count, err := repo.Count(ctx,
			specification.ActiveOnly{},
			specification.ByCategory{Category: string(category)},
		)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			byCategory[string(category)] = count
		}
	}

	return &dto.KnowledgeStatsResponse{
		Total:      total,
		Embedded:   embedded,
		Pending:    total - embedded,
		ByCategory: byCategory,
	}, nil
}

func (ks *knowledgeService) publishEmbedJob(ctx context.Context, documentId uuid.UUID) error {
	payload := dto.EmbedDocumentMessage{DocumentId: documentId}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return ks.publisherService.Publish(ctx, payloadJson)
}

func toKnowledgeResponse(doc *entity.KnowledgeDocument) *dto.KnowledgeDocumentResponse {
	return &dto.KnowledgeDocumentResponse{
		Id:           doc.Id,
		Title:        doc.Title,
		Content:      doc.Content,
		Category:     string(doc.Category),
		Tags:         doc.Tags,
		Source:       doc.Source,
		IsActive:     doc.IsActive,
		HasEmbedding: len(doc.Embedding) > 0,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
