package service

import (
	"context"
	"log"
	"time"

	"campus-assist-be/internal/constant"
	"campus-assist-be/internal/dto"
	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/pkg/serverutils"
	"campus-assist-be/internal/repository/specification"
	"campus-assist-be/internal/repository/unitofwork"
	"campus-assist-be/pkg/events"
	"campus-assist-be/pkg/imagegen"
	"campus-assist-be/pkg/llm/chain"
	pkgNats "campus-assist-be/pkg/nats"
	"campus-assist-be/pkg/rag/search"

	"github.com/google/uuid"
)

// IChatService defines the chat service interface
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.ChatSessionResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.ChatSessionResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
	OpenStream(ctx context.Context, request *dto.ChatRequest) (*ChatStream, error)
}

// chatService coordinates retrieval, generation and persistence
type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	orchestrator   *search.Orchestrator
	searchConfig   search.Config
	llmChain       *chain.Chain
	imageGenerator imagegen.Generator // nil when image generation is disabled
	campusContext  string
	eventPublisher *pkgNats.Publisher
	llmLogger      *log.Logger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	orchestrator *search.Orchestrator,
	searchConfig search.Config,
	llmChain *chain.Chain,
	imageGenerator imagegen.Generator,
	campusContext string,
	eventPublisher *pkgNats.Publisher,
	llmLogger *log.Logger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		orchestrator:   orchestrator,
		searchConfig:   searchConfig,
		llmChain:       llmChain,
		imageGenerator: imageGenerator,
		campusContext:  campusContext,
		eventPublisher: eventPublisher,
		llmLogger:      llmLogger,
	}
}

// CreateSession creates a new chat session
func (cs *chatService) CreateSession(ctx context.Context) (*dto.ChatSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		Title:     "Unnamed session",
		CreatedAt: time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}

	return &dto.ChatSessionResponse{
		Id:        chatSession.Id,
		Title:     chatSession.Title,
		CreatedAt: chatSession.CreatedAt,
	}, nil
}

// GetAllSessions retrieves all chat sessions, newest first
func (cs *chatService) GetAllSessions(ctx context.Context) ([]*dto.ChatSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.ChatSessionResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.ChatSessionResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return response, nil
}

// GetChatHistory retrieves the messages of a session with their citations
func (cs *chatService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, serverutils.NewNotFound("session not found")
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messageIds := make([]uuid.UUID, len(chatMessages))
	for i, msg := range chatMessages {
		messageIds[i] = msg.Id
	}

	citationsByMsgId := make(map[uuid.UUID][]dto.ChatCitationResponse)
	if len(messageIds) > 0 {
		citations, err := uow.ChatCitationRepository().FindAll(ctx,
			specification.ByChatMessageIDs{MessageIDs: messageIds},
		)
		if err != nil {
			return nil, err
		}
		for _, c := range citations {
			if c.Document == nil {
				continue
			}
			citationsByMsgId[c.ChatMessageId] = append(citationsByMsgId[c.ChatMessageId], dto.ChatCitationResponse{
				DocumentId: c.DocumentId,
				Title:      c.Document.Title,
				Category:   string(c.Document.Category),
				Source:     c.Document.Source,
				Similarity: c.Similarity,
			})
		}
	}

	resp := make([]*dto.ChatMessageResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		resp = append(resp, &dto.ChatMessageResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Chat,
			Aborted:   msg.Aborted,
			Citations: citationsByMsgId[msg.Id],
			CreatedAt: msg.CreatedAt,
		})
	}

	return resp, nil
}

// DeleteSession removes a session and its messages
func (cs *chatService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if sess == nil {
		return serverutils.NewNotFound("session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	return uow.Commit()
}

// persistExchange saves the user question and the assistant reply with its
// citations. Best effort; streaming already finished when this runs, so
// failures are logged, not surfaced.
func (cs *chatService) persistExchange(
	sessionId uuid.UUID,
	userMessage string,
	assistantReply string,
	aborted bool,
	sources []search.SourceDocument,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil || sess == nil {
		cs.llmLogger.Printf("[CHAT] Skipping persistence, session %s unavailable: %v", sessionId, err)
		return
	}

	if err := uow.Begin(ctx); err != nil {
		cs.llmLogger.Printf("[CHAT] Failed to begin persistence tx: %v", err)
		return
	}
	defer uow.Rollback()

	now := time.Now()
	userMsg := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          userMessage,
		Role:          constant.ChatMessageRoleUser,
		ChatSessionId: sessionId,
		CreatedAt:     now,
	}
	assistantMsg := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          assistantReply,
		Role:          constant.ChatMessageRoleAssistant,
		Aborted:       aborted,
		ChatSessionId: sessionId,
		CreatedAt:     now.Add(1 * time.Millisecond),
	}

	if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
		cs.llmLogger.Printf("[CHAT] Failed to persist user message: %v", err)
		return
	}
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMsg); err != nil {
		cs.llmLogger.Printf("[CHAT] Failed to persist assistant message: %v", err)
		return
	}

	citations := make([]*entity.ChatCitation, 0, len(sources))
	for _, src := range sources {
		citations = append(citations, &entity.ChatCitation{
			Id:            uuid.New(),
			ChatMessageId: assistantMsg.Id,
			DocumentId:    src.Document.Id,
			Similarity:    src.Similarity,
			CreatedAt:     now,
		})
	}
	if err := uow.ChatCitationRepository().CreateBulk(ctx, citations); err != nil {
		cs.llmLogger.Printf("[CHAT] Failed to persist citations: %v", err)
		return
	}

	if sess.Title == "Unnamed session" {
		sess.Title = truncateTitle(userMessage, constant.SessionTitleMaxLength)
		sess.UpdatedAt = &now
		if err := uow.ChatSessionRepository().Update(ctx, sess); err != nil {
			cs.llmLogger.Printf("[CHAT] Failed to update session title: %v", err)
			return
		}
	}

	if err := uow.Commit(); err != nil {
		cs.llmLogger.Printf("[CHAT] Failed to commit persistence tx: %v", err)
	}
}

// truncateTitle caps a title at max runes. Byte slicing would split
// multi-byte characters and store invalid UTF-8.
func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func (cs *chatService) publishCompletion(sessionId string, sourceCount int, backend string, aborted bool) {
	if cs.eventPublisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	evt := events.ChatCompleted(sessionId, sourceCount, backend, aborted)
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.llmLogger.Printf("[CHAT] Failed to publish completion event: %v", err)
	}
}
