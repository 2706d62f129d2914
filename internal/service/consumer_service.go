package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"campus-assist-be/internal/dto"
	"campus-assist-be/internal/repository/specification"
	"campus-assist-be/internal/repository/unitofwork"
	"campus-assist-be/pkg/embedding"
	"campus-assist-be/pkg/events"
	pkgNats "campus-assist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	eventPublisher    *pkgNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	eventPublisher *pkgNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EmbedDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for DocumentId: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if doc == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	// Title and tags are embedded with the content so queries phrased by
	// topic name still land on the right document.
	content := doc.Title + "\n\n" + doc.Content
	if len(doc.Tags) > 0 {
		content += "\n\nTags: " + strings.Join(doc.Tags, ", ")
	}

	vector, err := cs.embeddingProvider.Embed(ctx, content, embedding.TaskRetrievalDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	if err := uow.KnowledgeRepository().UpdateEmbedding(ctx, doc.Id, vector); err != nil {
		log.Printf("[ERROR] Failed to store embedding for document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.KnowledgeIngested(doc.Id.String(), doc.Title, string(doc.Category))
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish knowledge ingested event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Document embedded: %s (%d dims)", payload.DocumentId, len(vector))
	msg.Ack()
}
