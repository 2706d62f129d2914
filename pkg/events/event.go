package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CHAT_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ChatCompleted is emitted after an assistant response finished streaming.
func ChatCompleted(sessionId string, sourceCount int, backend string, aborted bool) Event {
	return BaseEvent{
		Type: "CHAT_COMPLETED",
		Data: map[string]interface{}{
			"session_id":   sessionId,
			"source_count": sourceCount,
			"backend":      backend,
			"aborted":      aborted,
		},
		OccurredAt: time.Now(),
	}
}

// KnowledgeIngested is emitted once a document's embedding has been stored
// and the document is searchable.
func KnowledgeIngested(documentId, title, category string) Event {
	return BaseEvent{
		Type: "KNOWLEDGE_INGESTED",
		Data: map[string]interface{}{
			"document_id": documentId,
			"title":       title,
			"category":    category,
		},
		OccurredAt: time.Now(),
	}
}
