package dto

import "github.com/google/uuid"

// EmbedDocumentMessage is the payload published to the embedding worker
// whenever a knowledge document is created or its content changes.
type EmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
