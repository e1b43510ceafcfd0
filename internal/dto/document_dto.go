package dto

import "github.com/google/uuid"

// ProcessDocumentMessage is the in-process queue payload emitted after a
// document lands in storage. The consumer computes integrity metadata
// asynchronously so submission latency stays flat.
type ProcessDocumentMessage struct {
	EntityType   string    `json:"entity_type"` // "role_change_request" | "certification"
	EntityId     uuid.UUID `json:"entity_id"`
	DocumentType string    `json:"document_type,omitempty"`
	URL          string    `json:"url"`
}
