package comm

import (
	"encoding/json"
	"time"
)

// Collection event types published on the collection.events subject.
const (
	EventIngested    = "ingested"
	EventCardUpdated = "card_updated"
	EventCardDeleted = "card_deleted"
)

// CollectionEvent is the envelope carried over NATS and pushed to
// dashboard feed clients.
type CollectionEvent struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// IngestSummary describes the outcome of one upload.
type IngestSummary struct {
	TotalProcessed int `json:"totalProcessed"`
	TotalErrors    int `json:"totalErrors"`
	Persisted      int `json:"persisted"`
}

// CardChange identifies the card touched by an update or delete.
type CardChange struct {
	CardID string `json:"cardId"`
}
