package broker

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/voidbinder/binder-services/internal/comm"
)

// Subject carries every collection event; feedsvc subscribes to it.
const Subject = "collection.events"

// Broker publishes collection events to NATS. Publishing is best-effort:
// a nil broker or a publish failure never affects request handling.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) publish(eventType string, payload interface{}) {
	if b == nil || b.Conn == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("Error marshaling %s event payload %s", eventType, err)
		return
	}

	event := comm.CollectionEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Error marshaling %s event %s", eventType, err)
		return
	}

	if err := b.Conn.Publish(Subject, bytes); err != nil {
		log.Errorf("Error publishing %s event to %s: %s", eventType, Subject, err)
	}
}

// PublishIngested announces a completed upload that persisted cards.
func (b *Broker) PublishIngested(summary comm.IngestSummary) {
	b.publish(comm.EventIngested, summary)
}

// PublishCardUpdated announces a field edit on one card.
func (b *Broker) PublishCardUpdated(cardID string) {
	b.publish(comm.EventCardUpdated, comm.CardChange{CardID: cardID})
}

// PublishCardDeleted announces removal of one card.
func (b *Broker) PublishCardDeleted(cardID string) {
	b.publish(comm.EventCardDeleted, comm.CardChange{CardID: cardID})
}
