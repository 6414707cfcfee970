package event

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/dshills/formstorm/internal/event/topic"
)

// Envelope is a published event: a topic, an arbitrary payload, and
// delivery metadata. Envelopes are immutable once published.
type Envelope struct {
	// Topic is the hierarchical event type.
	Topic topic.Topic

	// Payload is the event-specific data.
	Payload any

	// Metadata carries standard delivery information.
	Metadata Metadata
}

// Metadata is attached to every envelope.
type Metadata struct {
	// ID uniquely identifies this event instance.
	ID string

	// Timestamp is when the envelope was created.
	Timestamp time.Time

	// Source identifies the publishing module.
	Source string
}

// New creates an envelope with a fresh ID and timestamp.
func New(t topic.Topic, payload any, source string) Envelope {
	return Envelope{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        generateID(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
