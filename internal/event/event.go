package event

import (
	"time"

	"github.com/google/uuid"
)

// Topics published by text boxes and the field loader.
const (
	// TopicTextChanged is published after any edit that changed the content.
	TopicTextChanged Topic = "textbox.text.changed"

	// TopicTextInserted is published when typed or pasted text was admitted.
	TopicTextInserted Topic = "textbox.text.inserted"

	// TopicSubmitted is published when the user submits the text box.
	TopicSubmitted Topic = "textbox.submitted"

	// TopicFieldReloaded is published when a field definition was reloaded
	// from disk and applied.
	TopicFieldReloaded Topic = "config.field.reloaded"
)

// Event is a single published notification.
type Event struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Topic is the hierarchical event type.
	Topic Topic

	// Source identifies the component that published the event.
	Source string

	// Payload contains the topic-specific data.
	Payload any

	// Timestamp is when the event was created.
	Timestamp time.Time
}

// New creates an event with a fresh ID and the current time.
func New(topic Topic, source string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Topic:     topic,
		Source:    source,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// TextChanged is the payload of TopicTextChanged and TopicTextInserted.
type TextChanged struct {
	Start     int
	Removed   string
	Inserted  string
	Truncated bool
	Text      string // Content after the edit
}

// Submitted is the payload of TopicSubmitted.
type Submitted struct {
	Text string
}

// FieldReloaded is the payload of TopicFieldReloaded.
type FieldReloaded struct {
	Label     string
	MaxLength int
}
