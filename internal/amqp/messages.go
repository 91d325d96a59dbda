package amqp

import (
	"encoding/json"
	"time"
)

// EventKind discriminates entry events on the shared queue.
type EventKind string

const (
	EventSync   EventKind = "sync"
	EventDelete EventKind = "delete"
)

// EntryEvent is a lightweight notification about a ledger entry. It carries
// only identifiers; the worker fetches the full entry from the database.
type EntryEvent struct {
	Kind      EventKind `json:"kind"`
	EntryID   int64     `json:"entry_id"`
	Owner     string    `json:"owner"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntrySyncEvent creates a sync event for a new or updated entry.
func NewEntrySyncEvent(owner string, id, version int64) *EntryEvent {
	return &EntryEvent{
		Kind:      EventSync,
		EntryID:   id,
		Owner:     owner,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// NewEntryDeleteEvent creates a delete event for a removed entry.
func NewEntryDeleteEvent(owner string, id int64) *EntryEvent {
	return &EntryEvent{
		Kind:      EventDelete,
		EntryID:   id,
		Owner:     owner,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *EntryEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EntryEventFromJSON creates an event from JSON bytes
func EntryEventFromJSON(data []byte) (*EntryEvent, error) {
	var event EntryEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
