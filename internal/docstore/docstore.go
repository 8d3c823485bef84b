// Package docstore is the document store behind the site: four named
// collections with push subscriptions and create, set, partial update and
// delete operations.
//
// Every backend publishes the full contents of a collection after each
// committed change. Subscribers see those snapshots in commit order; a slow
// subscriber may skip intermediate snapshots but never sees an older one
// after a newer one. There is no ordering between collections.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names.
const (
	CollectionSettings = "site"
	CollectionGifts    = "gifts"
	CollectionPages    = "pages"
	CollectionMessages = "messages"

	// SettingsID is the identity of the settings singleton.
	SettingsID = "settings"
)

// Collections lists every collection the site uses.
var Collections = []string{CollectionSettings, CollectionGifts, CollectionPages, CollectionMessages}

var (
	// ErrNotFound is returned when updating a document that does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("document store is closed")

	// ErrNotPersisted marks a change that was applied and published but could
	// not be written to durable storage. Callers treat it as a warning.
	ErrNotPersisted = errors.New("change applied but not persisted")

	// ErrEmptyCollection is returned when no collection name was given.
	ErrEmptyCollection = errors.New("collection name cannot be empty")

	// ErrEmptyID is returned when a document identity is required but empty.
	ErrEmptyID = errors.New("document id cannot be empty")
)

// Document is a stored document: its identity and JSON body.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Snapshot is the full content of one collection at a point in time.
type Snapshot struct {
	Collection string
	Documents  []Document
}

// Subscription is a live feed of snapshots for one collection.
type Subscription interface {
	// Updates delivers the current snapshot right away and again after every
	// change. The channel is closed by Close.
	Updates() <-chan Snapshot
	// Close ends the subscription.
	Close()
}

// Backend is implemented by every document store.
type Backend interface {
	Subscribe(ctx context.Context, collection string) (Subscription, error)
	// Create stores data under a new identity and returns it.
	Create(ctx context.Context, collection string, data any) (string, error)
	// Set creates or replaces the document id.
	Set(ctx context.Context, collection, id string, data any) error
	// Update merges top-level fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document id. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// encode turns data into a JSON document body.
func encode(data any) (json.RawMessage, error) {
	switch v := data.(type) {
	case json.RawMessage:
		return v, nil
	case []byte:
		return v, nil
	}

	return json.Marshal(data)
}

func checkKey(collection, id string) error {
	if collection == "" {
		return ErrEmptyCollection
	}

	if id == "" {
		return ErrEmptyID
	}

	return nil
}
