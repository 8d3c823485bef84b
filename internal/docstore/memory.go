package docstore

import (
	"context"
	"sort"
	"sync"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docid"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

// Memory is a process local backend. It is the store of the tests and the
// working set of the local fallback.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]map[string][]byte
	broker *Broker
	newID  func() string
	closed bool
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		docs:   make(map[string]map[string][]byte),
		broker: NewBroker(),
		newID:  docid.New,
	}
}

// Load replaces the content of a collection without notifying subscribers.
// It is meant for seeding before anyone subscribed.
func (m *Memory) Load(collection string, docs []Document) {
	m.mu.Lock()
	defer m.mu.Unlock()

	coll := make(map[string][]byte, len(docs))
	for _, d := range docs {
		coll[d.ID] = append([]byte(nil), d.Data...)
	}

	m.docs[collection] = coll
}

// Documents returns the current content of a collection ordered by id.
func (m *Memory) Documents(collection string) []Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshot(collection).Documents
}

// Subscribe implements Backend.
func (m *Memory) Subscribe(_ context.Context, collection string) (Subscription, error) {
	if collection == "" {
		return nil, ErrEmptyCollection
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	return m.broker.Subscribe(collection, m.snapshot(collection))
}

// Create implements Backend.
func (m *Memory) Create(ctx context.Context, collection string, data any) (string, error) {
	id := m.newID()

	if err := m.Set(ctx, collection, id, data); err != nil {
		return "", err
	}

	return id, nil
}

// Set implements Backend.
func (m *Memory) Set(ctx context.Context, collection, id string, data any) error {
	if err := checkKey(collection, id); err != nil {
		return err
	}

	body, err := encode(data)
	if err != nil {
		return err
	}

	return m.commit(ctx, collection, func(coll map[string][]byte) error {
		coll[id] = append([]byte(nil), body...)

		return nil
	})
}

// Update implements Backend.
func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := checkKey(collection, id); err != nil {
		return err
	}

	return m.commit(ctx, collection, func(coll map[string][]byte) error {
		current, ok := coll[id]
		if !ok {
			return ErrNotFound
		}

		merged, err := model.MergeFields(current, fields)
		if err != nil {
			return err
		}

		coll[id] = merged

		return nil
	})
}

// Delete implements Backend.
func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := checkKey(collection, id); err != nil {
		return err
	}

	return m.commit(ctx, collection, func(coll map[string][]byte) error {
		delete(coll, id)

		return nil
	})
}

// Close implements Backend.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.broker.Close()

	return nil
}

func (m *Memory) commit(ctx context.Context, collection string, fn func(map[string][]byte) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	coll := m.docs[collection]
	if coll == nil {
		coll = make(map[string][]byte)
		m.docs[collection] = coll
	}

	if err := fn(coll); err != nil {
		return err
	}

	m.broker.Publish(m.snapshot(collection))

	return nil
}

// snapshot copies a collection; m.mu must be held.
func (m *Memory) snapshot(collection string) Snapshot {
	coll := m.docs[collection]
	docs := make([]Document, 0, len(coll))

	for id, body := range coll {
		docs = append(docs, Document{ID: id, Data: append([]byte(nil), body...)})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	return Snapshot{Collection: collection, Documents: docs}
}
