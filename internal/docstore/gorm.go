package docstore

import (
	"context"
	"errors"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWeddingSite/GoWeddingSite/internal/db/controller/document"
	"github.com/GoWeddingSite/GoWeddingSite/internal/db/models"
	"github.com/GoWeddingSite/GoWeddingSite/internal/docid"
)

// Notifier tells other server instances that a collection changed.
type Notifier interface {
	Notify(ctx context.Context, collection string) error
}

// GormOption configures a Gorm backend.
type GormOption func(*Gorm)

// WithNotifier makes the backend announce every commit through n.
func WithNotifier(n Notifier) GormOption {
	return func(g *Gorm) {
		g.notifier = n
	}
}

// Gorm keeps the collections in the documents table of a relational
// database (mysql, postgres or sqlite).
type Gorm struct {
	db       *gorm.DB
	broker   *Broker
	notifier Notifier
	newID    func() string

	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	closed bool
}

// NewGorm migrates the documents table and returns the backend.
func NewGorm(db *gorm.DB, opts ...GormOption) (*Gorm, error) {
	if db == nil {
		return nil, document.ErrDBNil
	}

	if err := db.AutoMigrate(&models.Document{}); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to migrate documents table")
	}

	g := &Gorm{
		db:     db,
		broker: NewBroker(),
		newID:  docid.New,
		locks:  make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// lock returns the mutex ordering commits of one collection.
func (g *Gorm) lock(collection string) (*sync.Mutex, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, ErrClosed
	}

	l, ok := g.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		g.locks[collection] = l
	}

	return l, nil
}

// Subscribe implements Backend.
func (g *Gorm) Subscribe(ctx context.Context, collection string) (Subscription, error) {
	if collection == "" {
		return nil, ErrEmptyCollection
	}

	l, err := g.lock(collection)
	if err != nil {
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	snap, err := g.snapshot(ctx, collection)
	if err != nil {
		return nil, err
	}

	return g.broker.Subscribe(collection, snap)
}

// Refresh re-reads a collection and publishes it. The postgres listener calls
// it when another instance committed a change.
func (g *Gorm) Refresh(ctx context.Context, collection string) error {
	l, err := g.lock(collection)
	if err != nil {
		return err
	}

	l.Lock()
	defer l.Unlock()

	snap, err := g.snapshot(ctx, collection)
	if err != nil {
		return err
	}

	g.broker.Publish(snap)

	return nil
}

// Create implements Backend.
func (g *Gorm) Create(ctx context.Context, collection string, data any) (string, error) {
	id := g.newID()

	body, err := encode(data)
	if err != nil {
		return "", err
	}

	err = g.commit(ctx, collection, func(db *gorm.DB) error {
		_, err := document.Create(db, collection, id, body)
		return err
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// Set implements Backend.
func (g *Gorm) Set(ctx context.Context, collection, id string, data any) error {
	if err := checkKey(collection, id); err != nil {
		return err
	}

	body, err := encode(data)
	if err != nil {
		return err
	}

	return g.commit(ctx, collection, func(db *gorm.DB) error {
		_, err := document.Set(db, collection, id, body)
		return err
	})
}

// Update implements Backend.
func (g *Gorm) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := checkKey(collection, id); err != nil {
		return err
	}

	return g.commit(ctx, collection, func(db *gorm.DB) error {
		_, err := document.Update(db, collection, id, fields)
		if errors.Is(err, document.ErrDocumentNotFound) {
			return ErrNotFound
		}

		return err
	})
}

// Delete implements Backend.
func (g *Gorm) Delete(ctx context.Context, collection, id string) error {
	if err := checkKey(collection, id); err != nil {
		return err
	}

	return g.commit(ctx, collection, func(db *gorm.DB) error {
		err := document.Delete(db, collection, id)
		if errors.Is(err, document.ErrDocumentNotFound) {
			return nil
		}

		return err
	})
}

// Close implements Backend. The database handle belongs to the caller.
func (g *Gorm) Close() error {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.broker.Close()

	return nil
}

func (g *Gorm) commit(ctx context.Context, collection string, fn func(db *gorm.DB) error) error {
	l, err := g.lock(collection)
	if err != nil {
		return err
	}

	l.Lock()
	defer l.Unlock()

	if err = fn(g.db.WithContext(ctx)); err != nil {
		return err
	}

	snap, err := g.snapshot(ctx, collection)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read back %s", collection)
	}

	g.broker.Publish(snap)

	if g.notifier != nil {
		if err = g.notifier.Notify(ctx, collection); err != nil {
			log.Warn().Err(err).Str("collection", collection).Msg("failed to notify other instances")
		}
	}

	return nil
}

func (g *Gorm) snapshot(ctx context.Context, collection string) (Snapshot, error) {
	rows, err := document.List(g.db.WithContext(ctx), collection)
	if err != nil {
		return Snapshot{}, err
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, Document{ID: row.ID, Data: row.Data})
	}

	return Snapshot{Collection: collection, Documents: docs}, nil
}
