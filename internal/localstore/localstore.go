// Package localstore is the fallback used when no database is configured:
// the whole site lives in memory and is written as one JSON blob to a badger
// database after every change.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dgraph-io/badger/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docid"
	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
)

// StateKey is the badger key holding the state blob.
const StateKey = "wedding_site_state"

// ErrQuotaExceeded is returned when the blob outgrows the configured limit.
var ErrQuotaExceeded = errors.New("local storage quota exceeded")

// OpenDB opens the badger database at path. An empty path opens an in-memory
// database, which is what the tests use.
func OpenDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open badger database %q", path)
	}

	return db, nil
}

// Option configures a Backend.
type Option func(*Backend)

// WithMaxBytes limits the size of the stored blob. Zero means unlimited.
func WithMaxBytes(n int) Option {
	return func(b *Backend) {
		b.maxBytes = n
	}
}

// Backend implements docstore.Backend on top of an in-memory store, persisting
// a snapshot of every collection after each mutation.
type Backend struct {
	mem      *docstore.Memory
	db       *badger.DB
	maxBytes int

	mu sync.Mutex
}

// persisted is the stored form of the blob. A missing settings document is
// left out so the defaults apply on the next start.
type persisted struct {
	Settings *model.Settings `json:"settings,omitempty"`
	Gifts    []model.Gift    `json:"gifts"`
	Pages    []model.Page    `json:"pages"`
	Messages []model.Message `json:"messages"`
}

// New loads the blob from db (if any) and returns the backend. The database
// stays owned by the caller.
func New(db *badger.DB, opts ...Option) (*Backend, error) {
	if db == nil {
		return nil, errors.New("badger database is nil")
	}

	b := &Backend{
		mem: docstore.NewMemory(),
		db:  db,
	}

	for _, opt := range opts {
		opt(b)
	}

	if err := b.load(); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Backend) load() error {
	var raw []byte

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(StateKey))
		if err != nil {
			return err
		}

		raw, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		log.Info().Msg("no local state found, starting empty")
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(err, "failed to read local state")
	}

	st, err := seed.DecodeState(raw)
	if err != nil {
		return err
	}

	settings, err := json.Marshal(st.Settings)
	if err != nil {
		return err
	}

	b.mem.Load(docstore.CollectionSettings, []docstore.Document{{ID: docstore.SettingsID, Data: settings}})

	gifts := make([]docstore.Document, 0, len(st.Gifts))
	for _, g := range st.Gifts {
		if g.ID == "" {
			g.ID = docid.New()
		}

		if gifts, err = appendDoc(gifts, g.ID, g); err != nil {
			return err
		}
	}

	pages := make([]docstore.Document, 0, len(st.Pages))
	for _, p := range st.Pages {
		if p.ID == "" {
			p.ID = docid.New()
		}

		if pages, err = appendDoc(pages, p.ID, p); err != nil {
			return err
		}
	}

	messages := make([]docstore.Document, 0, len(st.Messages))
	for _, m := range st.Messages {
		if m.ID == "" {
			m.ID = docid.New()
		}

		if messages, err = appendDoc(messages, m.ID, m); err != nil {
			return err
		}
	}

	b.mem.Load(docstore.CollectionGifts, gifts)
	b.mem.Load(docstore.CollectionPages, pages)
	b.mem.Load(docstore.CollectionMessages, messages)

	log.Info().
		Int("gifts", len(gifts)).
		Int("pages", len(pages)).
		Int("messages", len(messages)).
		Msg("local state loaded")

	return nil
}

func appendDoc(docs []docstore.Document, id string, v any) ([]docstore.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return docs, err
	}

	return append(docs, docstore.Document{ID: id, Data: data}), nil
}

// Subscribe implements docstore.Backend.
func (b *Backend) Subscribe(ctx context.Context, collection string) (docstore.Subscription, error) {
	return b.mem.Subscribe(ctx, collection)
}

// Create implements docstore.Backend.
func (b *Backend) Create(ctx context.Context, collection string, data any) (string, error) {
	id, err := b.mem.Create(ctx, collection, data)
	if err != nil {
		return "", err
	}

	return id, b.persist()
}

// Set implements docstore.Backend.
func (b *Backend) Set(ctx context.Context, collection, id string, data any) error {
	if err := b.mem.Set(ctx, collection, id, data); err != nil {
		return err
	}

	return b.persist()
}

// Update implements docstore.Backend.
func (b *Backend) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := b.mem.Update(ctx, collection, id, fields); err != nil {
		return err
	}

	return b.persist()
}

// Delete implements docstore.Backend.
func (b *Backend) Delete(ctx context.Context, collection, id string) error {
	if err := b.mem.Delete(ctx, collection, id); err != nil {
		return err
	}

	return b.persist()
}

// Close implements docstore.Backend. The badger database is closed by its owner.
func (b *Backend) Close() error {
	return b.mem.Close()
}

// State decodes the current working set.
func (b *Backend) State() (model.AppState, error) {
	p, err := b.collect()
	if err != nil {
		return model.AppState{}, err
	}

	st := model.AppState{Gifts: p.Gifts, Pages: p.Pages, Messages: p.Messages}
	if p.Settings != nil {
		st.Settings = *p.Settings
	}

	return st, nil
}

func (b *Backend) collect() (persisted, error) {
	p := persisted{
		Gifts:    []model.Gift{},
		Pages:    []model.Page{},
		Messages: []model.Message{},
	}

	for _, d := range b.mem.Documents(docstore.CollectionSettings) {
		if d.ID != docstore.SettingsID {
			continue
		}

		s, err := seed.DecodeSettings(d.Data)
		if err != nil {
			return p, err
		}

		p.Settings = &s
	}

	for _, d := range b.mem.Documents(docstore.CollectionGifts) {
		g, err := seed.DecodeGift(d.ID, d.Data)
		if err != nil {
			return p, err
		}

		p.Gifts = append(p.Gifts, g)
	}

	for _, d := range b.mem.Documents(docstore.CollectionPages) {
		pg, err := seed.DecodePage(d.ID, d.Data)
		if err != nil {
			return p, err
		}

		p.Pages = append(p.Pages, pg)
	}

	for _, d := range b.mem.Documents(docstore.CollectionMessages) {
		m, err := seed.DecodeMessage(d.ID, d.Data)
		if err != nil {
			return p, err
		}

		p.Messages = append(p.Messages, m)
	}

	return p, nil
}

// persist writes the blob. Failures are reported as docstore.ErrNotPersisted:
// the change is live in memory either way.
func (b *Backend) persist() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, err := b.collect()
	if err != nil {
		return pkgerrors.Wrap(docstore.ErrNotPersisted, err.Error())
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return pkgerrors.Wrap(docstore.ErrNotPersisted, err.Error())
	}

	if b.maxBytes > 0 && len(raw) > b.maxBytes {
		log.Warn().Int("size", len(raw)).Int("limit", b.maxBytes).Msg("local state too large to persist")

		return pkgerrors.Wrap(docstore.ErrNotPersisted, ErrQuotaExceeded.Error())
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(StateKey), raw)
	})
	if err != nil {
		return pkgerrors.Wrap(docstore.ErrNotPersisted, err.Error())
	}

	return nil
}
