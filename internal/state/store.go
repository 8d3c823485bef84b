// Package state keeps the in-memory mirror of the site and is the only place
// that mutates it.
//
// A Store subscribes to the four collections of a docstore.Backend and
// applies every snapshot it receives. Mutations are applied to the mirror
// first and then sent to the backend; a failed write is returned to the
// caller and corrected by the next snapshot, it is never retried.
package state

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/GoWeddingSite/GoWeddingSite/internal/docid"
	"github.com/GoWeddingSite/GoWeddingSite/internal/docstore"
	"github.com/GoWeddingSite/GoWeddingSite/internal/metrics"
	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
	"github.com/GoWeddingSite/GoWeddingSite/internal/seed"
)

var (
	// ErrStoreClosed is returned by mutations started after Close.
	ErrStoreClosed = errors.New("state store is closed")

	// ErrGiftNotFound is returned when a gift is not in the mirror.
	ErrGiftNotFound = errors.New("gift not found")

	// ErrPageNotFound is returned when a page is not in the mirror.
	ErrPageNotFound = errors.New("page not found")
)

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the identity generator used for reset gifts.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// Store is the application state: settings, gifts, pages and messages, plus
// the authentication flag.
type Store struct {
	backend docstore.Backend
	now     func() time.Time
	newID   func() string

	// bg bounds background writes (read-repair); canceled by Close
	bg     context.Context
	cancel context.CancelFunc

	mu            sync.RWMutex
	state         model.AppState
	authenticated bool
	closed        bool
	warning       string
	loaded        map[string]bool
	ready         chan struct{}

	subs []docstore.Subscription
	wg   sync.WaitGroup
}

// New returns a store reading from and writing to backend. Call Open to
// start synchronising.
func New(backend docstore.Backend, opts ...Option) *Store {
	bg, cancel := context.WithCancel(context.Background())

	s := &Store{
		backend: backend,
		now:     time.Now,
		newID:   docid.New,
		bg:      bg,
		cancel:  cancel,
		state: model.AppState{
			Settings: seed.DefaultSettings(),
			Gifts:    []model.Gift{},
			Pages:    []model.Page{},
			Messages: []model.Message{},
		},
		loaded: make(map[string]bool),
		ready:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open subscribes to every collection and waits until each delivered its
// first snapshot or ctx ends.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	s.mu.Unlock()

	subs := make([]docstore.Subscription, 0, len(docstore.Collections))

	for _, coll := range docstore.Collections {
		sub, err := s.backend.Subscribe(ctx, coll)
		if err != nil {
			for _, opened := range subs {
				opened.Close()
			}

			return pkgerrors.Wrapf(err, "failed to subscribe to %s", coll)
		}

		subs = append(subs, sub)
	}

	s.mu.Lock()
	s.subs = subs
	s.mu.Unlock()

	for _, sub := range subs {
		s.wg.Add(1)

		go s.pump(sub)
	}

	select {
	case <-s.ready:
		log.Info().Msg("state store synchronised")
		return nil
	case <-ctx.Done():
		return pkgerrors.Wrap(ctx.Err(), "waiting for initial snapshots")
	}
}

// Ready is closed once every collection delivered a snapshot.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Close ends all subscriptions. Snapshots and write completions arriving
// afterwards are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	s.cancel()

	for _, sub := range subs {
		sub.Close()
	}

	s.wg.Wait()
}

func (s *Store) pump(sub docstore.Subscription) {
	defer s.wg.Done()

	for snap := range sub.Updates() {
		s.apply(snap)
	}
}

func (s *Store) apply(snap docstore.Snapshot) {
	switch snap.Collection {
	case docstore.CollectionSettings:
		s.applySettings(snap)
	case docstore.CollectionGifts:
		s.applyGifts(snap)
	case docstore.CollectionPages:
		s.applyPages(snap)
	case docstore.CollectionMessages:
		s.applyMessages(snap)
	default:
		log.Warn().Str("collection", snap.Collection).Msg("snapshot for unknown collection ignored")
	}
}

func (s *Store) applySettings(snap docstore.Snapshot) {
	for _, doc := range snap.Documents {
		if doc.ID != docstore.SettingsID {
			continue
		}

		settings, err := seed.DecodeSettings(doc.Data)
		if err != nil {
			log.Error().Err(err).Msg("stored settings are unreadable, keeping current ones")
			s.commit(snap.Collection, nil)

			return
		}

		s.commit(snap.Collection, func(st *model.AppState) { st.Settings = settings })

		return
	}

	// read-repair: an empty read means the defaults, written back once
	defaults := seed.DefaultSettings()
	if !s.commit(snap.Collection, func(st *model.AppState) { st.Settings = defaults }) {
		return
	}

	log.Info().Msg("settings missing, writing defaults")

	err := s.backend.Set(s.bg, docstore.CollectionSettings, docstore.SettingsID, defaults)
	if err = s.persisted(err); err != nil {
		log.Error().Err(err).Msg("failed to write default settings")
	}
}

func (s *Store) applyGifts(snap docstore.Snapshot) {
	gifts := make([]model.Gift, 0, len(snap.Documents))

	for _, doc := range snap.Documents {
		g, err := seed.DecodeGift(doc.ID, doc.Data)
		if err != nil {
			log.Error().Err(err).Str("id", doc.ID).Msg("skipping unreadable gift")
			continue
		}

		gifts = append(gifts, g)
	}

	s.commit(snap.Collection, func(st *model.AppState) { st.Gifts = gifts })
}

func (s *Store) applyPages(snap docstore.Snapshot) {
	if len(snap.Documents) == 0 {
		pages := seed.StarterPages()
		if !s.commit(snap.Collection, func(st *model.AppState) { st.Pages = pages }) {
			return
		}

		log.Info().Msg("no pages found, writing system pages")

		for _, p := range pages {
			err := s.backend.Set(s.bg, docstore.CollectionPages, p.ID, p)
			if err = s.persisted(err); err != nil {
				log.Error().Err(err).Str("slug", p.Slug).Msg("failed to write system page")
			}
		}

		return
	}

	pages := make([]model.Page, 0, len(snap.Documents))

	for _, doc := range snap.Documents {
		p, err := seed.DecodePage(doc.ID, doc.Data)
		if err != nil {
			log.Error().Err(err).Str("id", doc.ID).Msg("skipping unreadable page")
			continue
		}

		pages = append(pages, p)
	}

	s.commit(snap.Collection, func(st *model.AppState) { st.Pages = pages })
}

func (s *Store) applyMessages(snap docstore.Snapshot) {
	messages := make([]model.Message, 0, len(snap.Documents))

	for _, doc := range snap.Documents {
		m, err := seed.DecodeMessage(doc.ID, doc.Data)
		if err != nil {
			log.Error().Err(err).Str("id", doc.ID).Msg("skipping unreadable message")
			continue
		}

		messages = append(messages, m)
	}

	sortMessages(messages)

	s.commit(snap.Collection, func(st *model.AppState) { st.Messages = messages })
}

// commit applies fn under the write lock and marks the collection loaded.
// It reports false when the store is already closed.
func (s *Store) commit(collection string, fn func(st *model.AppState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	if fn != nil {
		fn(&s.state)
	}

	if !s.loaded[collection] {
		s.loaded[collection] = true

		if len(s.loaded) == len(docstore.Collections) {
			close(s.ready)
		}
	}

	return true
}

// persisted downgrades docstore.ErrNotPersisted to a warning.
func (s *Store) persisted(err error) error {
	if err == nil || !errors.Is(err, docstore.ErrNotPersisted) {
		return err
	}

	log.Warn().Err(err).Msg("change kept in memory only")
	metrics.StoreWarnings.Inc()

	s.mu.Lock()
	s.warning = err.Error()
	s.mu.Unlock()

	return nil
}

// update runs fn on the live state unless the store is closed.
func (s *Store) update(fn func(st *model.AppState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	fn(&s.state)

	return nil
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	return nil
}

// Warning returns the last persistence warning, if any.
func (s *Store) Warning() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.warning
}

// ClearWarning drops the persistence warning.
func (s *Store) ClearWarning() {
	s.mu.Lock()
	s.warning = ""
	s.mu.Unlock()
}

func sortMessages(messages []model.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}

		return a.ID < b.ID
	})
}
