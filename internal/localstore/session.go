package localstore

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gofiber/fiber/v2"
)

// SessionPrefix namespaces session keys in the shared badger database.
const SessionPrefix = "session:"

// SessionStorage implements fiber.Storage on badger, for deployments that
// have no mysql or postgres to keep sessions in.
type SessionStorage struct {
	db     *badger.DB
	prefix []byte
}

var _ fiber.Storage = (*SessionStorage)(nil)

// NewSessionStorage returns a session storage sharing db.
func NewSessionStorage(db *badger.DB) *SessionStorage {
	return &SessionStorage{db: db, prefix: []byte(SessionPrefix)}
}

func (s *SessionStorage) key(k string) []byte {
	return append(append([]byte(nil), s.prefix...), k...)
}

// Get returns nil without error for unknown or expired keys.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var val []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}

	return val, err
}

// Set stores val, expiring after exp when exp is positive.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	entry := badger.NewEntry(s.key(key), val)
	if exp > 0 {
		entry = entry.WithTTL(exp)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	})
}

// Delete removes key.
func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
}

// Reset drops every session.
func (s *SessionStorage) Reset() error {
	return s.db.DropPrefix(s.prefix)
}

// Close is a no-op, the database belongs to the daemon.
func (s *SessionStorage) Close() error {
	return nil
}
