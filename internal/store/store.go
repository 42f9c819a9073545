package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var bucketSession = []byte("session")

// Keys inside the session bucket
const (
	keyToken    = "userToken"
	keyIdentity = "identity"
)

// SessionStore implements domain.SessionStore using BoltDB.
type SessionStore struct {
	db *bolt.DB
	mu sync.RWMutex

	// Memory copy of the bucket, authoritative when db is nil
	cache map[string][]byte
}

// NewSessionStore opens (or creates) the session database at path.
// An empty path gives a memory-only store.
func NewSessionStore(path string) (*SessionStore, error) {
	if path == "" {
		return &SessionStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *SessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SessionStore) get(key string) ([]byte, bool) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return nil, false
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
	return data, true
}

// put writes several keys in one transaction
func (s *SessionStore) put(values map[string][]byte) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketSession)
			for k, v := range values {
				if err := b.Put([]byte(k), v); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	for k, v := range values {
		s.cache[k] = v
	}
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) delete(keys ...string) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.cache, k)
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if b == nil {
			return nil
		}
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Session ===

// Token returns the stored provider ID token
func (s *SessionStore) Token() (string, bool) {
	data, ok := s.get(keyToken)
	if !ok || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// SaveSession stores the token and identity record together
func (s *SessionStore) SaveSession(identity *domain.SessionIdentity) error {
	if identity == nil || identity.Token == "" {
		return fmt.Errorf("cannot save session without a token")
	}
	record, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return s.put(map[string][]byte{
		keyToken:    []byte(identity.Token),
		keyIdentity: record,
	})
}

// LoadSession returns the persisted identity. A session without a token is not a session.
func (s *SessionStore) LoadSession() (*domain.SessionIdentity, bool) {
	token, ok := s.Token()
	if !ok {
		return nil, false
	}

	identity := &domain.SessionIdentity{}
	if data, ok := s.get(keyIdentity); ok {
		if err := json.Unmarshal(data, identity); err != nil {
			identity = &domain.SessionIdentity{}
		}
	}
	identity.Token = token
	return identity, true
}

// ClearSession removes the token and identity
func (s *SessionStore) ClearSession() error {
	return s.delete(keyToken, keyIdentity)
}

var _ domain.SessionStore = (*SessionStore)(nil)
