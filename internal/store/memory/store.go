package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/farellandr/melaka-tickets/internal/store"
)

// Store keeps JSON encoded documents in process memory.
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

func NewStore() *Store {
	return &Store{docs: make(map[string]map[string][]byte)}
}

func (s *Store) Create(ctx context.Context, collection, id string, data any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", store.Unavailable("create", collection, id, err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string][]byte)
	}

	s.docs[collection][id] = raw

	return id, nil
}

func (s *Store) Get(ctx context.Context, collection, id string, dst any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.docs[collection][id]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, store.Unavailable("get", collection, id, err)
	}

	return true, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.docs[collection][id]
	if !ok {
		return store.Unavailable("update", collection, id, store.ErrNotFound)
	}

	merged, err := store.MergeJSON(raw, fields)
	if err != nil {
		return store.Unavailable("update", collection, id, err)
	}

	s.docs[collection][id] = merged

	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs[collection], id)

	return nil
}

// IDs lists the document ids of a collection.
func (s *Store) IDs(collection string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs[collection]))
	for id := range s.docs[collection] {
		ids = append(ids, id)
	}

	return ids
}
