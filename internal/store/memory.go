package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store on in-process maps. It backs the "memory"
// store driver so the server can run without Google credentials, and it is
// what the test suite exercises.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]map[string]interface{}),
	}
}

// Query returns documents where field compares to value
func (s *MemoryStore) Query(ctx context.Context, collection, field string, op Op, value interface{}, limit int) ([]Document, error) {
	if op != OpEqual {
		return nil, fmt.Errorf("unsupported operator %q", op)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for id, data := range s.collections[collection] {
		if data[field] == value {
			docs = append(docs, Document{ID: id, Data: copyFields(data)})
		}
	}

	// Map iteration order is random; keep results stable for callers.
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// List returns every document in a collection ordered by the given field
func (s *MemoryStore) List(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for id, data := range s.collections[collection] {
		docs = append(docs, Document{ID: id, Data: copyFields(data)})
	}

	sort.Slice(docs, func(i, j int) bool {
		less := lessFieldValue(docs[i].Data[orderBy], docs[j].Data[orderBy])
		if desc {
			return !less
		}
		return less
	})
	return docs, nil
}

// Get fetches a single document by ID
func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return &Document{ID: id, Data: copyFields(data)}, nil
}

// Add creates a document with a generated ID
func (s *MemoryStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}

	id := uuid.New().String()
	s.collections[collection][id] = resolveSentinels(fields)
	return id, nil
}

// Update applies a partial update to an existing document
func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return ErrDocumentNotFound
	}
	for k, v := range resolveSentinels(fields) {
		data[k] = v
	}
	return nil
}

// Delete removes a document
func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

// Batch starts a new atomic write batch
func (s *MemoryStore) Batch() WriteBatch {
	return &memoryBatch{store: s}
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}

type memoryWrite struct {
	collection string
	id         string
	fields     map[string]interface{}
}

// memoryBatch stages updates and applies them under one lock. Every target
// is checked before anything is written, so a failing batch leaves the
// store unchanged.
type memoryBatch struct {
	store  *MemoryStore
	writes []memoryWrite
}

func (b *memoryBatch) Update(collection, id string, fields map[string]interface{}) {
	b.writes = append(b.writes, memoryWrite{collection: collection, id: id, fields: copyFields(fields)})
}

func (b *memoryBatch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	for _, w := range b.writes {
		if _, ok := b.store.collections[w.collection][w.id]; !ok {
			return fmt.Errorf("batch update of %s/%s: %w", w.collection, w.id, ErrDocumentNotFound)
		}
	}

	for _, w := range b.writes {
		data := b.store.collections[w.collection][w.id]
		for k, v := range resolveSentinels(w.fields) {
			data[k] = v
		}
	}
	return nil
}

// resolveSentinels replaces ServerTimestamp with the current time and copies
// the field map so later caller mutations do not leak into the store.
func resolveSentinels(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = time.Now().UTC()
			continue
		}
		out[k] = v
	}
	return out
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// lessFieldValue orders mixed field values: times chronologically, numbers
// numerically, everything else by string form.
func lessFieldValue(a, b interface{}) bool {
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		return at.Before(bt)
	}

	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		return af < bf
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b)) < 0
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
