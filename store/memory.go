// file: store/memory.go
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"mentora-hub/logger"
)

// Memory keeps documents in process. Used for local development and tests.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]interface{}
	now         func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string]map[string]map[string]interface{}),
		now:         time.Now,
	}
}

// SetClock replaces the clock used for ServerTimestamp.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Add stores a new document under a generated id.
func (m *Memory) Add(_ context.Context, collection string, fields map[string]interface{}) (string, error) {
	if collection == "" {
		return "", errors.New("collection name is required")
	}
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collection(collection)[id] = m.resolve(fields)
	logger.Debug.Printf("[Memory.Add] %s/%s", collection, id)
	return id, nil
}

// Query returns matching documents, ordered and limited.
func (m *Memory) Query(_ context.Context, collection string, q Query) ([]Record, error) {
	m.mu.RLock()
	var out []Record
	for id, fields := range m.collections[collection] {
		if matches(fields, q.Where) {
			out = append(out, Record{ID: id, Fields: copyFields(fields)})
		}
	}
	m.mu.RUnlock()

	sortRecords(out, q.OrderBy, q.Descending)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Get returns one document or ErrNotFound.
func (m *Memory) Get(_ context.Context, collection, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fields, ok := m.collections[collection][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{ID: id, Fields: copyFields(fields)}, nil
}

// Set creates or replaces a document.
func (m *Memory) Set(_ context.Context, collection, id string, fields map[string]interface{}) error {
	if err := validName(collection, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collection(collection)[id] = m.resolve(fields)
	return nil
}

// Update merges patch into an existing document.
func (m *Memory) Update(_ context.Context, collection, id string, patch map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range m.resolve(patch) {
		doc[k] = v
	}
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], id)
	return nil
}

// caller holds m.mu
func (m *Memory) collection(name string) map[string]map[string]interface{} {
	c, ok := m.collections[name]
	if !ok {
		c = make(map[string]map[string]interface{})
		m.collections[name] = c
	}
	return c
}

// caller holds m.mu
func (m *Memory) resolve(fields map[string]interface{}) map[string]interface{} {
	out := copyFields(fields)
	for k, v := range out {
		if IsServerTimestamp(v) {
			out[k] = m.now().UTC()
		}
	}
	return out
}
