// file: services/mocks_test.go
package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"mentora-hub/store"
)

// MockStore is a testify mock of store.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Query(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	args := m.Called(ctx, collection, q)
	recs, _ := args.Get(0).([]store.Record)
	return recs, args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, collection, id string) (store.Record, error) {
	args := m.Called(ctx, collection, id)
	return args.Get(0).(store.Record), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	return m.Called(ctx, collection, id, fields).Error(0)
}

func (m *MockStore) Update(ctx context.Context, collection, id string, patch map[string]interface{}) error {
	return m.Called(ctx, collection, id, patch).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, collection, id string) error {
	return m.Called(ctx, collection, id).Error(0)
}

// recorder counts metric calls by label.
type recorder struct {
	mu         sync.Mutex
	webhooks   map[string]int
	failures   map[string]int
	moderation map[string]int
}

func newRecorder() *recorder {
	return &recorder{
		webhooks:   map[string]int{},
		failures:   map[string]int{},
		moderation: map[string]int{},
	}
}

func (r *recorder) WebhookRequest(kind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.webhooks[kind+"/"+outcome]++
}

func (r *recorder) PersistFailure(collection string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[collection]++
}

func (r *recorder) ModerationAction(action, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moderation[action+"/"+outcome]++
}

func (r *recorder) LiveWatchers(int) {}
