package store

import (
	"context"
	"fmt"
	"sync"

	"backend-trailbook/internal/domain"

	"github.com/google/uuid"
)

// Memory is a mutex-guarded in-process RecordStore. It backs tests and local
// runs without Postgres. Documents are copied on the way in and out so
// callers never alias stored state.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Document
}

func NewMemory() *Memory {
	return &Memory{data: map[string]map[string]Document{}}
}

func scopeKey(collection, ownerID string) string {
	return collection + "/" + ownerID
}

func copyDoc(doc Document) Document {
	out, err := Encode(doc)
	if err != nil {
		out = Document{}
		for k, v := range doc {
			out[k] = v
		}
	}
	return out
}

func (m *Memory) Get(_ context.Context, collection, ownerID, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[scopeKey(collection, ownerID)][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	return copyDoc(doc), nil
}

func (m *Memory) Put(_ context.Context, collection, ownerID, id string, doc Document) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	stored := copyDoc(doc)
	stored["id"] = id

	m.mu.Lock()
	defer m.mu.Unlock()

	key := scopeKey(collection, ownerID)
	if m.data[key] == nil {
		m.data[key] = map[string]Document{}
	}
	m.data[key][id] = stored
	return id, nil
}

func (m *Memory) Update(_ context.Context, collection, ownerID, id string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.data[scopeKey(collection, ownerID)][id]
	if !ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	for k, v := range copyDoc(fields) {
		doc[k] = v
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := scopeKey(collection, ownerID)
	if _, ok := m.data[key][id]; !ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, collection, id)
	}
	delete(m.data[key], id)
	return nil
}

func (m *Memory) Scan(_ context.Context, collection, ownerID string, filters ...Filter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []Document
	for _, doc := range m.data[scopeKey(collection, ownerID)] {
		if matches(doc, filters) {
			docs = append(docs, copyDoc(doc))
		}
	}
	return docs, nil
}

func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if fmt.Sprint(doc[f.Field]) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}
