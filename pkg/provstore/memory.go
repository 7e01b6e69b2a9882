package provstore

import (
	"context"
	"iter"
	"sort"
	"strings"
	"sync"

	"github.com/perceptlab/stimkit/pkg/stim"
)

// Memory is an in-memory Store implementation. It is safe for concurrent
// use and intended primarily for testing.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates a new in-memory Store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, e *stim.Entry) error {
	kvs, err := encodeChain(e)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, kv := range kvs {
		if _, ok := m.data[kv.key]; !ok {
			m.data[kv.key] = kv.value
		}
	}
	m.data[headPrefix+e.ID()] = nil
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*stim.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.data[headPrefix+id]; !ok {
		return nil, ErrNotFound
	}
	return rebuild(id, m.getLocked)
}

// getLocked fetches an encoded link; the caller holds at least mu.RLock.
func (m *Memory) getLocked(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) List(_ context.Context) iter.Seq2[*stim.Entry, error] {
	return func(yield func(*stim.Entry, error) bool) {
		m.mu.RLock()
		var ids []string
		for k := range m.data {
			if strings.HasPrefix(k, headPrefix) {
				ids = append(ids, strings.TrimPrefix(k, headPrefix))
			}
		}
		sort.Strings(ids)
		m.mu.RUnlock()

		for _, id := range ids {
			m.mu.RLock()
			e, err := rebuild(id, m.getLocked)
			m.mu.RUnlock()
			if !yield(e, err) {
				return
			}
		}
	}
}

func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
