package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Mirror persists small client-side state (the last-fetched cart, wizard
// step progress) across sessions. Nothing reads it mid-session; it exists
// as a cross-session warm-start cache.
type Mirror interface {
	Put(c context.Context, key string, value interface{}) error
	Get(c context.Context, key string, out interface{}) error
}

type RedisMirror struct {
	client *redis.Client
}

func NewRedisMirror(client *redis.Client) *RedisMirror {
	return &RedisMirror{client: client}
}

func (m *RedisMirror) Put(c context.Context, key string, value interface{}) error {
	valueJson, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed marshaling mirror value with error=%w", err)
	}
	err = m.client.Set(c, key, valueJson, 0).Err()
	if err != nil {
		return fmt.Errorf("failed writing mirror key=%s with error=%w", key, err)
	}
	return nil
}

func (m *RedisMirror) Get(c context.Context, key string, out interface{}) error {
	valueJson, err := m.client.Get(c, key).Result()
	if err != nil {
		return fmt.Errorf("failed reading mirror key=%s with error=%w", key, err)
	}
	err = json.Unmarshal([]byte(valueJson), out)
	if err != nil {
		return fmt.Errorf("failed unmarshaling mirror key=%s with error=%w", key, err)
	}
	return nil
}

// MemoryMirror is the in-process Mirror used by tests and by the shop
// daemon when no cache host is configured.
type MemoryMirror struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{values: map[string][]byte{}}
}

func (m *MemoryMirror) Put(_ context.Context, key string, value interface{}) error {
	valueJson, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed marshaling mirror value with error=%w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = valueJson
	return nil
}

func (m *MemoryMirror) Get(_ context.Context, key string, out interface{}) error {
	m.mu.RLock()
	valueJson, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("mirror key=%s not found", key)
	}
	return json.Unmarshal(valueJson, out)
}
