package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCapacity bounds the in-memory cache when no capacity is given.
const DefaultCapacity = 1000

// Memory is an LRU cache with per-entry TTL. Safe for concurrent use.
// Entries never outlive DefaultTTL, whatever ttl they were stored with.
type Memory struct {
	lru *expirable.LRU[string, memEntry]
	now func() time.Time
}

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory creates an in-memory cache holding at most capacity entries.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		lru: expirable.NewLRU[string, memEntry](capacity, nil, DefaultTTL),
		now: time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := m.lru.Get(key)
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		m.lru.Remove(key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > DefaultTTL {
		ttl = DefaultTTL
	}
	m.lru.Add(key, memEntry{value: value, expiresAt: m.now().Add(ttl)})
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

// Len reports the number of stored entries, expired ones included until
// they are next touched or purged.
func (m *Memory) Len() int {
	return m.lru.Len()
}

// PurgeExpired drops every expired entry and returns how many were removed.
func (m *Memory) PurgeExpired() int {
	now := m.now()
	n := 0
	for _, key := range m.lru.Keys() {
		e, ok := m.lru.Peek(key)
		if ok && now.Before(e.expiresAt) {
			continue
		}
		if m.lru.Remove(key) {
			n++
		}
	}
	return n
}

var _ Cache = (*Memory)(nil)
