package util

import "sync"

// GenericMap is a concurrent safe map with generic key and value types.
type GenericMap[K comparable, V any] struct {
	m sync.Map
}

// NewGenericMap creates a new instance of GenericMap.
func NewGenericMap[K comparable, V any]() *GenericMap[K, V] {
	return &GenericMap[K, V]{}
}

// Store sets the value for a key.
func (m *GenericMap[K, V]) Store(key K, value V) {
	m.m.Store(key, value)
}

// LoadAndDelete deletes the value for a key, returning the previous value if any.
// The loaded result reports whether the key was present.
func (m *GenericMap[K, V]) LoadAndDelete(key K) (value V, loaded bool) {
	v, loaded := m.m.LoadAndDelete(key)
	if !loaded {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (m *GenericMap[K, V]) Range(f func(key K, value V) bool) {
	m.m.Range(func(k, v any) bool {
		return f(k.(K), v.(V))
	})
}

// Len counts the entries. The result is only a hint under concurrent writes.
func (m *GenericMap[K, V]) Len() int {
	n := 0
	m.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
